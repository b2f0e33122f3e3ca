package bloc

import (
	"net/url"

	"github.com/bsm/bloc/internal"
)

// NoProfile marks a record processed without an active credential profile.
const NoProfile = "no"

// Process is the main entry point. It resolves the active credential
// profile, rebuilds u into canonical path-style form and populates info
// with the endpoint host, region, bucket, root key and profile.
//
// info must be non-nil; defs may be nil. On error the record may be left
// partially populated and should be discarded by the caller.
func Process(u *url.URL, info *Info, defs Defaults) (*url.URL, error) {
	if u == nil || info == nil {
		return nil, ErrMalformedLocator
	}

	profile := NoProfile
	if defs != nil {
		if name, ok := defs.Profile(u); ok {
			profile = name
		}
	}
	info.Profile = profile

	nu, err := Rebuild(u, info, defs)
	if err != nil {
		return nil, err
	}
	info.Host = nu.Host

	// root key: the canonical path minus the leading bucket segment
	segs := internal.SplitDelim(nu.Path, '/')
	if len(segs) != 0 {
		segs = segs[1:]
	}
	info.RootKey = internal.Join(segs)

	return nu, nil
}
