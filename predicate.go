package bloc

import (
	"net/url"
	"strings"

	"github.com/bsm/bloc/internal"
)

// IsStorageURL reports whether u looks like it addresses an S3 or Google
// Cloud Storage service at all. It is a cheap pre-check for Process: a
// nil locator or one with neither a storage scheme, a storage mode
// annotation nor a recognizable host yields false.
func IsStorageURL(u *url.URL) bool {
	if u == nil {
		return false
	}
	if strings.EqualFold(u.Scheme, SchemeS3) || strings.EqualFold(u.Scheme, SchemeGS) {
		return true
	}
	if hasMode(u, SchemeS3) || hasMode(u, SchemeGS) {
		return true
	}
	if u.Host != "" {
		if internal.HasSuffixFold(u.Host, AWSHostSuffix) {
			return true
		}
		if strings.EqualFold(u.Host, GoogleHost) {
			return true
		}
	}
	return false
}

// hasMode reports whether the locator's mode annotation mentions name.
// The annotation is a comma-separated list carried either in the "mode"
// query parameter or in a "mode" entry of the fragment, as in
// "#mode=zarr,s3".
func hasMode(u *url.URL, name string) bool {
	modes := u.Query().Get("mode")
	if frag, err := url.ParseQuery(u.Fragment); err == nil {
		if m := frag.Get("mode"); m != "" {
			if modes != "" {
				modes += ","
			}
			modes += m
		}
	}

	for _, mode := range strings.Split(modes, ",") {
		if strings.EqualFold(strings.TrimSpace(mode), name) {
			return true
		}
	}
	return false
}
