package bloc

import (
	"net/url"
	"strings"

	"github.com/bsm/bloc/internal"
)

// shape classifies the address form of a locator host.
type shape uint8

const (
	shapeNone    shape = iota
	shapeVirtual       // bucket embedded in the host
	shapePath          // bucket carried in the path
	shapeScheme        // short-form s3:// or gs3://
	shapeOther         // unrecognized endpoint
)

// hostInfo carries the fragments recovered from a classified host.
type hostInfo struct {
	shape  shape
	svc    Service
	bucket string
	region string
	host   string // preserved verbatim for unrecognized endpoints
}

// classifyHost decides which of the known address shapes the locator is
// and extracts the region/bucket fragments embedded in its host. segs are
// the non-empty dot-segments of the host.
func classifyHost(u *url.URL, segs []string) (hostInfo, error) {
	switch {
	case u.Scheme == SchemeS3 && len(segs) == 1:
		return hostInfo{shape: shapeScheme, svc: ServiceS3, bucket: segs[0]}, nil

	case u.Scheme == SchemeGS && len(segs) == 1:
		return hostInfo{shape: shapeScheme, svc: ServiceGS, bucket: segs[0]}, nil

	case internal.HasSuffixFold(u.Host, AWSHostSuffix):
		hi := hostInfo{svc: ServiceS3}
		switch len(segs) {
		case 3: // s3.amazonaws.com: neither region nor bucket in the host
			hi.shape = shapePath
		case 4:
			if strings.EqualFold(segs[0], "s3") { // s3.<region>.amazonaws.com
				hi.shape = shapePath
				hi.region = segs[1]
			} else { // <bucket>.s3.amazonaws.com
				hi.shape = shapeVirtual
				hi.bucket = segs[0]
			}
		case 5: // <bucket>.s3.<region>.amazonaws.com
			if !strings.EqualFold(segs[1], "s3") {
				return hostInfo{}, ErrMalformedLocator
			}
			hi.shape = shapeVirtual
			hi.bucket = segs[0]
			hi.region = segs[2]
		default:
			return hostInfo{}, ErrMalformedLocator
		}
		return hi, nil

	case strings.EqualFold(u.Host, GoogleHost):
		return hostInfo{shape: shapePath, svc: ServiceGS, host: u.Host}, nil
	}
	return hostInfo{shape: shapeOther, host: u.Host}, nil
}

// Rebuild classifies a storage locator and reconstructs it as a new URL in
// canonical path-style form, with the scheme forced to https and explicit
// bucket and region. The input URL is never mutated.
//
// The region is resolved from the host first, then from the prior record
// info, then from defs; the bucket from the host first, then the leading
// path segment, then the prior record. Either info or defs may be nil.
// When info is non-nil, the resolved bucket, region and service class are
// written back into it.
//
// A 4-segment amazonaws host whose leading segment is not "s3" is treated
// permissively: the segment is taken as the bucket name without any
// syntax validation.
func Rebuild(u *url.URL, info *Info, defs Defaults) (*url.URL, error) {
	if u == nil || u.Host == "" {
		return nil, ErrMalformedLocator
	}

	hostsegs := internal.SplitDelim(u.Host, '.')
	pathsegs := internal.SplitDelim(u.Path, '/')

	hi, err := classifyHost(u, hostsegs)
	if err != nil {
		return nil, err
	}

	// region: host, then prior record, then configured default
	region := hi.region
	if region == "" && info != nil {
		region = info.Region
	}
	if region == "" && defs != nil {
		region = defs.Region(u)
	}
	if region == "" {
		return nil, ErrRegionUnresolved
	}

	// bucket: host, then leading path segment, then prior record
	bucket := hi.bucket
	switch hi.shape {
	case shapePath, shapeOther:
		if len(pathsegs) != 0 {
			bucket, pathsegs = pathsegs[0], pathsegs[1:]
		}
	}
	if bucket == "" && info != nil {
		bucket = info.Bucket
	}
	if bucket == "" {
		return nil, ErrBucketUnresolved
	}

	var host string
	switch hi.svc {
	case ServiceS3:
		host = "s3." + region + AWSHostSuffix
	case ServiceGS:
		host = GoogleHost
	default:
		host = hi.host
	}

	path := "/" + bucket
	for _, seg := range pathsegs {
		path += "/" + seg
	}

	nu := cloneURL(u)
	nu.Scheme = "https"
	nu.Host = host
	nu.Path = path
	nu.RawPath = ""

	if info != nil {
		info.Bucket = bucket
		info.Region = region
		info.Service = hi.svc
	}
	return nu, nil
}

func cloneURL(u *url.URL) *url.URL {
	nu := *u
	if u.User != nil {
		user := *u.User
		nu.User = &user
	}
	return &nu
}
