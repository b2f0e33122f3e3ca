// Package bloc normalizes bucket storage locator URLs into one canonical
// path-style form and extracts the endpoint host, region, bucket, root key
// and credential profile needed by a storage client.
//
// Locators may arrive in any of the historically supported shapes:
//
//	Virtual: https://<bucket>.s3.<region>.amazonaws.com/<path>
//	     or: https://<bucket>.s3.amazonaws.com/<path>
//	Path:    https://s3.<region>.amazonaws.com/<bucket>/<path>
//	     or: https://s3.amazonaws.com/<bucket>/<path>
//	S3:      s3://<bucket>/<path>
//	Google:  https://storage.googleapis.com/<bucket>/<path>
//	     or: gs3://<bucket>/<path>
//	Other:   https://<host>/<bucket>/<path>
//
// Process rebuilds any of these into the canonical path-style form and
// fills an Info record with the resolved fields.
package bloc

import "net/url"

// Recognized hosts and schemes.
const (
	// AWSHostSuffix terminates every Amazon S3 host name.
	AWSHostSuffix = ".amazonaws.com"
	// GoogleHost is the fixed Google Cloud Storage endpoint.
	GoogleHost = "storage.googleapis.com"

	// SchemeS3 is the short-form S3 locator scheme, as in "s3://bucket/key".
	SchemeS3 = "s3"
	// SchemeGS is the short-form Google Cloud Storage locator scheme.
	SchemeGS = "gs3"
)

// Service tags the class of storage service addressed by a locator.
type Service uint8

// Known service classes.
const (
	ServiceUnknown Service = iota // unrecognized endpoint
	ServiceS3                     // S3-compatible
	ServiceGS                     // Google-Cloud-Storage-compatible
)

// String implements fmt.Stringer.
func (s Service) String() string {
	switch s {
	case ServiceS3:
		return "s3"
	case ServiceGS:
		return "gs"
	}
	return "unknown"
}

// Defaults supplies configured fallback values for locator fields that
// cannot be recovered from the locator itself.
type Defaults interface {
	// Region returns the configured default region for u,
	// or "" when none is configured.
	Region(u *url.URL) string

	// Profile returns the name of the active credential profile for u.
	Profile(u *url.URL) (name string, ok bool)
}

// StaticDefaults is a fixed-value Defaults implementation, for callers
// that maintain their own configuration layer.
type StaticDefaults struct {
	DefaultRegion string // returned by Region
	ActiveProfile string // returned by Profile, blank means none
}

// Region implements Defaults.
func (d StaticDefaults) Region(_ *url.URL) string { return d.DefaultRegion }

// Profile implements Defaults.
func (d StaticDefaults) Profile(_ *url.URL) (string, bool) {
	if d.ActiveProfile == "" {
		return "", false
	}
	return d.ActiveProfile, true
}
