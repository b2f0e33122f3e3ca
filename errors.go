package bloc

import "errors"

var (
	// ErrMalformedLocator is returned when a locator is missing, has no
	// host, or its host does not match any recognized shape.
	ErrMalformedLocator = errors.New("bloc: malformed locator URL")

	// ErrRegionUnresolved is returned when no region can be recovered from
	// the locator, a prior Info record or the configured defaults.
	ErrRegionUnresolved = errors.New("bloc: unable to resolve region")

	// ErrBucketUnresolved is returned when no bucket can be recovered from
	// the locator or a prior Info record.
	ErrBucketUnresolved = errors.New("bloc: unable to resolve bucket")
)
