// Package blocs3 resolves configuration defaults and constructs Amazon S3
// clients from normalized bucket locators.
package blocs3

import (
	"context"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/endpoints"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/bsm/bloc"
)

// Config is passed to New and NewDefaults to configure the AWS connection.
type Config struct {
	AWS     aws.Config // native AWS configuration
	Profile string     // shared config profile, defaults to the AWS_PROFILE setting
}

// Defaults implements bloc.Defaults on top of the AWS shared
// configuration (environment plus ~/.aws/config).
type Defaults struct {
	region  string
	profile string
}

// NewDefaults loads the shared AWS configuration and returns it as a
// bloc.Defaults source. The region falls back to us-east-1 when the
// shared configuration does not name one.
func NewDefaults(cfg *Config) (*Defaults, error) {
	config := new(Config)
	if cfg != nil {
		*config = *cfg
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            config.AWS,
		Profile:           config.Profile,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}

	region := aws.StringValue(sess.Config.Region)
	if region == "" {
		region = endpoints.UsEast1RegionID
	}

	profile := config.Profile
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}

	return &Defaults{region: region, profile: profile}, nil
}

// Region implements bloc.Defaults.
func (d *Defaults) Region(_ *url.URL) string { return d.region }

// Profile implements bloc.Defaults.
func (d *Defaults) Profile(_ *url.URL) (string, bool) {
	if d.profile == "" {
		return "", false
	}
	return d.profile, true
}

// New initiates an S3 client for the endpoint resolved in info. Records
// with an unrecognized service class are addressed through their resolved
// host directly, in path style (the canonical locator form).
func New(info *bloc.Info, cfg *Config) (*s3.S3, error) {
	if info == nil {
		return nil, bloc.ErrMalformedLocator
	}
	if info.Region == "" {
		return nil, bloc.ErrRegionUnresolved
	}

	config := new(Config)
	if cfg != nil {
		*config = *cfg
	}

	awscfg := config.AWS
	if aws.StringValue(awscfg.Region) == "" {
		awscfg.Region = aws.String(info.Region)
	}
	if info.Service == bloc.ServiceUnknown && aws.StringValue(awscfg.Endpoint) == "" {
		awscfg.Endpoint = aws.String("https://" + info.Host)
		awscfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(&awscfg)
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

// Keys returns an iterator over the object keys stored under the
// locator's bucket and root key, filtered by a glob pattern. Key names
// are reported relative to the root key.
func Keys(ctx context.Context, client *s3.S3, info *bloc.Info, pattern string) (*Iterator, error) {
	if info == nil || info.Bucket == "" {
		return nil, bloc.ErrBucketUnresolved
	}

	// quick sanity check
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, err
	}

	return &Iterator{
		client:  client,
		ctx:     ctx,
		bucket:  info.Bucket,
		prefix:  info.RootKey,
		pattern: pattern,
	}, nil
}

// Iterator iterates over object keys, page by page.
type Iterator struct {
	client  *s3.S3
	ctx     context.Context
	bucket  string
	prefix  string
	pattern string
	token   *string

	err  error
	last bool // indicates last page
	pos  int
	page []string
}

// Close closes the iterator, should always be deferred.
func (i *Iterator) Close() error {
	i.last = true
	i.pos = len(i.page)
	return nil
}

// Name returns the key at the current cursor position.
func (i *Iterator) Name() string {
	if i.pos < len(i.page) {
		return i.page[i.pos]
	}
	return ""
}

// Next advances the cursor to the next position.
func (i *Iterator) Next() bool {
	if i.err != nil {
		return false
	}

	if i.pos++; i.pos < len(i.page) {
		return true
	}

	if i.last {
		return false
	}

	if err := i.fetchNextPage(); err != nil {
		i.err = err
		return false
	}
	return i.Next()
}

// Error returns the last iterator error, if any.
func (i *Iterator) Error() error { return i.err }

func (i *Iterator) fetchNextPage() error {
	i.page = i.page[:0]
	i.pos = -1

	res, err := i.client.ListObjectsV2WithContext(i.ctx, &s3.ListObjectsV2Input{
		Bucket:            aws.String(i.bucket),
		Prefix:            aws.String(i.prefix),
		ContinuationToken: i.token,
	})
	if err != nil {
		return err
	}

	i.token = res.NextContinuationToken
	i.last = i.token == nil

	for _, obj := range res.Contents {
		if obj == nil {
			continue
		}

		name := i.stripPrefix(aws.StringValue(obj.Key))
		if ok, err := path.Match(i.pattern, name); err != nil {
			return err
		} else if ok {
			i.page = append(i.page, name)
		}
	}
	return nil
}

func (i *Iterator) stripPrefix(key string) string {
	if i.prefix == "" {
		return key
	}
	key = strings.TrimPrefix(key, i.prefix)
	return strings.TrimPrefix(key, "/")
}
