// Package blocgs constructs Google Cloud Storage bucket handles from
// normalized bucket locators.
package blocgs

import (
	"context"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/bmatcuk/doublestar"
	"github.com/bsm/bloc"
	giterator "google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Config is passed to New to configure the Google Cloud Storage connection.
type Config struct {
	Options []option.ClientOption // options for the Google API client
}

// New initiates a bucket handle for the bucket resolved in info. Records
// whose service class is not Google-Cloud-Storage-compatible are rejected.
func New(ctx context.Context, info *bloc.Info, cfg *Config) (*storage.BucketHandle, error) {
	config := new(Config)
	if cfg != nil {
		*config = *cfg
	}

	if info == nil || info.Service != bloc.ServiceGS {
		return nil, bloc.ErrMalformedLocator
	}
	if info.Bucket == "" {
		return nil, bloc.ErrBucketUnresolved
	}

	client, err := storage.NewClient(ctx, config.Options...)
	if err != nil {
		return nil, err
	}
	return client.Bucket(info.Bucket), nil
}

// Keys returns an iterator over the object keys stored under the
// locator's root key, filtered by a glob pattern. Key names are reported
// relative to the root key.
func Keys(ctx context.Context, bucket *storage.BucketHandle, info *bloc.Info, pattern string) (*Iterator, error) {
	if info == nil || info.Bucket == "" {
		return nil, bloc.ErrBucketUnresolved
	}

	// quick sanity check
	if _, err := doublestar.Match(pattern, ""); err != nil {
		return nil, err
	}

	iter := bucket.Objects(ctx, &storage.Query{
		Prefix: info.RootKey,
	})
	return &Iterator{
		iter:    iter,
		prefix:  info.RootKey,
		pattern: pattern,
	}, nil
}

// Iterator iterates over object keys.
type Iterator struct {
	iter    *storage.ObjectIterator
	prefix  string
	pattern string
	current string
	err     error
}

// Close closes the iterator, should always be deferred.
func (*Iterator) Close() error { return nil }

// Name returns the key at the current cursor position.
func (i *Iterator) Name() string { return i.current }

// Next advances the cursor to the next position.
func (i *Iterator) Next() bool {
	if i.err != nil {
		return false
	}

	for {
		obj, err := i.iter.Next()
		if err != nil {
			i.err = err
			return false
		}

		name := i.stripPrefix(obj.Name)
		if ok, err := doublestar.Match(i.pattern, name); err != nil {
			i.err = err
			return false
		} else if ok {
			i.current = name
			return true
		}
	}
}

// Error returns the last iterator error, if any.
func (i *Iterator) Error() error {
	if i.err != giterator.Done {
		return i.err
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
