package bloc_test

import (
	"net/url"

	"github.com/bsm/bloc"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = DescribeTable("Rebuild",
	func(rawurl, xHost, xPath, xBucket, xRegion string, xSvc bloc.Service) {
		info := new(bloc.Info)
		nu, err := bloc.Rebuild(mustParse(rawurl), info, bloc.StaticDefaults{DefaultRegion: "us-east-1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(nu.Scheme).To(Equal("https"))
		Expect(nu.Host).To(Equal(xHost))
		Expect(nu.Path).To(Equal(xPath))
		Expect(info.Bucket).To(Equal(xBucket))
		Expect(info.Region).To(Equal(xRegion))
		Expect(info.Service).To(Equal(xSvc))
	},

	Entry("short-scheme S3", "s3://bkt/k1/k2",
		"s3.us-east-1.amazonaws.com", "/bkt/k1/k2", "bkt", "us-east-1", bloc.ServiceS3),

	Entry("short-scheme Google", "gs3://bkt/k1",
		"storage.googleapis.com", "/bkt/k1", "bkt", "us-east-1", bloc.ServiceGS),

	Entry("bare host, bucket in path", "https://s3.amazonaws.com/bkt/k1",
		"s3.us-east-1.amazonaws.com", "/bkt/k1", "bkt", "us-east-1", bloc.ServiceS3),

	Entry("virtual-hosted, default region", "https://bkt.s3.amazonaws.com/k1",
		"s3.us-east-1.amazonaws.com", "/bkt/k1", "bkt", "us-east-1", bloc.ServiceS3),

	Entry("path-style, explicit region", "https://s3.eu-west-1.amazonaws.com/bkt/k1",
		"s3.eu-west-1.amazonaws.com", "/bkt/k1", "bkt", "eu-west-1", bloc.ServiceS3),

	Entry("virtual-hosted, explicit region", "https://bkt.s3.ap-south-1.amazonaws.com/k1/k2",
		"s3.ap-south-1.amazonaws.com", "/bkt/k1/k2", "bkt", "ap-south-1", bloc.ServiceS3),

	Entry("google host", "https://storage.googleapis.com/bkt/k1",
		"storage.googleapis.com", "/bkt/k1", "bkt", "us-east-1", bloc.ServiceGS),

	Entry("google host, mixed case", "https://Storage.GoogleApis.com/bkt/k1",
		"storage.googleapis.com", "/bkt/k1", "bkt", "us-east-1", bloc.ServiceGS),

	Entry("other host", "https://minio.example.com/bkt/k1",
		"minio.example.com", "/bkt/k1", "bkt", "us-east-1", bloc.ServiceUnknown),

	Entry("mixed-case AWS suffix", "https://bkt.s3.amazonaws.COM/k1",
		"s3.us-east-1.amazonaws.com", "/bkt/k1", "bkt", "us-east-1", bloc.ServiceS3),

	Entry("uppercase s3 marker", "https://S3.eu-west-1.amazonaws.com/bkt/k1",
		"s3.eu-west-1.amazonaws.com", "/bkt/k1", "bkt", "eu-west-1", bloc.ServiceS3),

	// leading segments other than "s3" are accepted as bucket names
	// without validation
	Entry("implausible bucket segment", "https://my_bucket.s3.amazonaws.com/k1",
		"s3.us-east-1.amazonaws.com", "/my_bucket/k1", "my_bucket", "us-east-1", bloc.ServiceS3),
)

var _ = DescribeTable("Rebuild (malformed)",
	func(u *url.URL) {
		_, err := bloc.Rebuild(u, nil, bloc.StaticDefaults{DefaultRegion: "us-east-1"})
		Expect(err).To(MatchError(bloc.ErrMalformedLocator))
	},

	Entry("nil locator", (*url.URL)(nil)),
	Entry("blank host", &url.URL{Scheme: "https", Path: "/bkt/k1"}),
	Entry("six host segments", mustParse("https://a.b.s3.eu-west-1.amazonaws.com/k1")),
	Entry("five host segments without s3 marker", mustParse("https://bkt.x3.eu-west-1.amazonaws.com/k1")),
)

var _ = Describe("Rebuild", func() {
	It("prefers host-derived values over the prior record", func() {
		info := &bloc.Info{Region: "eu-central-1", Bucket: "prior"}
		nu, err := bloc.Rebuild(mustParse("https://bkt.s3.ap-south-1.amazonaws.com/k1"), info, bloc.StaticDefaults{DefaultRegion: "us-east-1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(nu.Host).To(Equal("s3.ap-south-1.amazonaws.com"))
		Expect(info.Region).To(Equal("ap-south-1"))
		Expect(info.Bucket).To(Equal("bkt"))
	})

	It("prefers the prior record over configured defaults", func() {
		info := &bloc.Info{Region: "eu-central-1", Bucket: "prior"}
		nu, err := bloc.Rebuild(mustParse("https://s3.amazonaws.com"), info, bloc.StaticDefaults{DefaultRegion: "us-east-1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(nu.Host).To(Equal("s3.eu-central-1.amazonaws.com"))
		Expect(nu.Path).To(Equal("/prior"))
		Expect(info.Region).To(Equal("eu-central-1"))
		Expect(info.Bucket).To(Equal("prior"))
	})

	It("falls back to configured defaults", func() {
		info := new(bloc.Info)
		nu, err := bloc.Rebuild(mustParse("https://s3.amazonaws.com/bkt"), info, bloc.StaticDefaults{DefaultRegion: "us-east-1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(nu.Host).To(Equal("s3.us-east-1.amazonaws.com"))
		Expect(info.Region).To(Equal("us-east-1"))
	})

	It("fails when no region source remains", func() {
		_, err := bloc.Rebuild(mustParse("https://bkt.s3.amazonaws.com/k1"), nil, nil)
		Expect(err).To(MatchError(bloc.ErrRegionUnresolved))

		_, err = bloc.Rebuild(mustParse("https://bkt.s3.amazonaws.com/k1"), new(bloc.Info), bloc.StaticDefaults{})
		Expect(err).To(MatchError(bloc.ErrRegionUnresolved))
	})

	It("fails when no bucket source remains", func() {
		_, err := bloc.Rebuild(mustParse("https://s3.eu-west-1.amazonaws.com"), nil, nil)
		Expect(err).To(MatchError(bloc.ErrBucketUnresolved))

		_, err = bloc.Rebuild(mustParse("https://s3.eu-west-1.amazonaws.com"), new(bloc.Info), nil)
		Expect(err).To(MatchError(bloc.ErrBucketUnresolved))
	})

	It("is idempotent on canonical locators", func() {
		first, err := bloc.Rebuild(mustParse("https://bkt.s3.eu-west-1.amazonaws.com/k1/k2"), nil, nil)
		Expect(err).NotTo(HaveOccurred())

		info := new(bloc.Info)
		second, err := bloc.Rebuild(first, info, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Host).To(Equal(first.Host))
		Expect(second.Path).To(Equal(first.Path))
		Expect(second.String()).To(Equal(first.String()))
		Expect(info.Bucket).To(Equal("bkt"))
		Expect(info.Region).To(Equal("eu-west-1"))
	})

	It("does not mutate the input locator", func() {
		u := mustParse("https://bkt.s3.amazonaws.com/k1?versionId=abc")
		_, err := bloc.Rebuild(u, nil, bloc.StaticDefaults{DefaultRegion: "us-east-1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(u.String()).To(Equal("https://bkt.s3.amazonaws.com/k1?versionId=abc"))
	})

	It("preserves the query string", func() {
		nu, err := bloc.Rebuild(mustParse("https://bkt.s3.amazonaws.com/k1?versionId=abc"), nil, bloc.StaticDefaults{DefaultRegion: "us-east-1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(nu.String()).To(Equal("https://s3.us-east-1.amazonaws.com/bkt/k1?versionId=abc"))
	})
})
