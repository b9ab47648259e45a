// Package seo holds the records exchanged between friendly URL generators and
// the sitemap/rewrite consumers, plus the datastore keys generators read.
package seo

// FriendlyURL maps a readable path to an internal route together with the
// sitemap metadata of that page.
type FriendlyURL struct {
	FriendlyURL       string `json:"friendly_url"`
	TechnicalURL      string `json:"technical_url"`
	Canonical         bool   `json:"canonical"`
	Sitemap           bool   `json:"sitemap"`
	SitemapChangeFreq string `json:"sitemap_changefreq"`
	SitemapLastmod    string `json:"sitemap_lastmod"`
	SitemapPriority   string `json:"sitemap_priority"`
}

// GeneratorOptions are the caller-supplied knobs of a generation run.
type GeneratorOptions struct {
	// AddPath prefixes every friendly path with the generator's section segment.
	AddPath bool
	// RunID tags the generator's log lines with the run they belong to.
	RunID string
}

// Generator produces friendly URLs for one content type.
type Generator interface {
	Name() string
	Run(options GeneratorOptions) ([]FriendlyURL, error)
}

// Datastore keys for generator settings. A full key is
// PrefixGenerator + generator key + one of the suffixes.
const (
	PrefixGenerator  = "seo.generator.option."
	SuffixCanonical  = ".canonical"
	SuffixSitemap    = ".sitemap"
	SuffixChangeFreq = ".changeFreq"
	SuffixPriority   = ".priority"
	ValueTrue        = "true"
	ValueFalse       = "false"
)

// OptionKey builds the datastore key of a generator setting.
func OptionKey(generatorKey, suffix string) string {
	return PrefixGenerator + generatorKey + suffix
}

// OptionSuffixes lists the setting suffixes every generator understands.
var OptionSuffixes = []string{SuffixCanonical, SuffixSitemap, SuffixChangeFreq, SuffixPriority}
