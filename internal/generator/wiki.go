package generator

import (
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pfassina/wikiseo/internal/datastore"
	"github.com/pfassina/wikiseo/internal/logging"
	"github.com/pfassina/wikiseo/internal/metrics"
	"github.com/pfassina/wikiseo/internal/seo"
	"github.com/pfassina/wikiseo/internal/sitemap"
	"github.com/pfassina/wikiseo/internal/wiki"
)

const (
	WikiGeneratorName = "Wiki Friendly URL Generator"
	// WikiGeneratorKey is the datastore key segment of the wiki generator.
	WikiGeneratorKey = "wiki"

	wikiTechnicalURL = "/jsp/site/Portal.jsp?page=wiki&page_name="
	wikiPath         = "/wiki/"
	rootPath         = "/"
)

// TopicLister lists the topics to generate URLs for.
type TopicLister interface {
	ListTopics() ([]wiki.Topic, error)
}

// VersionFinder returns the latest version of a topic, or nil when the topic
// has none.
type VersionFinder interface {
	LatestVersion(topicID int64) (*wiki.TopicVersion, error)
}

// LocaleProvider enumerates the published languages.
type LocaleProvider interface {
	Languages() []string
	IsDefault(lang string) bool
}

// Slugger converts free text to a URL-safe slug.
type Slugger interface {
	Slugify(text string) string
}

// Option configures a WikiGenerator.
type Option func(*WikiGenerator)

func WithLogger(l *zap.Logger) Option {
	return func(g *WikiGenerator) { g.logger = logging.OrNop(l) }
}

func WithSlugger(s Slugger) Option {
	return func(g *WikiGenerator) { g.slugs = s }
}

func WithRecorder(r metrics.Recorder) Option {
	return func(g *WikiGenerator) { g.recorder = r }
}

func WithTopicLister(l TopicLister) Option {
	return func(g *WikiGenerator) { g.topics = l }
}

// WikiGenerator builds friendly URLs for wiki topics, one per topic and
// supported language.
type WikiGenerator struct {
	versions VersionFinder
	locales  LocaleProvider
	store    datastore.Store
	topics   TopicLister
	slugs    Slugger
	logger   *zap.Logger
	recorder metrics.Recorder
}

var _ seo.Generator = (*WikiGenerator)(nil)

func NewWikiGenerator(versions VersionFinder, locales LocaleProvider, store datastore.Store, opts ...Option) *WikiGenerator {
	g := &WikiGenerator{
		versions: versions,
		locales:  locales,
		store:    store,
		slugs:    seo.DefaultSlugger,
		logger:   zap.NewNop(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *WikiGenerator) Name() string { return WikiGeneratorName }

func (g *WikiGenerator) Key() string { return WikiGeneratorKey }

// settings is the sitemap metadata shared by every URL of a run.
type settings struct {
	canonical  bool
	sitemap    bool
	changeFreq string
	priority   string
}

func (g *WikiGenerator) loadSettings(log *zap.Logger) settings {
	s := settings{
		canonical:  datastore.Bool(g.store, seo.OptionKey(WikiGeneratorKey, seo.SuffixCanonical), true),
		sitemap:    datastore.Bool(g.store, seo.OptionKey(WikiGeneratorKey, seo.SuffixSitemap), true),
		changeFreq: g.store.GetDataValue(seo.OptionKey(WikiGeneratorKey, seo.SuffixChangeFreq), sitemap.DefaultChangeFreq),
		priority:   g.store.GetDataValue(seo.OptionKey(WikiGeneratorKey, seo.SuffixPriority), sitemap.DefaultPriority),
	}
	if !sitemap.IsValidChangeFreq(s.changeFreq) {
		log.Warn("invalid sitemap change frequency, using default",
			zap.String("value", s.changeFreq), zap.String("default", sitemap.DefaultChangeFreq))
		s.changeFreq = sitemap.DefaultChangeFreq
	}
	if !sitemap.IsValidPriority(s.priority) {
		log.Warn("invalid sitemap priority, using default",
			zap.String("value", s.priority), zap.String("default", sitemap.DefaultPriority))
		s.priority = sitemap.DefaultPriority
	}
	return s
}

// Run lists the topics and generates their URLs. Only a listing failure is
// returned as an error.
func (g *WikiGenerator) Run(options seo.GeneratorOptions) ([]seo.FriendlyURL, error) {
	if g.topics == nil {
		return nil, errNoTopicLister
	}
	topics, err := g.topics.ListTopics()
	if err != nil {
		return nil, wrapListErr(err)
	}
	return g.Generate(topics, options), nil
}

// Generate emits one FriendlyURL per (topic, language) pair, in topic order
// then language order. Topics without a version are logged and skipped.
func (g *WikiGenerator) Generate(topics []wiki.Topic, options seo.GeneratorOptions) []seo.FriendlyURL {
	start := time.Now()
	log := g.logger
	if options.RunID != "" {
		log = log.With(zap.String("run_id", options.RunID))
	}
	s := g.loadSettings(log)
	languages := g.locales.Languages()

	prefix := rootPath
	if options.AddPath {
		prefix = wikiPath
	}

	urls := make([]seo.FriendlyURL, 0, len(topics)*len(languages))
	for _, t := range topics {
		version, err := g.versions.LatestVersion(t.ID)
		if err != nil {
			log.Warn("topic version lookup failed, skipping topic",
				zap.Int64("topic_id", t.ID), zap.String("page_name", t.PageName), zap.Error(err))
			g.recorder.IncSkipped(WikiGeneratorKey, metrics.SkipLookupFailure)
			continue
		}
		if version == nil {
			log.Warn("topic has no version, skipping topic",
				zap.Int64("topic_id", t.ID), zap.String("page_name", t.PageName))
			g.recorder.IncSkipped(WikiGeneratorKey, metrics.SkipNoVersion)
			continue
		}

		lastmod := sitemap.FormatDate(version.EditedAt)
		for _, lang := range languages {
			u := seo.FriendlyURL{
				FriendlyURL:       prefix + g.slug(t, version.Title(lang)),
				TechnicalURL:      wikiTechnicalURL + url.QueryEscape(t.PageName),
				Canonical:         s.canonical,
				Sitemap:           s.sitemap,
				SitemapChangeFreq: s.changeFreq,
				SitemapLastmod:    lastmod,
				SitemapPriority:   s.priority,
			}
			if !g.locales.IsDefault(lang) {
				u.FriendlyURL += "/" + lang
				u.TechnicalURL += "&language=" + url.QueryEscape(lang)
			}
			urls = append(urls, u)
			g.recorder.IncGenerated(WikiGeneratorKey, lang)
		}
	}

	g.recorder.ObserveRunDuration(WikiGeneratorKey, time.Since(start))
	log.Debug("wiki friendly urls generated",
		zap.Int("topics", len(topics)), zap.Int("urls", len(urls)))
	return urls
}

// slug picks the title to slugify: the language title when present, else the
// page name. An empty slug falls back to the page name, then to the topic id.
func (g *WikiGenerator) slug(t wiki.Topic, title string) string {
	if title == "" {
		title = t.PageName
	}
	if s := g.slugs.Slugify(title); s != "" {
		return s
	}
	if s := g.slugs.Slugify(t.PageName); s != "" {
		return s
	}
	return "topic-" + strconv.FormatInt(t.ID, 10)
}
