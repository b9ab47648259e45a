package index

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pfassina/wikiseo/internal/locale"
	"github.com/pfassina/wikiseo/internal/markdown"
	"github.com/pfassina/wikiseo/internal/vault"
	"github.com/pfassina/wikiseo/internal/wiki"
)

// Stats summarises an IndexAll run.
type Stats struct {
	Indexed   int // new versions recorded
	Unchanged int
	Removed   int
	Failed    int
}

// Indexer manages the topic indexing pipeline.
type Indexer struct {
	db              *DB
	parser          *markdown.Parser
	vault           *vault.Vault
	defaultLanguage string
	logger          *zap.Logger
}

func NewIndexer(db *DB, v *vault.Vault, defaultLanguage string, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{
		db:              db,
		parser:          markdown.NewParser(),
		vault:           v,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// IndexAll indexes every topic file in the vault and removes topics whose
// files are gone. Per-file failures do not stop the run; they are joined
// into the returned error.
func (idx *Indexer) IndexAll() (Stats, error) {
	var stats Stats

	entries, err := idx.vault.ListTopics()
	if err != nil {
		return stats, fmt.Errorf("walk vault: %w", err)
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Path] = true
	}

	// Prune first so a renamed file can take over its old page name.
	paths, err := idx.db.TopicPaths()
	if err != nil {
		return stats, fmt.Errorf("list indexed topics: %w", err)
	}
	for _, p := range paths {
		if present[p] {
			continue
		}
		if err := idx.db.DeleteTopic(p); err != nil {
			return stats, fmt.Errorf("remove %s: %w", p, err)
		}
		idx.logger.Debug("removed topic", zap.String("path", p))
		stats.Removed++
	}

	var errs []error
	for _, e := range entries {
		changed, err := idx.IndexFile(idx.vault.Abs(e.Path))
		switch {
		case err != nil:
			stats.Failed++
			errs = append(errs, err)
		case changed:
			stats.Indexed++
		default:
			stats.Unchanged++
		}
	}

	idx.logger.Info("index complete",
		zap.Int("indexed", stats.Indexed),
		zap.Int("unchanged", stats.Unchanged),
		zap.Int("removed", stats.Removed),
		zap.Int("failed", stats.Failed),
	)
	return stats, errors.Join(errs...)
}

// IndexFile indexes a single topic file. It reports whether a new version
// was recorded; an unchanged file is a no-op.
func (idx *Indexer) IndexFile(absPath string) (bool, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", absPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", absPath, err)
	}

	relPath := idx.vault.Rel(absPath)

	hash := idx.contentHash(content)
	existingHash, err := idx.db.LatestHash(relPath)
	if err != nil {
		return false, fmt.Errorf("read hash %s: %w", relPath, err)
	}
	if hash == existingHash {
		return false, nil
	}

	parsed, err := idx.parser.Parse(content)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", relPath, err)
	}

	editedAt := info.ModTime()
	if parsed.Frontmatter != nil {
		lastmod, ok, err := parsed.Frontmatter.LastModified()
		if err != nil {
			idx.logger.Warn("invalid lastmod, using file time",
				zap.String("path", relPath), zap.Error(err))
		} else if ok {
			editedAt = lastmod
		}
	}

	pageName := vault.PageName(relPath)
	topicID, err := idx.db.UpsertTopic(pageName, relPath)
	if err != nil {
		return false, fmt.Errorf("upsert topic %s: %w", relPath, err)
	}

	contents := idx.contents(parsed, relPath)
	if _, err := idx.db.AddVersion(topicID, editedAt, hash, contents); err != nil {
		return false, fmt.Errorf("add version %s: %w", relPath, err)
	}

	idx.logger.Debug("indexed topic",
		zap.String("path", relPath),
		zap.String("page_name", pageName),
		zap.Int("languages", len(contents)),
	)
	return true, nil
}

// contentHash fingerprints a file together with the default language, since
// the stored contents depend on both.
func (idx *Indexer) contentHash(content []byte) string {
	h := sha256.New()
	h.Write([]byte(idx.defaultLanguage))
	h.Write([]byte{0})
	h.Write(content)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// contents builds the per-language contents of a parsed topic. The default
// language gets the body and the main title; translated titles are keyed by
// their canonical language tag.
func (idx *Indexer) contents(parsed *markdown.ParsedTopic, relPath string) map[string]wiki.Content {
	out := map[string]wiki.Content{}
	for lang, title := range parsed.Translations() {
		tag, err := locale.Canonical(lang)
		if err != nil {
			idx.logger.Warn("ignoring title with invalid language",
				zap.String("path", relPath), zap.String("language", lang))
			continue
		}
		out[tag] = wiki.Content{Language: tag, Title: title}
	}

	def := wiki.Content{
		Language: idx.defaultLanguage,
		Title:    parsed.Title(),
		Body:     string(parsed.Body),
	}
	if def.Title == "" {
		def.Title = out[idx.defaultLanguage].Title
	}
	out[idx.defaultLanguage] = def
	return out
}

// RemoveFile removes a file's topic from the index.
func (idx *Indexer) RemoveFile(absPath string) error {
	return idx.db.DeleteTopic(idx.vault.Rel(absPath))
}

// Root returns the vault root directory.
func (idx *Indexer) Root() string {
	return idx.vault.Root
}
