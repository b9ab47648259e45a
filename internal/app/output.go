package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pfassina/wikiseo/internal/seo"
	"github.com/pfassina/wikiseo/internal/sitemap"
)

// Output formats of the generate command.
const (
	FormatSitemap = "sitemap"
	FormatJSON    = "json"
)

// WriteURLs renders urls in the given format.
func WriteURLs(w io.Writer, format, baseURL string, urls []seo.FriendlyURL) error {
	switch format {
	case FormatSitemap:
		return sitemap.Write(w, baseURL, urls)
	case FormatJSON:
		if urls == nil {
			urls = []seo.FriendlyURL{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(urls)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteURLsFile renders urls to path through a temporary file so readers
// never see a partial sitemap.
func WriteURLsFile(path, format, baseURL string, urls []seo.FriendlyURL) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := WriteURLs(tmp, format, baseURL, urls); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
