// Package sitemap formats friendly URLs as a sitemaps.org urlset.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pfassina/wikiseo/internal/seo"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreqValues are the change frequencies allowed by the sitemap protocol.
var ChangeFreqValues = []string{"always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}

// PriorityValues are the priorities offered to administrators, highest first.
var PriorityValues = []string{"1.0", "0.9", "0.8", "0.7", "0.6", "0.5", "0.4", "0.3", "0.2", "0.1", "0.0"}

var (
	DefaultChangeFreq = ChangeFreqValues[3]
	DefaultPriority   = PriorityValues[3]
)

// IsValidChangeFreq reports whether v is a sitemap change frequency.
func IsValidChangeFreq(v string) bool {
	return slices.Contains(ChangeFreqValues, v)
}

// IsValidPriority reports whether v is a number in [0, 1].
func IsValidPriority(v string) bool {
	p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return false
	}
	return p >= 0 && p <= 1
}

// FormatDate renders t as a W3C date (YYYY-MM-DD) in UTC.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Write emits the urlset for every URL flagged for the sitemap. Locations are
// baseURL joined with the friendly path.
func Write(w io.Writer, baseURL string, urls []seo.FriendlyURL) error {
	base := strings.TrimRight(baseURL, "/")

	set := urlSet{Xmlns: xmlns}
	for _, u := range urls {
		if !u.Sitemap {
			continue
		}
		set.URLs = append(set.URLs, url{
			Loc:        base + u.FriendlyURL,
			LastMod:    u.SitemapLastmod,
			ChangeFreq: u.SitemapChangeFreq,
			Priority:   u.SitemapPriority,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode urlset: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	return nil
}
