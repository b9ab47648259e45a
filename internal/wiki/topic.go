package wiki

import (
	"strings"
	"time"
)

// Topic is a wiki page.
type Topic struct {
	ID       int64
	PageName string
	Path     string // vault-relative source file
}

// Content is the per-language text of a topic version.
type Content struct {
	Language string
	Title    string
	Body     string
}

// TopicVersion is one recorded revision of a topic.
type TopicVersion struct {
	ID       int64
	TopicID  int64
	EditedAt time.Time
	Hash     string
	Contents map[string]Content
}

// Title returns the content title for language, or "" when the version has
// no content (or only a blank title) in that language.
func (v *TopicVersion) Title(language string) string {
	if v == nil {
		return ""
	}
	c, ok := v.Contents[language]
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.Title)
}
