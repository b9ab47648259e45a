package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnclosedFrontmatter is returned when a document opens a front matter
// block but never closes it.
var ErrUnclosedFrontmatter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Frontmatter holds the topic fields read from YAML front matter.
type Frontmatter struct {
	// Title is the default-language title.
	Title string `yaml:"title,omitempty"`
	// Titles maps a language tag to its translated title.
	Titles map[string]string `yaml:"titles,omitempty"`
	// Lastmod overrides the file modification time as the edit date.
	Lastmod string `yaml:"lastmod,omitempty"`
}

// SplitFrontmatter separates the `---` delimited front matter from the body.
// had is false, and body the whole input, when there is no front matter.
func SplitFrontmatter(content []byte) (frontmatter, body []byte, had bool, err error) {
	nl := "\n"
	if bytes.HasPrefix(content, []byte("---\r\n")) {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}
	if string(rest) == "---" {
		return []byte{}, nil, true, nil
	}

	closeSeq := []byte(nl + "---")
	idx := bytes.Index(rest, closeSeq)
	for idx >= 0 {
		after := rest[idx+len(closeSeq):]
		if len(after) == 0 {
			return rest[:idx+len(nl)], nil, true, nil
		}
		if bytes.HasPrefix(after, []byte(nl)) {
			return rest[:idx+len(nl)], after[len(nl):], true, nil
		}
		// "---" followed by more text on the same line is content.
		next := bytes.Index(after, closeSeq)
		if next < 0 {
			break
		}
		idx += len(closeSeq) + next
	}
	return nil, nil, false, ErrUnclosedFrontmatter
}

// ExtractFrontmatter parses the front matter of content. It returns nil
// front matter, and the whole input as body, when there is none.
func ExtractFrontmatter(content []byte) (*Frontmatter, []byte, error) {
	raw, body, had, err := SplitFrontmatter(content)
	if err != nil {
		return nil, nil, err
	}
	if !had {
		return nil, body, nil
	}

	fm := &Frontmatter{}
	if err := yaml.Unmarshal(raw, fm); err != nil {
		return nil, nil, fmt.Errorf("parse front matter: %w", err)
	}
	return fm, body, nil
}

var lastmodLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", time.DateOnly}

// LastModified parses Lastmod. ok is false when it is unset.
func (fm *Frontmatter) LastModified() (t time.Time, ok bool, err error) {
	if fm == nil || strings.TrimSpace(fm.Lastmod) == "" {
		return time.Time{}, false, nil
	}
	v := strings.TrimSpace(fm.Lastmod)
	for _, layout := range lastmodLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("parse lastmod %q: unsupported date format", v)
}

// Render serialises fm as a front matter block, delimiters included.
func (fm *Frontmatter) Render() ([]byte, error) {
	data, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("render front matter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(data)
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}
