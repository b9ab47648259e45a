package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Parser wraps goldmark for topic files.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(),
	}
}

// Parse splits the front matter from content and parses the markdown body.
func (p *Parser) Parse(content []byte) (*ParsedTopic, error) {
	fm, body, err := ExtractFrontmatter(content)
	if err != nil {
		return nil, err
	}

	doc := p.md.Parser().Parse(text.NewReader(body))

	return &ParsedTopic{
		Frontmatter: fm,
		Body:        body,
		Headings:    ExtractHeadings(doc, body),
	}, nil
}

// ParsedTopic contains the metadata extracted from a topic file.
type ParsedTopic struct {
	Frontmatter *Frontmatter
	Body        []byte
	Headings    []Heading
}

// Title returns the front matter title, else the text of the first level-1
// heading, else "".
func (pt *ParsedTopic) Title() string {
	if pt.Frontmatter != nil && pt.Frontmatter.Title != "" {
		return pt.Frontmatter.Title
	}
	for _, h := range pt.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// Translations returns the non-empty translated titles keyed by language.
func (pt *ParsedTopic) Translations() map[string]string {
	out := map[string]string{}
	if pt.Frontmatter == nil {
		return out
	}
	for lang, title := range pt.Frontmatter.Titles {
		if title != "" {
			out[lang] = title
		}
	}
	return out
}
