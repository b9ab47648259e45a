package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfassina/wikiseo/internal/markdown"
)

var (
	ErrTopicExists     = errors.New("topic already exists")
	ErrInvalidPageName = errors.New("invalid page name")
	ErrInvalidDir      = errors.New("invalid topic directory")
)

// ValidatePageName rejects names that cannot be a single file name.
func ValidatePageName(pageName string) error {
	switch {
	case strings.TrimSpace(pageName) == "":
		return fmt.Errorf("%w: empty", ErrInvalidPageName)
	case strings.HasPrefix(pageName, "."):
		return fmt.Errorf("%w: %q is hidden", ErrInvalidPageName, pageName)
	case strings.ContainsAny(pageName, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidPageName, pageName)
	}
	return nil
}

// ValidateDir rejects directories that are absolute or leave the vault.
func ValidateDir(dir string) error {
	if dir == "" {
		return nil
	}
	if filepath.IsAbs(dir) || filepath.VolumeName(dir) != "" {
		return fmt.Errorf("%w: %q is absolute", ErrInvalidDir, dir)
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q is outside the vault", ErrInvalidDir, dir)
	}
	for _, part := range strings.Split(clean, string(filepath.Separator)) {
		if part != "." && strings.HasPrefix(part, ".") {
			return fmt.Errorf("%w: %q is hidden", ErrInvalidDir, dir)
		}
	}
	return nil
}

// CreateTopic writes a new topic file under dir (vault-relative, may be "")
// with a front matter block holding the titles. It returns the absolute path.
func (v *Vault) CreateTopic(dir, pageName, title string, titles map[string]string) (string, error) {
	if err := ValidatePageName(pageName); err != nil {
		return "", err
	}
	if err := ValidateDir(dir); err != nil {
		return "", err
	}

	relPath := filepath.Join(dir, pageName+topicExt)
	absPath := v.Abs(relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	fm := &markdown.Frontmatter{Title: title}
	if len(titles) > 0 {
		fm.Titles = titles
	}
	header, err := fm.Render()
	if err != nil {
		return "", err
	}

	content := append(header, '\n')
	if title != "" {
		content = append(content, []byte("# "+title+"\n\n")...)
	}

	// O_EXCL: never overwrite an existing topic.
	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return absPath, fmt.Errorf("%w: %s", ErrTopicExists, relPath)
	}
	if err != nil {
		return "", fmt.Errorf("create topic: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write topic: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close topic: %w", err)
	}

	return absPath, nil
}
