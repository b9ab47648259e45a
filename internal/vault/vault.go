package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const topicExt = ".md"

// Entry represents a topic file in the vault.
type Entry struct {
	PageName string
	Path     string // relative to the vault root
}

// Vault represents a wiki directory of markdown topic files.
type Vault struct {
	Root string
}

func New(root string) *Vault {
	return &Vault{Root: root}
}

// IsTopicFile reports whether name is a markdown file that is not hidden.
func IsTopicFile(name string) bool {
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), topicExt)
}

// PageName derives a topic's page name from its file path.
func PageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ListTopics returns every topic file in the vault sorted by path. Hidden
// files and directories are skipped.
func (v *Vault) ListTopics() ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(v.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == v.Root {
				return err
			}
			return nil // skip unreadable entries
		}

		if d.IsDir() {
			if path != v.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsTopicFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(v.Root, path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{
			PageName: PageName(rel),
			Path:     rel,
		})
		return nil
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, err
}

// Abs returns the absolute path of a vault-relative path.
func (v *Vault) Abs(rel string) string {
	return filepath.Join(v.Root, rel)
}

// Rel returns the vault-relative form of an absolute path.
func (v *Vault) Rel(abs string) string {
	rel, err := filepath.Rel(v.Root, abs)
	if err != nil {
		return abs
	}
	return rel
}

// Exists reports whether the vault root is an existing directory.
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.Root)
	return err == nil && info.IsDir()
}
