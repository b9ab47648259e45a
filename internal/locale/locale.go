// Package locale enumerates the languages a site is published in.
package locale

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrNoDefault           = errors.New("default language is required")
	ErrDefaultNotSupported = errors.New("default language is not in the supported languages")
)

// Provider is an ordered, validated set of languages with one default.
type Provider struct {
	languages []string
	def       string
}

// New parses and canonicalises the language tags. An empty supported list
// means only the default language.
func New(supported []string, defaultLanguage string) (*Provider, error) {
	if strings.TrimSpace(defaultLanguage) == "" {
		return nil, ErrNoDefault
	}
	def, err := canonical(defaultLanguage)
	if err != nil {
		return nil, err
	}

	if len(supported) == 0 {
		return &Provider{languages: []string{def}, def: def}, nil
	}

	langs := make([]string, 0, len(supported))
	for _, s := range supported {
		tag, err := canonical(s)
		if err != nil {
			return nil, err
		}
		if slices.Contains(langs, tag) {
			return nil, fmt.Errorf("duplicate language %q", tag)
		}
		langs = append(langs, tag)
	}
	if !slices.Contains(langs, def) {
		return nil, fmt.Errorf("%w: %q not in %v", ErrDefaultNotSupported, def, langs)
	}

	return &Provider{languages: langs, def: def}, nil
}

// Languages returns the supported languages in configuration order.
func (p *Provider) Languages() []string {
	return slices.Clone(p.languages)
}

// Default returns the default language.
func (p *Provider) Default() string {
	return p.def
}

// IsDefault reports whether lang is the default language.
func (p *Provider) IsDefault(lang string) bool {
	return lang == p.def
}

// Canonical returns the canonical form of a language tag, e.g. "en-us" -> "en-US".
func Canonical(s string) (string, error) {
	return canonical(s)
}

func canonical(s string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", s, err)
	}
	return tag.String(), nil
}
