package app

import (
	"fmt"
	"strings"

	"github.com/pfassina/wikiseo/internal/generator"
	"github.com/pfassina/wikiseo/internal/seo"
	"github.com/pfassina/wikiseo/internal/sitemap"
)

// Option is a generator setting with its effective value.
type Option struct {
	Key     string
	Value   string
	Default string
	IsSet   bool
}

var optionDefaults = map[string]string{
	seo.SuffixCanonical:  seo.ValueTrue,
	seo.SuffixSitemap:    seo.ValueTrue,
	seo.SuffixChangeFreq: sitemap.DefaultChangeFreq,
	seo.SuffixPriority:   sitemap.DefaultPriority,
}

func optionSuffix(key string) (string, bool) {
	for _, suffix := range seo.OptionSuffixes {
		if key == seo.OptionKey(generator.WikiGeneratorKey, suffix) {
			return suffix, true
		}
	}
	return "", false
}

// ValidateOption checks that key is a known generator setting and value is
// acceptable for it.
func ValidateOption(key, value string) error {
	suffix, ok := optionSuffix(key)
	if !ok {
		return fmt.Errorf("unknown option %q", key)
	}
	switch suffix {
	case seo.SuffixCanonical, seo.SuffixSitemap:
		if value != seo.ValueTrue && value != seo.ValueFalse {
			return fmt.Errorf("%s must be %q or %q", key, seo.ValueTrue, seo.ValueFalse)
		}
	case seo.SuffixChangeFreq:
		if !sitemap.IsValidChangeFreq(value) {
			return fmt.Errorf("%s must be one of %s", key, strings.Join(sitemap.ChangeFreqValues, ", "))
		}
	case seo.SuffixPriority:
		if !sitemap.IsValidPriority(value) {
			return fmt.Errorf("%s must be a number between 0.0 and 1.0", key)
		}
	}
	return nil
}

// Options returns every generator setting with its stored or default value.
func (a *App) Options() ([]Option, error) {
	stored, err := a.db.ListDataValues(seo.PrefixGenerator)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	values := make(map[string]string, len(stored))
	for _, dv := range stored {
		values[dv.Key] = dv.Value
	}

	opts := make([]Option, 0, len(seo.OptionSuffixes))
	for _, suffix := range seo.OptionSuffixes {
		key := seo.OptionKey(generator.WikiGeneratorKey, suffix)
		opt := Option{Key: key, Default: optionDefaults[suffix], Value: optionDefaults[suffix]}
		if v, ok := values[key]; ok {
			opt.Value, opt.IsSet = v, true
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// SetOption validates and stores a generator setting.
func (a *App) SetOption(key, value string) error {
	if err := ValidateOption(key, value); err != nil {
		return err
	}
	return a.db.SetDataValue(key, value)
}

// UnsetOption removes a stored setting so its default applies again.
func (a *App) UnsetOption(key string) error {
	if _, ok := optionSuffix(key); !ok {
		return fmt.Errorf("unknown option %q", key)
	}
	return a.db.RemoveDataValue(key)
}
