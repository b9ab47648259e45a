package seo

import "testing"

func TestConvertToFriendlyURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"My Page! (Draft)", "my-page-draft"},
		{"2024-01-01 Daily", "2024-01-01-daily"},
		{"", ""},
		{"Already-Slugged", "already-slugged"},
		{"Éléphant à la plage", "elephant-a-la-plage"},
		{"  --Trim me--  ", "trim-me"},
		{"snake_case_name", "snake-case-name"},
		{"Ça va? Très bien.", "ca-va-tres-bien"},
		{"日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ConvertToFriendlyURL(tt.input)
			if got != tt.want {
				t.Errorf("ConvertToFriendlyURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultSlugger(t *testing.T) {
	if got := DefaultSlugger.Slugify("Wiki Home"); got != "wiki-home" {
		t.Errorf("Slugify = %q, want %q", got, "wiki-home")
	}
}
