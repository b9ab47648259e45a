package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/wikiseo/internal/seo"
)

func TestPublish_FailedRunKeepsPreviousOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sitemap.xml")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0644))

	genErr := errors.New("list topics: database is locked")
	flags := OutputFlags{Format: "sitemap", Output: out}

	err := flags.publish("https://docs.example.com", nil, genErr, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, genErr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestPublish_PartialRunIsWritten(t *testing.T) {
	out := filepath.Join(t.TempDir(), "urls.json")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0644))

	genErr := errors.New("broken: boom")
	urls := []seo.FriendlyURL{{FriendlyURL: "/home", TechnicalURL: "/jsp/site/Portal.jsp?page=wiki&page_name=home"}}
	flags := OutputFlags{Format: "json", Output: out}

	err := flags.publish("https://docs.example.com", urls, genErr, nil)
	assert.ErrorIs(t, err, genErr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/home")
}

func TestPublish_Success(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sitemap.xml")
	flags := OutputFlags{Format: "sitemap", Output: out}

	require.NoError(t, flags.publish("https://docs.example.com", nil, nil, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<urlset")
}
