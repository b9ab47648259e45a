package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pfassina/wikiseo/internal/seo"
)

type stubGenerator struct {
	name string
	urls []seo.FriendlyURL
	err  error
	got  seo.GeneratorOptions
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Run(options seo.GeneratorOptions) ([]seo.FriendlyURL, error) {
	s.got = options
	return s.urls, s.err
}

func TestRunAll(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a := &stubGenerator{name: "a", urls: []seo.FriendlyURL{{FriendlyURL: "/a"}}}
	broken := &stubGenerator{name: "broken", err: errors.New("boom")}
	b := &stubGenerator{name: "b", urls: []seo.FriendlyURL{{FriendlyURL: "/b1"}, {FriendlyURL: "/b2"}}}

	urls, err := RunAll([]seo.Generator{a, broken, b}, seo.GeneratorOptions{AddPath: true}, zap.New(core))

	require.Error(t, err)
	assert.ErrorContains(t, err, "broken: boom")
	require.Len(t, urls, 3)
	assert.Equal(t, "/a", urls[0].FriendlyURL)
	assert.Equal(t, "/b2", urls[2].FriendlyURL)
	assert.True(t, a.got.AddPath)
	assert.True(t, b.got.AddPath)

	require.Equal(t, 1, logs.FilterMessage("generator failed").Len())
	require.Equal(t, 2, logs.FilterMessage("generator finished").Len())
	runID := logs.All()[0].ContextMap()["run_id"]
	assert.NotEmpty(t, runID)
	for _, e := range logs.All() {
		assert.Equal(t, runID, e.ContextMap()["run_id"])
	}
	assert.Equal(t, runID, a.got.RunID, "generators log under the same run")
	assert.Equal(t, runID, b.got.RunID)
}

func TestRunAll_KeepsCallerRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a := &stubGenerator{name: "a"}

	_, err := RunAll([]seo.Generator{a}, seo.GeneratorOptions{RunID: "fixed"}, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, "fixed", a.got.RunID)
	assert.Equal(t, "fixed", logs.All()[0].ContextMap()["run_id"])
}

func TestRunAll_NoGenerators(t *testing.T) {
	urls, err := RunAll(nil, seo.GeneratorOptions{}, nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
}
