package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New([]string{"en", "fr", "de"}, "fr")
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "fr", "de"}, p.Languages())
	assert.Equal(t, "fr", p.Default())
	assert.True(t, p.IsDefault("fr"))
	assert.False(t, p.IsDefault("en"))
}

func TestNew_Canonicalises(t *testing.T) {
	p, err := New([]string{" en-us ", "pt-br"}, "EN-US")
	require.NoError(t, err)

	assert.Equal(t, []string{"en-US", "pt-BR"}, p.Languages())
	assert.Equal(t, "en-US", p.Default())
}

func TestNew_DefaultOnly(t *testing.T) {
	p, err := New(nil, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, p.Languages())
}

func TestNew_Errors(t *testing.T) {
	_, err := New([]string{"en"}, "")
	assert.ErrorIs(t, err, ErrNoDefault)

	_, err = New([]string{"en", "fr"}, "de")
	assert.ErrorIs(t, err, ErrDefaultNotSupported)

	_, err = New([]string{"en", "EN"}, "en")
	assert.ErrorContains(t, err, "duplicate")

	_, err = New([]string{"en", "not a tag!"}, "en")
	assert.Error(t, err)
}

func TestLanguagesIsCopy(t *testing.T) {
	p, err := New([]string{"en", "fr"}, "en")
	require.NoError(t, err)

	langs := p.Languages()
	langs[0] = "xx"
	assert.Equal(t, []string{"en", "fr"}, p.Languages())
}
