package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/wikiseo/internal/datastore"
)

var (
	_ datastore.Store  = (*DB)(nil)
	_ datastore.Writer = (*DB)(nil)
)

func TestDatastore(t *testing.T) {
	db := openTestDB(t)

	assert.Equal(t, "fallback", db.GetDataValue("seo.generator.option.wiki.priority", "fallback"))

	require.NoError(t, db.SetDataValue("seo.generator.option.wiki.priority", "0.5"))
	require.NoError(t, db.SetDataValue("seo.generator.option.wiki.priority", "0.3"))
	require.NoError(t, db.SetDataValue("seo.generator.option.wiki.canonical", "false"))
	require.NoError(t, db.SetDataValue("other.key", "x"))

	assert.Equal(t, "0.3", db.GetDataValue("seo.generator.option.wiki.priority", "fallback"))

	v, ok, err := db.LookupDataValue("other.key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	values, err := db.ListDataValues("seo.generator.option.wiki")
	require.NoError(t, err)
	assert.Equal(t, []DataValue{
		{Key: "seo.generator.option.wiki.canonical", Value: "false"},
		{Key: "seo.generator.option.wiki.priority", Value: "0.3"},
	}, values)

	require.NoError(t, db.RemoveDataValue("other.key"))
	require.NoError(t, db.RemoveDataValue("other.key"))
	_, ok, err = db.LookupDataValue("other.key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDatastore_ReadErrorReturnsDefault(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Equal(t, "weekly", db.GetDataValue("any", "weekly"))
}
