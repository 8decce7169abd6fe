package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONArray(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "ok.json", `[{"name":"a"},{"name":"b"}]`)

	records, err := ReadJSONArray(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[1].Get("name").String())
}

func TestReadJSONArray_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadJSONArray(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrSourceMissing)

	_, err = ReadJSONArray(writeSource(t, dir, "object.json", `{"name":"a"}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSourceMissing)
	assert.Contains(t, err.Error(), "expected a JSON array")

	_, err = ReadJSONArray(writeSource(t, dir, "broken.json", `[{"name":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestReadJSONArray_Empty(t *testing.T) {
	records, err := ReadJSONArray(writeSource(t, t.TempDir(), "empty.json", `[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}
