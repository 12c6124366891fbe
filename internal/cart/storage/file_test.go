package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Set("user-1", []byte(`[{"id":"a"}]`)))

	data, err := fs.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), data)
}

func TestFileStorage_MissingKey(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_OverwriteReplacesValue(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Set("user-1", []byte("old")))
	require.NoError(t, fs.Set("user-1", []byte("new")))

	data, err := fs.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestFileStorage_KeyWithSeparatorsStaysInDir(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Set("tenant/user:1", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(entries[0].Name()), entries[0].Name())
}

func TestFileStorage_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "carts")

	_, err := NewFileStorage(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
