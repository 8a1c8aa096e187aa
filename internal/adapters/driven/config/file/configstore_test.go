package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("data_dir", "/tmp/archive")
	require.NoError(t, err)

	val, ok := store.Get("data_dir")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/archive", val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("data_dir", "/tmp/archive")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/archive", store.GetString("data_dir"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	err = store.Set("search_limit", 42)
	require.NoError(t, err)
	assert.Equal(t, "", store.GetString("search_limit"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("search_limit", 42)
	require.NoError(t, err)

	assert.Equal(t, 42, store.GetInt("search_limit"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	err = store.Set("data_dir", "not an int")
	require.NoError(t, err)
	assert.Equal(t, 0, store.GetInt("data_dir"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("search_limit", 25))

	// A fresh store over the same directory sees the saved value.
	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 25, reloaded.GetInt("search_limit"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search]\nlimit = 7\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 7, store.GetInt("search.limit"))
}

func TestConfigStore_LoadMissingFileStartsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}
