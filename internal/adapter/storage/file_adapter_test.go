package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAdapter_LoadMissingFile(t *testing.T) {
	adapter := NewFileAdapter(filepath.Join(t.TempDir(), "storage.json"))

	_, ok, err := adapter.Load(context.Background(), "@RocketShoes:cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileAdapter_SaveKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	adapter := NewFileAdapter(path)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, "@RocketShoes:theme", "dark"))
	require.NoError(t, adapter.Save(ctx, "@RocketShoes:cart", "[]"))
	require.NoError(t, adapter.Save(ctx, "@RocketShoes:cart", `[{"id":1}]`))

	reopened := NewFileAdapter(path)

	value, ok, err := reopened.Load(ctx, "@RocketShoes:cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, value)

	theme, ok, err := reopened.Load(ctx, "@RocketShoes:theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", theme)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFileAdapter_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	adapter := NewFileAdapter(path)

	_, _, err := adapter.Load(context.Background(), "@RocketShoes:cart")
	assert.Error(t, err)

	err = adapter.Save(context.Background(), "@RocketShoes:cart", "[]")
	assert.Error(t, err)
}

func TestFileAdapter_SaveIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	adapter := NewFileAdapter(path)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, "@RocketShoes:cart", `[{"id":2}]`))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, adapter.Save(ctx, "@RocketShoes:cart", `[{"id":2}]`))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
