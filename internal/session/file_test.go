package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	_, ok, err := s.Get(ctx, "http://localhost:5000", CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "http://localhost:5000", CredentialKey, "tok"))
	require.NoError(t, s.Set(ctx, "https://shop.example", CredentialKey, "other"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a fresh store over the same file sees the values
	s2, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := s2.Get(ctx, "http://localhost:5000", CredentialKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, s2.Delete(ctx, "http://localhost:5000", CredentialKey))
	require.NoError(t, s2.Delete(ctx, "http://localhost:5000", CredentialKey))
	_, ok, err = s.Get(ctx, "http://localhost:5000", CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.Get(ctx, "https://shop.example", CredentialKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "other", v)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml [["), 0o600))
	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = s.Get(context.Background(), "o", CredentialKey)
	assert.Error(t, err)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Delete(ctx, "nobody", CredentialKey))
	require.NoError(t, m.Set(ctx, "o", "k", "v"))
	require.NoError(t, m.Delete(ctx, "o", "k"))
	_, ok, _ := m.Get(ctx, "o", "k")
	assert.False(t, ok)
}
