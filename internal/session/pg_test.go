package session

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPGStore runs against a real database when STOREFRONT_TEST_DSN is set.
func TestPGStore(t *testing.T) {
	dsn := os.Getenv("STOREFRONT_TEST_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := NewPGStore(pool)
	require.NoError(t, s.EnsureSchema(ctx))

	origin := "test-" + uuid.NewString()
	_, ok, err := s.Get(ctx, origin, CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, origin, CredentialKey, "a"))
	require.NoError(t, s.Set(ctx, origin, CredentialKey, "b"))
	v, ok, err := s.Get(ctx, origin, CredentialKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	require.NoError(t, s.Delete(ctx, origin, CredentialKey))
	_, ok, err = s.Get(ctx, origin, CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
