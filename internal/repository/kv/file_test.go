package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"localwear-storefront/internal/domain"
)

func TestFile_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	repo := NewFile(path)

	_, err := repo.Get(ctx, "token")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "token", "abc"))
	require.NoError(t, repo.Set(ctx, "user", `{"id":1}`))

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	// a fresh handle sees what the first one wrote
	other := NewFile(path)
	v, err = other.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, v)

	require.NoError(t, repo.Delete(ctx, "token", "user", "missing"))
	_, err = other.Get(ctx, "token")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFile_CorruptFileReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo := NewFile(path)
	_, err := repo.Get(ctx, "token")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "token", "fresh"))
	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestFile_Ping(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, NewFile(filepath.Join(t.TempDir(), "session.json")).Ping(ctx))
	assert.Error(t, NewFile(filepath.Join(t.TempDir(), "absent", "session.json")).Ping(ctx))
}
