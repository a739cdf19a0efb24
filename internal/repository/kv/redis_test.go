package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"localwear-storefront/internal/domain"
)

func setupTestRedis(t *testing.T) (Repository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, ""), mr
}

func TestRedis_SetGet(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", "abc"))

	stored, err := mr.Get(DefaultRedisPrefix + "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", stored)
	assert.Zero(t, mr.TTL(DefaultRedisPrefix+"token"), "session keys must not expire")

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}

func TestRedis_Miss(t *testing.T) {
	repo, _ := setupTestRedis(t)
	_, err := repo.Get(context.Background(), "user")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedis_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "token", "abc"))
	require.NoError(t, repo.Set(ctx, "user", "{}"))

	require.NoError(t, repo.Delete(ctx, "token", "user"))
	assert.False(t, mr.Exists(DefaultRedisPrefix+"token"))
	assert.False(t, mr.Exists(DefaultRedisPrefix+"user"))

	assert.NoError(t, repo.Delete(ctx, "nonexistent"))
	assert.NoError(t, repo.Delete(ctx))
}

func TestRedis_Ping(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, repo.Ping(context.Background()))
	mr.Close()
	assert.Error(t, repo.Ping(context.Background()))
}
