package storage

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"localwear-storefront/internal/config"
)

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestOpen_File(t *testing.T) {
	cfg := config.Config{StorageDriver: config.StorageFile, StoragePath: filepath.Join(t.TempDir(), "s.json")}

	repo, closeFn, err := Open(context.Background(), cfg, discard())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, repo.Set(context.Background(), "token", "abc"))
	v, err := repo.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{StorageDriver: config.StorageRedis, RedisAddr: mr.Addr()}

	repo, closeFn, err := Open(context.Background(), cfg, discard())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, repo.Set(context.Background(), "token", "abc"))
	assert.True(t, mr.Exists("localwear:session:token"))
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := Open(context.Background(), config.Config{StorageDriver: config.StorageRedis, RedisAddr: addr}, discard())
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.Config{StorageDriver: "sqlite"}, discard())
	assert.Error(t, err)
}
