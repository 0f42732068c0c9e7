package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBackend(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	backend, err := OpenRedis(ctx, RedisOptions{Addr: mr.Addr(), Prefix: "jobpilot:"})
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	_, ok, err := backend.Load(ctx, KeyApplications)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Save(ctx, KeyApplications, []byte(`[]`)))

	stored, err := mr.Get("jobpilot:" + KeyApplications)
	require.NoError(t, err)
	assert.Equal(t, `[]`, stored)

	value, ok, err := backend.Load(ctx, KeyApplications)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(value))

	require.NoError(t, backend.Delete(ctx, KeyApplications))
	assert.False(t, mr.Exists("jobpilot:"+KeyApplications))
}

func TestRedisBackend_ServerDownIsSoftThroughStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	backend, err := OpenRedis(ctx, RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()
	s := New(backend, nil)

	require.NoError(t, Set(ctx, s, KeyUserName, "Ana"))
	mr.Close()

	assert.Equal(t, "fallback", Get(ctx, s, KeyUserName, "fallback"))
	assert.Error(t, Set(ctx, s, KeyUserName, "Bia"))
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), RedisOptions{Addr: addr})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}
