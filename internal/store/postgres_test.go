package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresBackend_Integration(t *testing.T) {
	databaseURL := os.Getenv("JOBPILOT_TEST_POSTGRES_URL")
	if databaseURL == "" {
		t.Skip("JOBPILOT_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	backend, err := OpenPostgres(ctx, databaseURL)
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	key := "test_" + t.Name()
	t.Cleanup(func() { _ = backend.Delete(ctx, key) })

	require.NoError(t, backend.Save(ctx, key, []byte(`{"a": 1}`)))
	require.NoError(t, backend.Save(ctx, key, []byte(`{"a": 2}`)))

	value, ok, err := backend.Load(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"a": 2}`, string(value))

	require.NoError(t, backend.Delete(ctx, key))
	_, ok, err = backend.Load(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenPostgres_InvalidURL(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "postgres://%zz")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}
