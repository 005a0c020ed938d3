package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Increment(t *testing.T) {
	m := NewMemoryCache()
	ctx := context.Background()

	n, err := m.Increment(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.Increment(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = m.Increment(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCache_ExpiryResetsCounter(t *testing.T) {
	m := NewMemoryCache()
	ctx := context.Background()

	_, err := m.Increment(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, m.Expire(ctx, "k", -time.Second))

	n, err := m.Increment(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCache_TTL(t *testing.T) {
	m := NewMemoryCache()
	ctx := context.Background()

	ttl, err := m.TTL(ctx, "absent")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)

	_, err = m.Increment(ctx, "k")
	require.NoError(t, err)

	ttl, err = m.TTL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)

	require.NoError(t, m.Expire(ctx, "k", time.Minute))
	ttl, err = m.TTL(ctx, "k")
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}
