package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewMemory()
	d.now = func() time.Time { return now }

	ok, err := d.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Revoke(ctx, "a", time.Minute))
	require.NoError(t, d.Revoke(ctx, "expired", 0))

	ok, _ = d.IsRevoked(ctx, "a")
	assert.True(t, ok)
	ok, _ = d.IsRevoked(ctx, "expired")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = d.IsRevoked(ctx, "a")
	assert.False(t, ok)
}

func TestRedisDenylist_ImplementsDenylist(t *testing.T) {
	var _ Denylist = (*RedisDenylist)(nil)
	var _ Denylist = (*MemoryDenylist)(nil)

	d := NewRedis("127.0.0.1:0", "", 0)
	defer d.Close()
	// ttl<=0 不触达 redis
	assert.NoError(t, d.Revoke(context.Background(), "x", 0))
}
