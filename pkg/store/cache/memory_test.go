package cache

import (
	"context"
	"testing"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	report := &domain.Report{Mode: domain.ModeToday}

	_, ok, err := c.Get(ctx, "Today")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "Today", report, 30*time.Minute))

	got, ok, err := c.Get(ctx, "Today")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, report, got)

	now = now.Add(30 * time.Minute)
	_, ok, err = c.Get(ctx, "Today")
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire after its ttl")
}

func TestMemoryCache_Clear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "Today", &domain.Report{}, time.Hour))
	require.NoError(t, c.Set(ctx, "Weekly", &domain.Report{}, time.Hour))
	require.NoError(t, c.Clear(ctx))

	for _, key := range []string{"Today", "Weekly"} {
		_, ok, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}
