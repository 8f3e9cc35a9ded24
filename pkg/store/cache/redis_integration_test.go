//go:build integration
// +build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CLAIMS_TEST_REDIS_ADDR=localhost:6379 go test -tags integration ./pkg/store/cache/...
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("CLAIMS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CLAIMS_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisSettings{Addr: addr})
	require.NoError(t, err)
	defer c.Close()

	report := &domain.Report{
		Mode:    domain.ModeWeekly,
		Columns: domain.Columns,
		Rows:    []domain.Row{{ClaimID: "c1", Status: domain.StatusDelivered, Lon: -77.1}},
		Failures: []domain.CredentialFailure{
			{Client: "Globex", Error: "claims api returned 500"},
		},
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, c.Set(ctx, "Weekly", report, time.Minute))

	got, ok, err := c.Get(ctx, "Weekly")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, report, got)

	require.NoError(t, c.Clear(ctx))
	_, ok, err = c.Get(ctx, "Weekly")
	require.NoError(t, err)
	assert.False(t, ok)
}
