package cache

import (
	"context"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
)

// ReportCache keeps generated reports for a limited time, keyed by mode.
type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.Report, bool, error)
	Set(ctx context.Context, key string, report *domain.Report, ttl time.Duration) error
	Clear(ctx context.Context) error
}
