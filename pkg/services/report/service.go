package report

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/de-tools/claims-report/pkg/store/cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL        = 30 * time.Minute
	DefaultGenerateTimeout = 5 * time.Minute
)

// Service serves reports from a cache, generating them on a miss. Requests
// with an explicit date range always bypass the cache.
type Service struct {
	generator Generator
	cache     cache.ReportCache
	ttl       time.Duration
	timeout   time.Duration
	group     singleflight.Group
}

func NewService(generator Generator, reportCache cache.ReportCache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		generator: generator,
		cache:     reportCache,
		ttl:       ttl,
		timeout:   DefaultGenerateTimeout,
	}
}

func (s *Service) Get(ctx context.Context, req Request) (*domain.Report, error) {
	if req.HasRange() {
		return s.generator.Generate(ctx, req)
	}

	key := req.Mode.String()
	logger := zerolog.Ctx(ctx)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("mode", key).Msg("report cache unavailable")
	}
	if ok {
		logger.Debug().Str("mode", key).Msg("serving cached report")
		return cached, nil
	}

	return s.generate(ctx, req)
}

// Warm regenerates the report for mode and replaces the cached copy.
func (s *Service) Warm(ctx context.Context, mode domain.ReportMode) (*domain.Report, error) {
	return s.generate(ctx, Request{Mode: mode})
}

// generate shares one run per mode between concurrent callers. The run is not
// tied to any caller's cancellation; a caller that goes away only stops
// waiting for it.
func (s *Service) generate(ctx context.Context, req Request) (*domain.Report, error) {
	key := req.Mode.String()
	logger := zerolog.Ctx(ctx)

	results := s.group.DoChan(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		report, err := s.generator.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		if report.Partial() {
			logger.Warn().
				Str("mode", key).
				Int("failures", len(report.Failures)).
				Msg("partial report not cached")
			return report, nil
		}
		if err := s.cache.Set(ctx, key, report, s.ttl); err != nil {
			logger.Warn().Err(err).Str("mode", key).Msg("failed to cache report")
		}
		return report, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Report), nil
	}
}

// Refresh drops every cached report so the next Get fetches fresh data.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to refresh reports: %w", err)
	}
	zerolog.Ctx(ctx).Info().Msg("report cache cleared")
	return nil
}
