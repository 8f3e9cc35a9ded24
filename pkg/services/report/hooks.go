package report

import (
	"context"
	"runtime"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Stage string

const (
	StageStarted  Stage = "started"
	StageFetched  Stage = "fetched"
	StageFinished Stage = "finished"
)

// Hook observes a report run. Hooks must not modify the report.
type Hook interface {
	OnStage(ctx context.Context, stage Stage, report *domain.Report)
}

type HookFunc func(ctx context.Context, stage Stage, report *domain.Report)

func (f HookFunc) OnStage(ctx context.Context, stage Stage, report *domain.Report) {
	f(ctx, stage, report)
}

// MemoryHook logs heap usage at every stage.
type MemoryHook struct {
	Level zerolog.Level
}

func (h MemoryHook) OnStage(ctx context.Context, stage Stage, report *domain.Report) {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() > h.Level {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	logger.WithLevel(h.Level).
		Str("stage", string(stage)).
		Int("rows", len(report.Rows)).
		Uint64("heap_alloc_bytes", m.HeapAlloc).
		Uint64("heap_inuse_bytes", m.HeapInuse).
		Uint64("sys_bytes", m.Sys).
		Uint32("num_gc", m.NumGC).
		Msg("memory usage")
}
