package commands

import (
	"context"
	"io"

	reportsvc "github.com/de-tools/claims-report/pkg/services/report"
	"github.com/rs/zerolog"
)

type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Runtime holds what a command needs once the config has been loaded.
type Runtime struct {
	Reports  reportsvc.Generator
	Logger   zerolog.Logger
	Uploader func(ctx context.Context) (Uploader, error)
}

// Setup builds the runtime from the config file at configPath.
type Setup func(ctx context.Context, configPath string) (*Runtime, error)
