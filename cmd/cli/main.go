package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/claims-report/pkg/runtime/terminal"
	"github.com/de-tools/claims-report/pkg/runtime/terminal/commands"
	"github.com/de-tools/claims-report/pkg/services/config"
	reportsvc "github.com/de-tools/claims-report/pkg/services/report"
	"github.com/de-tools/claims-report/pkg/store/objectstore"
	"github.com/rs/zerolog"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Setup:  setup,
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ context.Context, configPath string) (*commands.Runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	ctrl, err := reportsvc.ControllerFactory(cfg, reportsvc.MemoryHook{Level: zerolog.DebugLevel})
	if err != nil {
		return nil, err
	}

	return &commands.Runtime{
		Reports: ctrl,
		Logger:  logger,
		Uploader: func(ctx context.Context) (commands.Uploader, error) {
			uploader, err := objectstore.NewUploader(ctx, objectstore.Settings{
				Region:   cfg.Export.S3Region,
				Bucket:   cfg.Export.S3Bucket,
				Profile:  cfg.Export.S3Profile,
				Endpoint: cfg.Export.S3Endpoint,
			})
			if err != nil {
				return nil, err
			}
			return uploader, nil
		},
	}, nil
}
