package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/de-tools/claims-report/pkg/server"
	"github.com/de-tools/claims-report/pkg/services/config"
	reportsvc "github.com/de-tools/claims-report/pkg/services/report"
	"github.com/de-tools/claims-report/pkg/services/workflow"
	"github.com/de-tools/claims-report/pkg/store/cache"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the claims report",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (default is ./claims.yaml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	ctrl, err := reportsvc.ControllerFactory(cfg, reportsvc.MemoryHook{Level: zerolog.DebugLevel})
	if err != nil {
		return fmt.Errorf("failed to create report controller: %w", err)
	}

	reportCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	if closer, ok := reportCache.(io.Closer); ok {
		defer closer.Close()
	}

	logClients(ctx, ctrl)

	reports := reportsvc.NewService(ctrl, reportCache, cfg.Cache.TTL)

	if cfg.Cache.WarmInterval > 0 {
		warmer := workflow.NewController(reports, cfg.Cache.WarmInterval)
		if err := warmer.Init(ctx, cfg.WarmModes()); err != nil {
			return fmt.Errorf("failed to start cache warmer: %w", err)
		}
		defer warmer.Stop(ctx)
		logger.Info().Strs("modes", cfg.Cache.WarmModes).Dur("interval", cfg.Cache.WarmInterval).Msg("cache warmer started")
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: reports,
			Logger:  logger,
		},
	})

	return api.Start()
}

func newCache(ctx context.Context, cfg config.CacheConfig) (cache.ReportCache, error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(ctx, cache.RedisSettings{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("addr", cfg.RedisAddr).Msg("using redis report cache")
	return redisCache, nil
}

type clientLister interface {
	Clients(ctx context.Context) ([]string, error)
}

func logClients(ctx context.Context, lister clientLister) {
	logger := zerolog.Ctx(ctx)
	clients, err := lister.Clients(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list configured clients")
		return
	}
	logger.Info().Msgf("Configuration loaded, %d client(s): %v", len(clients), clients)
}
