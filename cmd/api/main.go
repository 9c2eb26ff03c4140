package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itorg-api/internal"
	"itorg-api/internal/config"
	"itorg-api/internal/store"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	defaults := config.Load()

	cmd := &cli.Command{
		Name:  "itorg-api",
		Usage: "Projects, tickets and assets REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: defaults.Addr, Usage: "HTTP listen address"},
			&cli.StringFlag{Name: "db-driver", Value: defaults.DBDriver, Usage: "sqlite or pgx"},
			&cli.StringFlag{Name: "db-dsn", Value: defaults.DBDSN, Usage: "SQLite path or Postgres URL"},
			&cli.BoolFlag{Name: "auto-migrate", Value: defaults.AutoMigrate, Usage: "apply pending migrations at startup"},
			&cli.BoolFlag{Name: "enable-metrics", Value: defaults.EnableMetrics, Usage: "serve /metrics"},
			&cli.BoolFlag{Name: "enable-swagger", Value: defaults.EnableSwagger, Usage: "serve /docs and /openapi.yaml"},
			&cli.Int64Flag{Name: "import-max-bytes", Value: defaults.ImportMaxBytes, Usage: "upload limit for /imports/assets"},
			&cli.DurationFlag{Name: "shutdown-timeout", Value: defaults.ShutdownTimeout},
			&cli.BoolFlag{Name: "debug", Value: defaults.Debug},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := &config.Config{
				Addr:            c.String("addr"),
				DBDriver:        c.String("db-driver"),
				DBDSN:           c.String("db-dsn"),
				AutoMigrate:     c.Bool("auto-migrate"),
				EnableMetrics:   c.Bool("enable-metrics"),
				EnableSwagger:   c.Bool("enable-swagger"),
				ImportMaxBytes:  c.Int64("import-max-bytes"),
				ShutdownTimeout: c.Duration("shutdown-timeout"),
				Debug:           c.Bool("debug"),
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "configuration error")
			}
			logger, err := config.ConfigureLogger(cfg.Debug)
			if err != nil {
				return err
			}
			return run(ctx, cfg, *logger)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("itorg-api")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	st, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}

	if cfg.AutoMigrate {
		n, err := st.Migrate(ctx)
		if err != nil {
			st.Close()
			return err
		}
		logger.Info().Int("applied", n).Msg("migrations up to date")
	}

	srv := internal.NewServer(st, cfg, logger)
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Addr).
			Str("driver", cfg.DBDriver).
			Bool("metrics", cfg.EnableMetrics).
			Bool("swagger", cfg.EnableSwagger).
			Msg("server listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var serveErr error
	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			serveErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	if err := srv.Close(); err != nil {
		logger.Error().Err(err).Msg("closing store")
	}
	return serveErr
}
