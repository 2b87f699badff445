package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"usersvc/lib/config"
	"usersvc/lib/database"
	zhttp "usersvc/lib/http"
	"usersvc/lib/metrics"
	"usersvc/lib/telemetry"
	"usersvc/lib/users"
	"usersvc/shared/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func openDatabase(ctx context.Context, cfg *config.Config) (*database.PostgreSQLDriver, error) {
	return database.NewPostgreSQLDriver(ctx, cfg.Postgres.DSN(), database.PoolOptions{
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
	})
}

func serve(ctx context.Context, cfg *config.Config) error {
	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName: cfg.Metrics.ServiceName,
		Environment: cfg.Env,
		Endpoint:    cfg.Metrics.OtelEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			logger.Warn("Telemetry shutdown failed", logger.Err(err))
		}
	}()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := metrics.New(cfg.Metrics.Backend, cfg.Metrics.ServiceName)
	if err != nil {
		return err
	}

	driver := zhttp.NewGinDriver(zhttp.Options{
		ServiceName: cfg.Metrics.ServiceName,
		Prometheus:  cfg.Metrics.Backend == metrics.BackendPrometheus,
	})
	if err := driver.AddRoute(http.MethodGet, "/health", zhttp.HealthHandler(db)); err != nil {
		return err
	}
	if err := users.NewHandler(users.NewStore(db, rec), rec).Register(driver); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening",
			logger.String("address", cfg.Address()),
			logger.String("driver", driver.DriverName()),
			logger.String("metrics", cfg.Metrics.Backend))
		errCh <- driver.Start(cfg.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := driver.Stop(sctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
