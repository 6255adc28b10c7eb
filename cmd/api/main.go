// Package main provides the API server entry point.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lllypuk/userhub/internal/config"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		//nolint:sloglint // No context available before logger setup
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := setupLogger(cfg)

	logger.Info("starting userhub API server",
		slog.String("version", version),
		slog.String("environment", getEnvironment(cfg)),
	)

	container, err := NewContainer(cfg, WithLogger(logger))
	if err != nil {
		logger.Error("failed to build container", slog.String("error", err.Error()))
		os.Exit(1)
	}

	e := SetupRoutes(container).Echo()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("address", cfg.Server.Address()),
			slog.Duration("read_timeout", cfg.Server.ReadTimeout),
			slog.Duration("write_timeout", cfg.Server.WriteTimeout),
		)
		if startErr := e.Start(cfg.Server.Address()); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			serverErr <- startErr
		}
		close(serverErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case startErr, ok := <-serverErr:
		if ok {
			logger.Error("server error", slog.String("error", startErr.Error()))
			exitCode = 1
		}
	}

	shutdown(e, container, cfg.Server.ShutdownTimeout, logger)
	if exitCode != 0 {
		os.Exit(exitCode) //nolint:gocritic // resources already released by shutdown
	}
}

// setupLogger creates and configures the structured logger based on configuration.
func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     parseLogLevel(cfg.Log.Level),
		AddSource: cfg.IsDevelopment(),
	}

	switch cfg.Log.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(slog.String("app", cfg.App.Name))
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvironment(cfg *config.Config) string {
	if cfg.App.Environment == "" {
		return config.EnvDevelopment
	}
	return cfg.App.Environment
}

// shutdown stops accepting connections, drains in-flight requests within
// timeout and then releases the stores.
func shutdown(e *echo.Echo, container *Container, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.InfoContext(ctx, "shutting down server...")

	if err := e.Shutdown(ctx); err != nil {
		logger.ErrorContext(ctx, "server shutdown error", slog.String("error", err.Error()))
	} else {
		logger.InfoContext(ctx, "HTTP server stopped")
	}

	if err := container.Close(); err != nil {
		logger.ErrorContext(ctx, "container close error", slog.String("error", err.Error()))
	}

	logger.InfoContext(ctx, "server shutdown complete")
}
