package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/config"
	"github.com/jfparis/home-assistant-garmin-connect/internal/coordinator"
	"github.com/jfparis/home-assistant-garmin-connect/internal/dispatch"
	"github.com/jfparis/home-assistant-garmin-connect/internal/server"
	"github.com/jfparis/home-assistant-garmin-connect/internal/session"
	"github.com/jfparis/home-assistant-garmin-connect/internal/xslog"
)

const (
	setupRetryInitial = 30 * time.Second
	setupRetryMax     = 10 * time.Minute

	shutdownTimeout = 5 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	opts := []garmin.Option{garmin.WithLogger(logger)}
	if cfg.InChina() {
		opts = append(opts, garmin.WithChinaRegion())
	}
	client := garmin.New(cfg.Username, cfg.Password, opts...)

	dispatcher := dispatch.New(cfg.DispatchWorkers)
	sessions := session.NewManager(client, dispatcher, logger)
	coord := coordinator.New(coordinator.APIFromClient(client), sessions, dispatcher, logger)

	if err := loginWithRetry(ctx, sessions, logger); err != nil {
		return err
	}

	if _, err := coord.Refresh(ctx); err != nil {
		logger.WarnContext(ctx, "initial refresh failed, data unavailable until next cycle",
			xslog.Error(err))
	}

	go refreshLoop(ctx, coord, cfg.UpdateInterval, logger)

	handler := server.NewHandler(coord, logger)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server listening", xslog.Addr(cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loginWithRetry performs the initial login. Connectivity failures back off
// and retry; rejected credentials fail setup outright.
func loginWithRetry(ctx context.Context, sessions *session.Manager, logger *slog.Logger) error {
	backoff := setupRetryInitial
	for {
		ok, err := sessions.EnsureAuthenticated(ctx)
		if ok {
			return nil
		}
		if err == nil {
			return errors.New("garmin connect login failed, check credentials")
		}
		if !errors.Is(err, session.ErrSetupRetry) {
			return err
		}

		logger.WarnContext(ctx, "garmin connect not reachable, retrying",
			xslog.Interval(backoff), xslog.Error(err))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		if backoff *= 2; backoff > setupRetryMax {
			backoff = setupRetryMax
		}
	}
}

func refreshLoop(ctx context.Context, coord *coordinator.Coordinator, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.InfoContext(ctx, "refresh loop started", xslog.Interval(interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			if _, err := coord.Refresh(ctx); err != nil {
				logger.ErrorContext(ctx, "refresh cycle failed", xslog.Error(err))
				continue
			}
			logger.InfoContext(ctx, "refresh cycle complete", xslog.Duration(time.Since(start)))
		}
	}
}
