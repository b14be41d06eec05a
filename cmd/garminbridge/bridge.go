package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/config"
	"github.com/jfparis/home-assistant-garmin-connect/internal/coordinator"
	"github.com/jfparis/home-assistant-garmin-connect/internal/dispatch"
	"github.com/jfparis/home-assistant-garmin-connect/internal/session"
	"github.com/jfparis/home-assistant-garmin-connect/internal/xslog"
)

// newBridge builds an authenticated coordinator for one-shot commands.
func newBridge(ctx context.Context) (*coordinator.Coordinator, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	logger := xslog.NewLoggerFromEnv(os.Stderr)

	opts := []garmin.Option{garmin.WithLogger(logger)}
	if cfg.InChina() {
		opts = append(opts, garmin.WithChinaRegion())
	}
	client := garmin.New(cfg.Username, cfg.Password, opts...)

	dispatcher := dispatch.New(cfg.DispatchWorkers)
	sessions := session.NewManager(client, dispatcher, logger)

	ok, err := sessions.EnsureAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("garmin connect login failed, check credentials")
	}

	return coordinator.New(coordinator.APIFromClient(client), sessions, dispatcher, logger), nil
}
