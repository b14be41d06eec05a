// Package session owns login state against Garmin Connect.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/dispatch"
	"github.com/jfparis/home-assistant-garmin-connect/internal/xslog"
)

// ErrSetupRetry marks a login failure caused by connectivity rather than
// credentials. Setup paths treat it as "not ready, try again later" instead
// of a hard failure.
var ErrSetupRetry = errors.New("garmin connect unreachable")

// LoginClient is the slice of the Garmin client the manager needs.
type LoginClient interface {
	Login(ctx context.Context) error
}

type Manager struct {
	client     LoginClient
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

func NewManager(client LoginClient, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Manager {
	return &Manager{
		client:     client,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// EnsureAuthenticated logs in to Garmin Connect. Idempotent: a fresh login
// simply replaces the session. Outcomes:
//   - (true, nil): session is authenticated.
//   - (false, nil): credentials rejected, rate limited, or an unexpected
//     failure; logged, caller decides how to react.
//   - (false, err): connectivity failure; err wraps ErrSetupRetry so setup
//     paths can schedule a retry instead of failing outright.
func (m *Manager) EnsureAuthenticated(ctx context.Context) (bool, error) {
	err := m.dispatcher.Run(ctx, m.client.Login)
	if err == nil {
		return true, nil
	}

	var (
		authErr *garmin.AuthenticationError
		rateErr *garmin.TooManyRequestsError
		connErr *garmin.ConnectionError
	)
	switch {
	case errors.As(err, &authErr), errors.As(err, &rateErr):
		m.logger.ErrorContext(ctx, "garmin connect login failed", xslog.Error(err))
		return false, nil
	case errors.As(err, &connErr):
		m.logger.ErrorContext(ctx, "connection error during garmin connect login", xslog.Error(err))
		return false, fmt.Errorf("%w: %w", ErrSetupRetry, err)
	default:
		m.logger.ErrorContext(ctx, "unknown error during garmin connect login", xslog.Error(err))
		return false, nil
	}
}
