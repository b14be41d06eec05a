// Package coordinator drives the Garmin Connect refresh cycle and the
// write-back actions. One coordinator serves one configured account.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/dispatch"
	"github.com/jfparis/home-assistant-garmin-connect/internal/snapshot"
)

// API is the remote surface the coordinator consumes, split per domain so
// tests can fake feeds independently.
type API struct {
	User        garmin.UserService
	Activity    garmin.ActivityService
	Wellness    garmin.WellnessService
	Gear        garmin.GearService
	Measurement garmin.MeasurementService
}

// APIFromClient adapts a full client into the coordinator's surface.
func APIFromClient(c *garmin.Client) API {
	return API{
		User:        c.User,
		Activity:    c.Activity,
		Wellness:    c.Wellness,
		Gear:        c.Gear,
		Measurement: c.Measurement,
	}
}

// Authenticator is the session manager's contract.
type Authenticator interface {
	EnsureAuthenticated(ctx context.Context) (bool, error)
}

// UpdateFailedError marks a refresh cycle that failed fatally. Cause is the
// error from the fetch that triggered the failed re-login, not the re-login
// error itself.
type UpdateFailedError struct {
	Cause error
}

func (e *UpdateFailedError) Error() string {
	return "garmin connect update failed: " + e.Cause.Error()
}

func (e *UpdateFailedError) Unwrap() error { return e.Cause }

// GearSetting selects how a gear item's default flag is applied.
type GearSetting string

const (
	// SettingDefault marks the item as a default for the activity type.
	SettingDefault GearSetting = "default"
	// SettingExclusiveDefault makes the item the sole default for the
	// activity type, deactivating every other current default first.
	SettingExclusiveDefault GearSetting = "exclusive-default"
	// SettingNotDefault clears the item's default flag.
	SettingNotDefault GearSetting = "not-default"
)

func ParseGearSetting(s string) (GearSetting, error) {
	switch GearSetting(s) {
	case SettingDefault, SettingExclusiveDefault, SettingNotDefault:
		return GearSetting(s), nil
	default:
		return "", fmt.Errorf("invalid gear setting: %q (valid: default, exclusive-default, not-default)", s)
	}
}

type Coordinator struct {
	api        API
	auth       Authenticator
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	now        func() time.Time

	mu   sync.RWMutex
	data snapshot.Snapshot
}

type Option func(*Coordinator)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func New(api API, auth Authenticator, dispatcher *dispatch.Dispatcher, logger *slog.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		api:        api,
		auth:       auth,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
		data:       snapshot.Snapshot{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the most recent merged record. Action handlers read this
// while a refresh may be in flight, so the returned value may be stale.
func (c *Coordinator) Snapshot() snapshot.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

func (c *Coordinator) setSnapshot(data snapshot.Snapshot) {
	c.mu.Lock()
	c.data = data
	c.mu.Unlock()
}
