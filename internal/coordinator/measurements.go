package coordinator

import (
	"context"
	"fmt"

	"github.com/jfparis/home-assistant-garmin-connect/internal/apperr"
	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
)

// AddBodyComposition records one weigh-in. Optional fields left nil are
// omitted from the upload. No read-back: the write is assumed good if the
// call does not fail.
func (c *Coordinator) AddBodyComposition(ctx context.Context, entry garmin.BodyCompositionEntry) error {
	ok, _ := c.auth.EnsureAuthenticated(ctx)
	if !ok {
		return apperr.Unauthorized("login_failed",
			"failed to login to garmin connect, unable to update", nil)
	}

	err := c.dispatcher.Run(ctx, func(ctx context.Context) error {
		return c.api.Measurement.AddBodyComposition(ctx, entry)
	})
	if err != nil {
		return fmt.Errorf("recording body composition: %w", err)
	}
	return nil
}

// AddBloodPressure records one blood pressure reading.
func (c *Coordinator) AddBloodPressure(ctx context.Context, reading garmin.BloodPressureReading) error {
	ok, _ := c.auth.EnsureAuthenticated(ctx)
	if !ok {
		return apperr.Unauthorized("login_failed",
			"failed to login to garmin connect, unable to update", nil)
	}

	err := c.dispatcher.Run(ctx, func(ctx context.Context) error {
		return c.api.Measurement.SetBloodPressure(ctx, reading)
	})
	if err != nil {
		return fmt.Errorf("recording blood pressure: %w", err)
	}
	return nil
}
