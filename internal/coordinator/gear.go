package coordinator

import (
	"context"
	"fmt"

	"github.com/jfparis/home-assistant-garmin-connect/internal/apperr"
	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/dispatch"
	"github.com/jfparis/home-assistant-garmin-connect/internal/snapshot"
	"github.com/jfparis/home-assistant-garmin-connect/internal/xslog"
)

// SetActiveGear applies a default-gear setting to one gear item. For the
// exclusive setting it first deactivates every other current default for the
// activity type, one write per item; the sequence is not transactional, so a
// mid-sequence failure leaves some items deactivated and the target not yet
// activated.
func (c *Coordinator) SetActiveGear(ctx context.Context, gearUUID string, setting GearSetting, activityTypeLabel string) error {
	ok, _ := c.auth.EnsureAuthenticated(ctx)
	if !ok {
		return apperr.Unauthorized("login_failed",
			"failed to login to garmin connect, unable to update", nil)
	}

	data := c.Snapshot()

	typeID, found := activityTypeID(data, activityTypeLabel)
	if !found {
		return apperr.BadRequest("unknown_activity_type",
			fmt.Sprintf("unknown activity type: %q", activityTypeLabel))
	}

	c.logger.InfoContext(ctx, "updating gear default",
		xslog.GearUUID(gearUUID),
		xslog.ActivityType(activityTypeLabel),
		xslog.Setting(string(setting)))

	if setting != SettingExclusiveDefault {
		return c.dispatcher.Run(ctx, func(ctx context.Context) error {
			return c.api.Gear.SetGearDefault(ctx, typeID, gearUUID, setting == SettingDefault)
		})
	}

	profileID, found := profileID(data)
	if !found {
		return apperr.BadRequest("no_profile",
			"no user profile id in current data, refresh first")
	}

	defaults, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) ([]garmin.GearDefault, error) {
		return c.api.Gear.GetGearDefaults(ctx, profileID)
	})
	if err != nil {
		return fmt.Errorf("fetching gear defaults: %w", err)
	}

	for _, current := range defaults {
		if current.ActivityTypePK != typeID || current.UUID == gearUUID || !current.DefaultGear {
			continue
		}
		err := c.dispatcher.Run(ctx, func(ctx context.Context) error {
			return c.api.Gear.SetGearDefault(ctx, typeID, current.UUID, false)
		})
		if err != nil {
			return fmt.Errorf("deactivating gear %s: %w", current.UUID, err)
		}
	}

	return c.dispatcher.Run(ctx, func(ctx context.Context) error {
		return c.api.Gear.SetGearDefault(ctx, typeID, gearUUID, true)
	})
}

// activityTypeID resolves a label to its numeric id using the last
// snapshot's activity type list. First match wins.
func activityTypeID(data snapshot.Snapshot, label string) (int64, bool) {
	types, ok := data[snapshot.KeyActivityTypes].([]garmin.ActivityType)
	if !ok {
		return 0, false
	}
	for _, t := range types {
		if t.TypeKey == label {
			return t.TypeID, true
		}
	}
	return 0, false
}

func profileID(data snapshot.Snapshot) (int64, bool) {
	switch v := data[snapshot.KeyUserProfileID].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
