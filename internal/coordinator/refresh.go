package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/dispatch"
	"github.com/jfparis/home-assistant-garmin-connect/internal/snapshot"
	"github.com/jfparis/home-assistant-garmin-connect/internal/xjson"
	"github.com/jfparis/home-assistant-garmin-connect/internal/xslog"
	"golang.org/x/sync/errgroup"
)

// Refresh runs one full fetch-and-merge cycle and stores the result as the
// current snapshot. On a recoverable fetch failure it re-authenticates once;
// if that login succeeds the cycle still ends early with an empty snapshot
// for this tick, and if it fails the cycle errors with UpdateFailedError
// carrying the original fetch error.
func (c *Coordinator) Refresh(ctx context.Context) (snapshot.Snapshot, error) {
	data, err := c.refresh(ctx)
	if err != nil {
		return nil, err
	}
	c.setSnapshot(data)
	return data, nil
}

func (c *Coordinator) refresh(ctx context.Context) (snapshot.Snapshot, error) {
	today := c.now()
	weekAgo := today.AddDate(0, 0, -7)
	tomorrow := today.AddDate(0, 0, 1)

	summary, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) (xjson.Value, error) {
		return c.api.User.GetUserSummary(ctx, today)
	})
	if err != nil {
		return c.phase1Failure(ctx, "summary", err)
	}

	body, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) (xjson.Value, error) {
		return c.api.User.GetBodyComposition(ctx, today)
	})
	if err != nil {
		return c.phase1Failure(ctx, "body_composition", err)
	}

	activities, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) ([]xjson.Value, error) {
		return c.api.Activity.GetActivitiesByDate(ctx, weekAgo, tomorrow)
	})
	if err != nil {
		return c.phase1Failure(ctx, "activities", err)
	}
	summary[snapshot.KeyLastActivities] = activities

	badges, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) ([]xjson.Value, error) {
		return c.api.Activity.GetEarnedBadges(ctx)
	})
	if err != nil {
		return c.phase1Failure(ctx, "badges", err)
	}
	summary[snapshot.KeyBadges] = badges

	alarms, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) ([]xjson.Value, error) {
		return c.api.Wellness.GetDeviceAlarms(ctx)
	})
	if err != nil {
		return c.phase1Failure(ctx, "alarms", err)
	}

	activityTypes, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) ([]garmin.ActivityType, error) {
		return c.api.Activity.GetActivityTypes(ctx)
	})
	if err != nil {
		return c.phase1Failure(ctx, "activity_types", err)
	}

	sleepData, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) (xjson.Value, error) {
		return c.api.Wellness.GetSleepData(ctx, today)
	})
	if err != nil {
		return c.phase1Failure(ctx, "sleep", err)
	}

	hrvData, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) (xjson.Value, error) {
		return c.api.Wellness.GetHRVData(ctx, today)
	})
	if err != nil {
		return c.phase1Failure(ctx, "hrv", err)
	}

	gear, gearStats, gearDefaults, err := c.fetchGear(ctx, summary)
	if err != nil {
		return nil, err
	}

	merged := c.merge(ctx, summary, body, alarms, activityTypes, sleepData, hrvData, gear, gearStats, gearDefaults)
	return merged, nil
}

// phase1Failure handles a primary-feed failure: re-authenticate once for the
// recoverable error kinds, then end the cycle early. The empty snapshot on
// the relogin-success path is deliberate; no fetch is retried within the
// same tick.
func (c *Coordinator) phase1Failure(ctx context.Context, feed string, err error) (snapshot.Snapshot, error) {
	if !isRecoverable(err) {
		return nil, fmt.Errorf("fetching %s: %w", feed, err)
	}

	c.logger.DebugContext(ctx, "trying to relogin to garmin connect",
		xslog.Feed(feed), xslog.Error(err))

	ok, _ := c.auth.EnsureAuthenticated(ctx)
	if !ok {
		return nil, &UpdateFailedError{Cause: err}
	}
	return snapshot.Snapshot{}, nil
}

// isRecoverable reports whether a fresh login may fix the failure.
func isRecoverable(err error) bool {
	var (
		authErr *garmin.AuthenticationError
		rateErr *garmin.TooManyRequestsError
		connErr *garmin.ConnectionError
	)
	return errors.As(err, &authErr) || errors.As(err, &rateErr) || errors.As(err, &connErr)
}

// fetchGear loads the gear domain. Remote failures (and a summary without a
// profile identifier) degrade to empty gear data; anything else is a bug and
// propagates.
func (c *Coordinator) fetchGear(ctx context.Context, summary xjson.Value) ([]garmin.Gear, []xjson.Value, []garmin.GearDefault, error) {
	empty := func() ([]garmin.Gear, []xjson.Value, []garmin.GearDefault, error) {
		return []garmin.Gear{}, []xjson.Value{}, []garmin.GearDefault{}, nil
	}

	profileID, ok := summary.Int(snapshot.KeyUserProfileID)
	if !ok {
		c.logger.DebugContext(ctx, "gear data is not available",
			xslog.Feed("gear"), xslog.Error(errors.New("summary has no user profile id")))
		return empty()
	}

	gear, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) ([]garmin.Gear, error) {
		return c.api.Gear.GetGear(ctx, profileID)
	})
	if err != nil {
		return c.gearFailure(ctx, err)
	}

	stats := make([]xjson.Value, len(gear))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range gear {
		g.Go(func() error {
			s, err := dispatch.Call(gctx, c.dispatcher, func(ctx context.Context) (xjson.Value, error) {
				return c.api.Gear.GetGearStats(ctx, item.UUID)
			})
			if err != nil {
				return err
			}
			stats[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return c.gearFailure(ctx, err)
	}

	defaults, err := dispatch.Call(ctx, c.dispatcher, func(ctx context.Context) ([]garmin.GearDefault, error) {
		return c.api.Gear.GetGearDefaults(ctx, profileID)
	})
	if err != nil {
		return c.gearFailure(ctx, err)
	}

	return gear, stats, defaults, nil
}

func (c *Coordinator) gearFailure(ctx context.Context, err error) ([]garmin.Gear, []xjson.Value, []garmin.GearDefault, error) {
	if !garmin.IsRemote(err) {
		return nil, nil, nil, fmt.Errorf("fetching gear: %w", err)
	}
	c.logger.DebugContext(ctx, "gear data is not available", xslog.Error(err))
	return []garmin.Gear{}, []xjson.Value{}, []garmin.GearDefault{}, nil
}

// merge projects every feed into the flat snapshot shape. Body-composition
// totals flatten last among the loose mappings, so they overwrite identically
// named summary fields.
func (c *Coordinator) merge(
	ctx context.Context,
	summary, body xjson.Value,
	alarms []xjson.Value,
	activityTypes []garmin.ActivityType,
	sleepData, hrvData xjson.Value,
	gear []garmin.Gear,
	gearStats []xjson.Value,
	gearDefaults []garmin.GearDefault,
) snapshot.Snapshot {
	var sleepScore, sleepTimeSeconds any
	if v, ok := sleepData.Float("dailySleepDTO", "sleepScores", "overall", "value"); ok {
		sleepScore = v
	} else {
		c.logger.DebugContext(ctx, "sleep score data is not available")
	}
	if v, ok := sleepData.Float("dailySleepDTO", "sleepTimeSeconds"); ok {
		sleepTimeSeconds = v
	} else {
		c.logger.DebugContext(ctx, "sleep time data is not available")
	}

	hrvStatus := snapshot.HRVUnknown()
	if m, ok := hrvData.Map("hrvSummary"); ok && len(m) > 0 {
		hrvStatus = m
	}

	totals, ok := body.Map("totalAverage")
	if !ok {
		c.logger.DebugContext(ctx, "body composition totals are not available")
		totals = xjson.Value{}
	}

	merged := snapshot.Merge(summary, totals)
	merged[snapshot.KeyNextAlarm] = alarms
	merged[snapshot.KeyGear] = gear
	merged[snapshot.KeyGearStats] = gearStats
	merged[snapshot.KeyActivityTypes] = activityTypes
	merged[snapshot.KeyGearDefaults] = gearDefaults
	merged[snapshot.KeySleepScore] = sleepScore
	merged[snapshot.KeySleepTimeSeconds] = sleepTimeSeconds
	merged[snapshot.KeyHRVStatus] = hrvStatus
	return merged
}
