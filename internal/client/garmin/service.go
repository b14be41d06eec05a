package garmin

import (
	"context"
	"time"

	"github.com/jfparis/home-assistant-garmin-connect/internal/xjson"
)

type UserService interface {
	// GetUserSummary fetches the daily wellness summary for the given day.
	GetUserSummary(ctx context.Context, day time.Time) (xjson.Value, error)

	// GetBodyComposition fetches body composition data for the given day,
	// including the totalAverage sub-mapping.
	GetBodyComposition(ctx context.Context, day time.Time) (xjson.Value, error)
}

type ActivityService interface {
	GetActivitiesByDate(ctx context.Context, start, end time.Time) ([]xjson.Value, error)
	GetActivityTypes(ctx context.Context) ([]ActivityType, error)
	GetEarnedBadges(ctx context.Context) ([]xjson.Value, error)
}

type WellnessService interface {
	GetSleepData(ctx context.Context, day time.Time) (xjson.Value, error)
	GetHRVData(ctx context.Context, day time.Time) (xjson.Value, error)
	GetDeviceAlarms(ctx context.Context) ([]xjson.Value, error)
}

type GearService interface {
	GetGear(ctx context.Context, profileID int64) ([]Gear, error)
	GetGearStats(ctx context.Context, uuid string) (xjson.Value, error)
	GetGearDefaults(ctx context.Context, profileID int64) ([]GearDefault, error)

	// SetGearDefault marks or unmarks one gear item as default for an
	// activity type.
	SetGearDefault(ctx context.Context, activityTypeID int64, uuid string, defaultGear bool) error
}

type MeasurementService interface {
	AddBodyComposition(ctx context.Context, entry BodyCompositionEntry) error
	SetBloodPressure(ctx context.Context, reading BloodPressureReading) error
}
