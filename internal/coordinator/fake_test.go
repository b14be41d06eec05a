package coordinator

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/dispatch"
	"github.com/jfparis/home-assistant-garmin-connect/internal/xjson"
)

type fakeAuth struct {
	ok    bool
	err   error
	calls int
}

func (f *fakeAuth) EnsureAuthenticated(ctx context.Context) (bool, error) {
	f.calls++
	return f.ok, f.err
}

type gearWrite struct {
	activityTypeID int64
	uuid           string
	defaultGear    bool
}

// fakeAPI implements every client service interface with canned data.
type fakeAPI struct {
	summary       xjson.Value
	summaryErr    error
	body          xjson.Value
	bodyErr       error
	activities    []xjson.Value
	activitiesErr error
	badges        []xjson.Value
	badgesErr     error
	alarms        []xjson.Value
	alarmsErr     error
	types         []garmin.ActivityType
	typesErr      error
	sleep         xjson.Value
	sleepErr      error
	hrv           xjson.Value
	hrvErr        error

	gear            []garmin.Gear
	gearErr         error
	gearStats       map[string]xjson.Value
	gearStatsErr    error
	gearDefaults    []garmin.GearDefault
	gearDefaultsErr error
	setDefaultErr   error

	addBodyErr error
	setBPErr   error

	mu          sync.Mutex
	gearWrites  []gearWrite
	bodyEntries []garmin.BodyCompositionEntry
	bpReadings  []garmin.BloodPressureReading
}

var (
	_ garmin.UserService        = (*fakeAPI)(nil)
	_ garmin.ActivityService    = (*fakeAPI)(nil)
	_ garmin.WellnessService    = (*fakeAPI)(nil)
	_ garmin.GearService        = (*fakeAPI)(nil)
	_ garmin.MeasurementService = (*fakeAPI)(nil)
)

func (f *fakeAPI) api() API {
	return API{User: f, Activity: f, Wellness: f, Gear: f, Measurement: f}
}

func (f *fakeAPI) GetUserSummary(ctx context.Context, day time.Time) (xjson.Value, error) {
	return f.summary, f.summaryErr
}

func (f *fakeAPI) GetBodyComposition(ctx context.Context, day time.Time) (xjson.Value, error) {
	return f.body, f.bodyErr
}

func (f *fakeAPI) GetActivitiesByDate(ctx context.Context, start, end time.Time) ([]xjson.Value, error) {
	return f.activities, f.activitiesErr
}

func (f *fakeAPI) GetActivityTypes(ctx context.Context) ([]garmin.ActivityType, error) {
	return f.types, f.typesErr
}

func (f *fakeAPI) GetEarnedBadges(ctx context.Context) ([]xjson.Value, error) {
	return f.badges, f.badgesErr
}

func (f *fakeAPI) GetSleepData(ctx context.Context, day time.Time) (xjson.Value, error) {
	return f.sleep, f.sleepErr
}

func (f *fakeAPI) GetHRVData(ctx context.Context, day time.Time) (xjson.Value, error) {
	return f.hrv, f.hrvErr
}

func (f *fakeAPI) GetDeviceAlarms(ctx context.Context) ([]xjson.Value, error) {
	return f.alarms, f.alarmsErr
}

func (f *fakeAPI) GetGear(ctx context.Context, profileID int64) ([]garmin.Gear, error) {
	return f.gear, f.gearErr
}

func (f *fakeAPI) GetGearStats(ctx context.Context, uuid string) (xjson.Value, error) {
	if f.gearStatsErr != nil {
		return nil, f.gearStatsErr
	}
	return f.gearStats[uuid], nil
}

func (f *fakeAPI) GetGearDefaults(ctx context.Context, profileID int64) ([]garmin.GearDefault, error) {
	return f.gearDefaults, f.gearDefaultsErr
}

func (f *fakeAPI) SetGearDefault(ctx context.Context, activityTypeID int64, uuid string, defaultGear bool) error {
	if f.setDefaultErr != nil {
		return f.setDefaultErr
	}
	f.mu.Lock()
	f.gearWrites = append(f.gearWrites, gearWrite{activityTypeID, uuid, defaultGear})
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) AddBodyComposition(ctx context.Context, entry garmin.BodyCompositionEntry) error {
	if f.addBodyErr != nil {
		return f.addBodyErr
	}
	f.mu.Lock()
	f.bodyEntries = append(f.bodyEntries, entry)
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) SetBloodPressure(ctx context.Context, reading garmin.BloodPressureReading) error {
	if f.setBPErr != nil {
		return f.setBPErr
	}
	f.mu.Lock()
	f.bpReadings = append(f.bpReadings, reading)
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) writes() []gearWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gearWrite(nil), f.gearWrites...)
}

// healthyAPI returns a fake with every feed populated.
func healthyAPI() *fakeAPI {
	return &fakeAPI{
		summary: xjson.Value{
			"userProfileId": float64(12345),
			"totalSteps":    float64(9001),
			"weight":        float64(0),
		},
		body: xjson.Value{
			"totalAverage": map[string]any{
				"weight": float64(80500),
				"bmi":    float64(24.1),
			},
		},
		activities: []xjson.Value{{"activityName": "morning run"}},
		badges:     []xjson.Value{{"badgeName": "early bird"}},
		alarms:     []xjson.Value{{"alarmTime": float64(420)}},
		types: []garmin.ActivityType{
			{TypeID: 1, TypeKey: "running"},
			{TypeID: 5, TypeKey: "cycling"},
		},
		sleep: xjson.Value{
			"dailySleepDTO": map[string]any{
				"sleepTimeSeconds": float64(27060),
				"sleepScores": map[string]any{
					"overall": map[string]any{"value": float64(82)},
				},
			},
		},
		hrv: xjson.Value{
			"hrvSummary": map[string]any{"status": "BALANCED"},
		},
		gear: []garmin.Gear{
			{UUID: "gear-a", DisplayName: "trail shoes"},
			{UUID: "gear-b", DisplayName: "road shoes"},
		},
		gearStats: map[string]xjson.Value{
			"gear-a": {"totalDistance": float64(412000)},
			"gear-b": {"totalDistance": float64(98000)},
		},
		gearDefaults: []garmin.GearDefault{
			{UUID: "gear-a", ActivityTypePK: 1, DefaultGear: true},
		},
	}
}

func newTestCoordinator(t *testing.T, f *fakeAPI, auth Authenticator) *Coordinator {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time {
		return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	}
	return New(f.api(), auth, dispatch.New(4), logger, WithClock(clock))
}
