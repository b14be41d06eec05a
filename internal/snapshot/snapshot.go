// Package snapshot defines the single flat record produced by one refresh
// cycle. A snapshot fully replaces its predecessor; nothing accumulates
// across cycles.
package snapshot

// Keys the coordinator writes on every successful cycle, alongside whatever
// fields the daily summary and body-composition feeds happen to carry.
const (
	KeyLastActivities   = "lastActivities"
	KeyBadges           = "badges"
	KeyNextAlarm        = "nextAlarm"
	KeyGear             = "gear"
	KeyGearStats        = "gear_stats"
	KeyActivityTypes    = "activity_types"
	KeyGearDefaults     = "gear_defaults"
	KeySleepScore       = "sleepScore"
	KeySleepTimeSeconds = "sleepTimeSeconds"
	KeyHRVStatus        = "hrvStatus"

	// KeyUserProfileID is the summary field carrying the profile identifier
	// the gear feeds key on.
	KeyUserProfileID = "userProfileId"
)

type Snapshot map[string]any

// Merge combines parts into one flat snapshot. Later parts overwrite earlier
// ones on key collision, so flattened body-composition totals can shadow
// identically named summary fields.
func Merge(parts ...map[string]any) Snapshot {
	merged := make(Snapshot)
	for _, part := range parts {
		for k, v := range part {
			merged[k] = v
		}
	}
	return merged
}

// HRVUnknown is the hrvStatus value used when HRV data is absent or carries
// no summary.
func HRVUnknown() map[string]any {
	return map[string]any{"status": "UNKNOWN"}
}
