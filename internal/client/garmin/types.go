package garmin

import "time"

type Gear struct {
	UUID            string `json:"uuid"`
	GearPK          int64  `json:"gearPk"`
	UserProfilePK   int64  `json:"userProfilePk"`
	DisplayName     string `json:"displayName"`
	CustomMakeModel string `json:"customMakeModel"`
	GearStatusName  string `json:"gearStatusName"`
	GearTypeName    string `json:"gearTypeName"`
}

type GearDefault struct {
	UUID           string `json:"uuid"`
	ActivityTypePK int64  `json:"activityTypePk"`
	DefaultGear    bool   `json:"defaultGear"`
}

type ActivityType struct {
	TypeID       int64  `json:"typeId"`
	TypeKey      string `json:"typeKey"`
	ParentTypeID int64  `json:"parentTypeId"`
}

// BodyCompositionEntry is one weigh-in. Weight is required; every other
// field is optional and omitted from the upload when nil.
type BodyCompositionEntry struct {
	Timestamp         *time.Time `json:"timestampGMT,omitempty"`
	Weight            float64    `json:"weight"`
	PercentFat        *float64   `json:"bodyFat,omitempty"`
	PercentHydration  *float64   `json:"bodyWater,omitempty"`
	VisceralFatMass   *float64   `json:"visceralFatMass,omitempty"`
	BoneMass          *float64   `json:"boneMass,omitempty"`
	MuscleMass        *float64   `json:"muscleMass,omitempty"`
	BasalMet          *float64   `json:"basalMet,omitempty"`
	ActiveMet         *float64   `json:"activeMet,omitempty"`
	PhysiqueRating    *float64   `json:"physiqueRating,omitempty"`
	MetabolicAge      *float64   `json:"metabolicAge,omitempty"`
	VisceralFatRating *float64   `json:"visceralFatRating,omitempty"`
	BMI               *float64   `json:"bmi,omitempty"`
}

type BloodPressureReading struct {
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Pulse     int    `json:"pulse"`
	Note      string `json:"notes,omitempty"`
}
