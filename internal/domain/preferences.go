package domain

// DefaultTimeOfDay is the session start time used when the user did not pick one.
const DefaultTimeOfDay = "09:00"

// SchedulingPreferences are the user-supplied scheduling choices. All fields
// are optional; absent fields fall back to engine defaults.
type SchedulingPreferences struct {
	// DaysOfWeek holds weekday indices sessions should land on (0 = Sunday).
	// Empty means "spread sessions over consecutive days from the anchor".
	DaysOfWeek []int `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`

	// TimeOfDay is an "HH:mm" string applied to every generated timestamp.
	TimeOfDay string `bson:"timeOfDay,omitempty" json:"timeOfDay,omitempty"`

	// SessionsPerWeek is advisory. If it disagrees with the number of
	// sessions actually present in a week, the actual count wins.
	SessionsPerWeek int `bson:"sessionsPerWeek,omitempty" json:"sessionsPerWeek,omitempty"`
}

// AppliedPreferences are the preferences actually used by a scheduling run,
// after defaulting. All fields are populated; they are returned to the caller
// so what was really applied (vs requested) can be persisted.
type AppliedPreferences struct {
	DaysOfWeek      []int  `bson:"daysOfWeek" json:"daysOfWeek"`
	TimeOfDay       string `bson:"timeOfDay" json:"timeOfDay"`
	SessionsPerWeek int    `bson:"sessionsPerWeek" json:"sessionsPerWeek"`
}

// ToPreferences converts applied preferences back to the storable preferences
// shape, for persisting alongside the scheduled program.
func (a AppliedPreferences) ToPreferences() *SchedulingPreferences {
	return &SchedulingPreferences{
		DaysOfWeek:      a.DaysOfWeek,
		TimeOfDay:       a.TimeOfDay,
		SessionsPerWeek: a.SessionsPerWeek,
	}
}
