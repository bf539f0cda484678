package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramStatus tracks where a generated program is in its lifecycle.
type ProgramStatus string

const (
	ProgramStatusDraft     ProgramStatus = "draft"     // generated, not yet approved by the user
	ProgramStatusApproved  ProgramStatus = "approved"  // user accepted the program
	ProgramStatusScheduled ProgramStatus = "scheduled" // sessions have been placed on the calendar
)

// Program is the full multi-week exercise plan generated for one user.
// The Weeks slice order is the program order; WeekNumber is 1-indexed and
// matches the slice position.
type Program struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"` // e.g., "8-Week Foundation Builder"
	Status    ProgramStatus      `bson:"status" json:"status"`
	Weeks     []Week             `bson:"weeks" json:"weeks"`

	// StartDate is the calendar date ("YYYY-MM-DD") the schedule is anchored
	// at. Empty until the program has been scheduled at least once.
	StartDate string `bson:"startDate,omitempty" json:"startDate,omitempty"`

	// LastScheduledAt records when the scheduler last ran over this program
	// (RFC 3339). Empty if scheduling never ran.
	LastScheduledAt string `bson:"lastScheduledAt,omitempty" json:"lastScheduledAt,omitempty"`

	// Preferences holds the applied (fully resolved) scheduling preferences
	// from the most recent scheduling run.
	Preferences *SchedulingPreferences `bson:"schedulingPreferences,omitempty" json:"schedulingPreferences,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Week is a logical grouping of sessions within a program. It is a planning
// unit, not a hard 7-day calendar partition: a week with more sessions than
// available days may spill into the next week's date window.
type Week struct {
	WeekNumber int       `bson:"weekNumber" json:"weekNumber"` // 1-indexed
	Goal       string    `bson:"goal,omitempty" json:"goal,omitempty"`
	Sessions   []Session `bson:"sessions" json:"sessions"`
}

// Session is one workout within a week.
type Session struct {
	ID   string `bson:"id" json:"id"` // stable UUID assigned at generation time
	Name string `bson:"name" json:"name"`
	Goal string `bson:"goal,omitempty" json:"goal,omitempty"`

	// StartAt is the scheduled start as "YYYY-MM-DDTHH:mm". Empty means the
	// session has not been placed on the calendar yet.
	StartAt string `bson:"start_at,omitempty" json:"start_at,omitempty"`

	Exercises []Exercise `bson:"exercises" json:"exercises"`
}

// Exercise is one prescribed exercise within a session. ExerciseID references
// an ExerciseDefinition in the catalog.
type Exercise struct {
	ExerciseID string `bson:"exerciseId" json:"id"`
	Name       string `bson:"name" json:"name"`
	Sets       int    `bson:"sets" json:"sets"`
	Reps       int    `bson:"reps" json:"reps"`
	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// SessionCount returns the total number of sessions across all weeks.
func (p *Program) SessionCount() int {
	count := 0
	for _, week := range p.Weeks {
		count += len(week.Sessions)
	}
	return count
}
