package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account working through (or past) the onboarding flow.
// The three boolean flags mirror the first three onboarding steps and only
// ever move forward; OnboardedAt is stamped once the program is scheduled.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose hash

	SurveyCompleted    bool       `bson:"surveyCompleted" json:"surveyCompleted"`
	AssessmentApproved bool       `bson:"assessmentApproved" json:"assessmentApproved"`
	ProgramApproved    bool       `bson:"programApproved" json:"programApproved"`
	OnboardedAt        *time.Time `bson:"onboardedAt,omitempty" json:"onboardedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsOnboarded reports whether the user has finished the whole flow.
func (u *User) IsOnboarded() bool {
	return u.OnboardedAt != nil && !u.OnboardedAt.IsZero()
}
