package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assessment is the AI-generated fitness assessment derived from a user's
// survey answers. The user reviews it and approves (or regenerates) before a
// program is generated from it.
type Assessment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	SurveyID        primitive.ObjectID `bson:"surveyId" json:"surveyId"`
	Summary         string             `bson:"summary" json:"summary"`
	Strengths       []string           `bson:"strengths,omitempty" json:"strengths,omitempty"`
	Limitations     []string           `bson:"limitations,omitempty" json:"limitations,omitempty"`
	Recommendations []string           `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
	Approved        bool               `bson:"approved" json:"approved"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
