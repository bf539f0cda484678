package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey holds the answers a user gave during the onboarding questionnaire.
// These feed the AI assessment, so the answer set is stored verbatim.
type Survey struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Answers     []SurveyAnswer     `bson:"answers" json:"answers"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
}

// SurveyAnswer is one question/answer pair from the questionnaire.
type SurveyAnswer struct {
	Question string `bson:"question" json:"question"` // e.g., "How many days a week can you train?"
	Answer   string `bson:"answer" json:"answer"`
}
