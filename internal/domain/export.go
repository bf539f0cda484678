package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalendarExport records one iCalendar export of a scheduled program. The
// rendered .ics document lives in object storage under ObjectKey; this is
// just the metadata.
type CalendarExport struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"`
	ObjectKey string             `bson:"objectKey" json:"objectKey"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
