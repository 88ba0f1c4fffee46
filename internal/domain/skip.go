package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SkipRecord marks one scheduled day the client intentionally skipped.
// Append-only; a unique index on (clientId, assignmentId, scheduledDate)
// guarantees at most one record per day per assignment. For flexible plans
// a skip pauses the routine-day cycle rather than consuming a routine day.
type SkipRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID      primitive.ObjectID `bson:"clientId" json:"clientId"`
	AssignmentID  primitive.ObjectID `bson:"assignmentId" json:"assignmentId"`
	ScheduledDate time.Time          `bson:"scheduledDate" json:"scheduledDate"` // Midnight UTC
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
