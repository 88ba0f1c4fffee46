package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSession is a concrete, dated instance of working out. It is created
// when the client starts a workout; a nil EndTime means the session is still
// in progress. Free-form sessions have no RoutineDayID.
type WorkoutSession struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"userId" json:"userId"`
	Name         string              `bson:"name" json:"name"` // e.g., "Day 2: Lower Body", "Evening run"
	StartTime    time.Time           `bson:"startTime" json:"startTime"`
	EndTime      *time.Time          `bson:"endTime,omitempty" json:"endTime,omitempty"`
	RoutineDayID *primitive.ObjectID `bson:"routineDayId,omitempty" json:"routineDayId,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsCompleted reports whether the session has been finished.
func (s *WorkoutSession) IsCompleted() bool {
	return s.EndTime != nil
}
