package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is a reusable workout template owned by a trainer. It carries an
// ordered list of RoutineDays which the schedule generator cycles through
// (flexible plans) or pins to weekdays (strict plans).
type Routine struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Who created/owns the routine
	Name        string             `bson:"name" json:"name"`           // e.g., "Push/Pull/Legs"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DaysPerWeek int                `bson:"daysPerWeek" json:"daysPerWeek"` // 1..7; strict plans map weekdays 1..DaysPerWeek
	Days        []RoutineDay       `bson:"days" json:"days"`               // Ordered by DayNumber, embedded
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RoutineDay is one ordered workout template within a routine.
// Edits replace the whole Days slice rather than mutating entries in place.
type RoutineDay struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayNumber   int                `bson:"dayNumber" json:"dayNumber"` // 1-based ordering key
	Name        string             `bson:"name" json:"name"`           // e.g., "Day 1: Upper Body"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// DayByID returns the routine day with the given ID, or nil.
func (r *Routine) DayByID(id primitive.ObjectID) *RoutineDay {
	for i := range r.Days {
		if r.Days[i].ID == id {
			return &r.Days[i]
		}
	}
	return nil
}
