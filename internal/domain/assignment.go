package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanType controls how a routine's days map onto calendar days.
type PlanType string

const (
	// PlanStrict pins routine days to fixed weekdays (Mon..Sun up to DaysPerWeek).
	PlanStrict PlanType = "strict"
	// PlanFlexible cycles continuously through the routine days from StartDate,
	// pausing on skipped days.
	PlanFlexible PlanType = "flexible"
)

// RoutineAssignment is a client's subscription to a routine, created when a
// trainer assigns the routine. Superseded assignments are deactivated, never
// deleted, so session history keeps pointing at a real record.
type RoutineAssignment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoutineID primitive.ObjectID `bson:"routineId" json:"routineId"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Denormalized for easier queries/auth
	PlanType  PlanType           `bson:"planType" json:"planType"`
	StartDate time.Time          `bson:"startDate" json:"startDate"` // Midnight UTC; schedule starts here
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Routine is the hydrated template for this assignment. Populated by the
	// service layer before schedule generation; not stored on the assignment
	// document itself.
	Routine *Routine `bson:"-" json:"routine,omitempty"`
}
