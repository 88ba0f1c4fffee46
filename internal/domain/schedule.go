package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleDay is the derived projection of one calendar day for one
// assignment: what should happen on that day and what actually happened.
// It is never persisted; the generator recomputes it from assignments,
// sessions and skip records on every fetch. For a given (assignment, date)
// at most one ScheduleDay exists.
type ScheduleDay struct {
	ID            string              `json:"id"` // "<assignmentIDHex>-<YYYY-MM-DD>", synthetic
	AssignmentID  primitive.ObjectID  `json:"assignmentId"`
	ScheduledDate time.Time           `json:"scheduledDate"` // Midnight UTC
	PlanType      PlanType            `json:"planType"`
	IsRestDay     bool                `json:"isRestDay"`
	IsCompleted   bool                `json:"isCompleted"`
	WasSkipped    bool                `json:"wasSkipped"`
	RoutineDay    *RoutineDaySnapshot `json:"routineDay,omitempty"` // nil on rest days
	Session       *SessionSnapshot    `json:"session,omitempty"`    // nil unless a session matched
}

// RoutineDaySnapshot is the slice of RoutineDay the schedule view needs.
type RoutineDaySnapshot struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SessionSnapshot captures the matched workout session's name.
type SessionSnapshot struct {
	Name string `json:"name"`
}
