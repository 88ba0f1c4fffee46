package service

import (
	"context"
	"errors"
	"log"
	"time"

	"fitflow/schedule-app/internal/domain"
	"fitflow/schedule-app/internal/repository"
	"fitflow/schedule-app/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrAssignmentAccessDenied = errors.New("assignment does not belong to this client")
	ErrAssignmentInactive     = errors.New("assignment is no longer active")
	ErrSkipNotFlexible        = errors.New("only flexible-plan days can be skipped")
	ErrAlreadySkipped         = errors.New("day is already skipped for this assignment")
)

// ScheduleService derives the weekly schedule for a client and records day
// skips. The derived schedule is never stored; every call recomputes it
// from assignments, sessions and the skip log.
type ScheduleService interface {
	// GetWeekSchedule returns the schedule for the Monday-anchored week
	// containing anchor. Data-access failures degrade to an empty schedule:
	// the projection is read-only derived state, so a failed fetch means
	// "nothing to show", not an error the client can act on.
	GetWeekSchedule(ctx context.Context, clientID primitive.ObjectID, anchor time.Time) []domain.ScheduleDay

	// SkipDay appends a skip record for (assignment, date) and returns the
	// regenerated week containing the date.
	SkipDay(ctx context.Context, clientID, assignmentID primitive.ObjectID, date time.Time) ([]domain.ScheduleDay, error)
}

// scheduleService implements the ScheduleService interface.
type scheduleService struct {
	assignmentRepo repository.AssignmentRepository
	routineRepo    repository.RoutineRepository
	sessionRepo    repository.SessionRepository
	skipRepo       repository.SkipRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(
	assignmentRepo repository.AssignmentRepository,
	routineRepo repository.RoutineRepository,
	sessionRepo repository.SessionRepository,
	skipRepo repository.SkipRepository,
) ScheduleService {
	return &scheduleService{
		assignmentRepo: assignmentRepo,
		routineRepo:    routineRepo,
		sessionRepo:    sessionRepo,
		skipRepo:       skipRepo,
	}
}

// GetWeekSchedule assembles the generator input and runs it.
func (s *scheduleService) GetWeekSchedule(ctx context.Context, clientID primitive.ObjectID, anchor time.Time) []domain.ScheduleDay {
	weekStart, weekEnd := schedule.WeekBounds(anchor)

	assignments, err := s.assignmentRepo.GetActiveByClientID(ctx, clientID)
	if err != nil {
		log.Printf("ERROR: schedule fetch: active assignments for client %s: %v", clientID.Hex(), err)
		return []domain.ScheduleDay{}
	}

	// Hydrate each assignment with its routine template. A dangling
	// routine reference drops that assignment from the week rather than
	// failing the whole fetch.
	hydrated := assignments[:0]
	for _, a := range assignments {
		routine, err := s.routineRepo.GetByID(ctx, a.RoutineID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Printf("WARN: schedule fetch: assignment %s references missing routine %s", a.ID.Hex(), a.RoutineID.Hex())
				continue
			}
			log.Printf("ERROR: schedule fetch: routine %s: %v", a.RoutineID.Hex(), err)
			return []domain.ScheduleDay{}
		}
		a.Routine = routine
		hydrated = append(hydrated, a)
	}

	// Sessions whose StartTime falls on any day of the week. The window
	// upper bound is exclusive, so extend past the last day's midnight.
	sessions, err := s.sessionRepo.GetByUserInWindow(ctx, clientID, weekStart, weekEnd.AddDate(0, 0, 1))
	if err != nil {
		log.Printf("ERROR: schedule fetch: sessions for client %s: %v", clientID.Hex(), err)
		return []domain.ScheduleDay{}
	}

	// Full skip history, not just this week: earlier skips offset the
	// flexible cycle.
	skips, err := s.skipRepo.GetByClientID(ctx, clientID)
	if err != nil {
		log.Printf("ERROR: schedule fetch: skip log for client %s: %v", clientID.Hex(), err)
		return []domain.ScheduleDay{}
	}

	return schedule.Generate(schedule.Input{
		Assignments: hydrated,
		Sessions:    sessions,
		Skips:       skips,
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
	})
}

// SkipDay validates ownership, appends to the skip log, and returns the
// regenerated week. The unique index on the skip collection makes the
// append idempotent-safe under concurrent submissions of the same day.
func (s *scheduleService) SkipDay(ctx context.Context, clientID, assignmentID primitive.ObjectID, date time.Time) ([]domain.ScheduleDay, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.ClientID != clientID {
		return nil, ErrAssignmentAccessDenied
	}
	if !assignment.IsActive {
		return nil, ErrAssignmentInactive
	}
	if assignment.PlanType != domain.PlanFlexible {
		return nil, ErrSkipNotFlexible
	}

	skip := &domain.SkipRecord{
		ClientID:      clientID,
		AssignmentID:  assignmentID,
		ScheduledDate: schedule.DateOf(date),
	}
	if _, err := s.skipRepo.Append(ctx, skip); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySkipped
		}
		return nil, err
	}

	return s.GetWeekSchedule(ctx, clientID, date), nil
}
