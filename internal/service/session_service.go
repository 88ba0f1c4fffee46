package service

import (
	"context"
	"errors"
	"time"

	"fitflow/schedule-app/internal/domain"
	"fitflow/schedule-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionAccessDenied    = errors.New("session does not belong to this user")
	ErrSessionAlreadyFinished = errors.New("session is already finished")
	ErrRoutineDayUnknown      = errors.New("routine day does not belong to any active assignment")
)

// SessionService manages the workout session lifecycle: a session is
// created when the client starts working out and completed when an end
// time is set.
type SessionService interface {
	StartSession(ctx context.Context, userID primitive.ObjectID, name string, routineDayID *primitive.ObjectID) (*domain.WorkoutSession, error)
	FinishSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	GetSessionsInWindow(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error)
}

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo    repository.SessionRepository
	assignmentRepo repository.AssignmentRepository
	routineRepo    repository.RoutineRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	assignmentRepo repository.AssignmentRepository,
	routineRepo repository.RoutineRepository,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		routineRepo:    routineRepo,
	}
}

// StartSession creates an in-progress session. When routineDayID is set it
// must belong to a routine the user is actively assigned to; free-form
// sessions pass nil.
func (s *sessionService) StartSession(ctx context.Context, userID primitive.ObjectID, name string, routineDayID *primitive.ObjectID) (*domain.WorkoutSession, error) {
	if name == "" {
		return nil, errors.New("session name cannot be empty")
	}

	if routineDayID != nil && *routineDayID != primitive.NilObjectID {
		ok, err := s.routineDayBelongsToUser(ctx, userID, *routineDayID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRoutineDayUnknown
		}
	}

	session := &domain.WorkoutSession{
		UserID:       userID,
		Name:         name,
		StartTime:    time.Now().UTC(),
		RoutineDayID: routineDayID,
	}
	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID
	return session, nil
}

// FinishSession sets the end time, completing the session.
func (s *sessionService) FinishSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionAccessDenied
	}
	if session.IsCompleted() {
		return nil, ErrSessionAlreadyFinished
	}

	endTime := time.Now().UTC()
	if err := s.sessionRepo.SetEndTime(ctx, sessionID, endTime); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Lost the race with another finish call.
			return nil, ErrSessionAlreadyFinished
		}
		return nil, err
	}
	session.EndTime = &endTime
	return session, nil
}

// GetSessionsInWindow lists the user's sessions with StartTime in [from, to).
func (s *sessionService) GetSessionsInWindow(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error) {
	if !to.After(from) {
		return nil, errors.New("window end must be after window start")
	}
	return s.sessionRepo.GetByUserInWindow(ctx, userID, from, to)
}

// routineDayBelongsToUser reports whether the routine day is part of a
// routine from one of the user's active assignments.
func (s *sessionService) routineDayBelongsToUser(ctx context.Context, userID, routineDayID primitive.ObjectID) (bool, error) {
	assignments, err := s.assignmentRepo.GetActiveByClientID(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, a := range assignments {
		routine, err := s.routineRepo.GetByID(ctx, a.RoutineID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return false, err
		}
		if routine.DayByID(routineDayID) != nil {
			return true, nil
		}
	}
	return false, nil
}
