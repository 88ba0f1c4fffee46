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
	ErrClientNotFound        = errors.New("client not found")
	ErrClientNotRole         = errors.New("user is not a client")
	ErrClientAlreadyAssigned = errors.New("client is already managed by a trainer")
	ErrClientNotManaged      = errors.New("client is not managed by this trainer")
	ErrRoutineNotFound       = errors.New("routine not found")
	ErrRoutineAccessDenied   = errors.New("access denied: trainer does not own this routine")
	ErrRoutineNoDays         = errors.New("routine must have at least one day")
	ErrInvalidDaysPerWeek    = errors.New("daysPerWeek must be between 1 and 7")
	ErrInvalidPlanType       = errors.New("plan type must be strict or flexible")
)

// RoutineDayInput carries one routine day from the API layer; order in the
// slice defines DayNumber.
type RoutineDayInput struct {
	Name        string
	Description string
}

// RoutineService covers the trainer-side flows: the client roster, routine
// templates, and assigning routines to clients.
type RoutineService interface {
	// Client roster
	AddClientByEmail(ctx context.Context, trainerID primitive.ObjectID, clientEmail string) (*domain.User, error)
	GetManagedClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)

	// Routine templates
	CreateRoutine(ctx context.Context, trainerID primitive.ObjectID, name, description string, daysPerWeek int, days []RoutineDayInput) (*domain.Routine, error)
	GetTrainerRoutines(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Routine, error)
	UpdateRoutine(ctx context.Context, trainerID, routineID primitive.ObjectID, name, description string, daysPerWeek int, days []RoutineDayInput) (*domain.Routine, error)
	DeleteRoutine(ctx context.Context, trainerID, routineID primitive.ObjectID) error

	// Assignments
	AssignRoutine(ctx context.Context, trainerID, clientID, routineID primitive.ObjectID, planType domain.PlanType, startDate time.Time) (*domain.RoutineAssignment, error)
	GetClientAssignments(ctx context.Context, trainerID, clientID primitive.ObjectID) ([]domain.RoutineAssignment, error)
}

// routineService implements the RoutineService interface.
type routineService struct {
	userRepo       repository.UserRepository
	routineRepo    repository.RoutineRepository
	assignmentRepo repository.AssignmentRepository
}

// NewRoutineService creates a new instance of routineService.
func NewRoutineService(
	userRepo repository.UserRepository,
	routineRepo repository.RoutineRepository,
	assignmentRepo repository.AssignmentRepository,
) RoutineService {
	return &routineService{
		userRepo:       userRepo,
		routineRepo:    routineRepo,
		assignmentRepo: assignmentRepo,
	}
}

// === Client Roster ===

// AddClientByEmail associates an existing client user with this trainer.
func (s *routineService) AddClientByEmail(ctx context.Context, trainerID primitive.ObjectID, clientEmail string) (*domain.User, error) {
	client, err := s.userRepo.GetByEmail(ctx, clientEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, ErrClientNotRole
	}
	if client.TrainerID != nil && *client.TrainerID != primitive.NilObjectID && *client.TrainerID != trainerID {
		return nil, ErrClientAlreadyAssigned
	}

	if err := s.userRepo.SetTrainerForClient(ctx, client.ID, trainerID); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddClientIDToTrainer(ctx, trainerID, client.ID); err != nil {
		return nil, err
	}

	client.TrainerID = &trainerID
	return client, nil
}

// GetManagedClients returns the trainer's current roster.
func (s *routineService) GetManagedClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	return s.userRepo.GetClientsByTrainerID(ctx, trainerID)
}

// === Routine Templates ===

// CreateRoutine creates a routine template with its ordered days.
func (s *routineService) CreateRoutine(ctx context.Context, trainerID primitive.ObjectID, name, description string, daysPerWeek int, days []RoutineDayInput) (*domain.Routine, error) {
	if name == "" {
		return nil, errors.New("routine name cannot be empty")
	}
	if daysPerWeek < 1 || daysPerWeek > 7 {
		return nil, ErrInvalidDaysPerWeek
	}
	if len(days) == 0 {
		return nil, ErrRoutineNoDays
	}

	routine := &domain.Routine{
		TrainerID:   trainerID,
		Name:        name,
		Description: description,
		DaysPerWeek: daysPerWeek,
		Days:        buildRoutineDays(days),
	}

	routineID, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		return nil, err
	}
	routine.ID = routineID
	return routine, nil
}

// GetTrainerRoutines returns all routines owned by the trainer.
func (s *routineService) GetTrainerRoutines(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Routine, error) {
	return s.routineRepo.GetByTrainerID(ctx, trainerID)
}

// UpdateRoutine replaces a routine's fields and day list. Day edits replace
// the slice wholesale; existing RoutineDay IDs are not preserved, matching
// the "edits replace rather than mutate" lifecycle.
func (s *routineService) UpdateRoutine(ctx context.Context, trainerID, routineID primitive.ObjectID, name, description string, daysPerWeek int, days []RoutineDayInput) (*domain.Routine, error) {
	if daysPerWeek < 1 || daysPerWeek > 7 {
		return nil, ErrInvalidDaysPerWeek
	}
	if len(days) == 0 {
		return nil, ErrRoutineNoDays
	}

	routine, err := s.getOwnedRoutine(ctx, trainerID, routineID)
	if err != nil {
		return nil, err
	}

	routine.Name = name
	routine.Description = description
	routine.DaysPerWeek = daysPerWeek
	routine.Days = buildRoutineDays(days)

	if err := s.routineRepo.Update(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// DeleteRoutine removes a routine the trainer owns. Assignments pointing at
// the routine stay behind (deactivated history remains resolvable by ID
// until then); callers should deactivate assignments first when needed.
func (s *routineService) DeleteRoutine(ctx context.Context, trainerID, routineID primitive.ObjectID) error {
	err := s.routineRepo.Delete(ctx, routineID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRoutineNotFound
	}
	return err
}

// === Assignments ===

// AssignRoutine subscribes a managed client to one of the trainer's
// routines. Any prior active assignment of the same routine to the same
// client is deactivated (superseded), never deleted.
func (s *routineService) AssignRoutine(ctx context.Context, trainerID, clientID, routineID primitive.ObjectID, planType domain.PlanType, startDate time.Time) (*domain.RoutineAssignment, error) {
	if planType != domain.PlanStrict && planType != domain.PlanFlexible {
		return nil, ErrInvalidPlanType
	}

	if err := s.requireManagedClient(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	if _, err := s.getOwnedRoutine(ctx, trainerID, routineID); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.DeactivateByClientAndRoutine(ctx, clientID, routineID); err != nil {
		return nil, err
	}

	assignment := &domain.RoutineAssignment{
		RoutineID: routineID,
		ClientID:  clientID,
		TrainerID: trainerID,
		PlanType:  planType,
		StartDate: startDate,
		IsActive:  true,
	}
	assignmentID, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = assignmentID
	return assignment, nil
}

// GetClientAssignments lists all assignments (active and superseded) the
// trainer has made for one of their clients.
func (s *routineService) GetClientAssignments(ctx context.Context, trainerID, clientID primitive.ObjectID) ([]domain.RoutineAssignment, error) {
	if err := s.requireManagedClient(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetByClientID(ctx, clientID)
}

// --- helpers ---

func buildRoutineDays(inputs []RoutineDayInput) []domain.RoutineDay {
	days := make([]domain.RoutineDay, len(inputs))
	for i, in := range inputs {
		days[i] = domain.RoutineDay{
			DayNumber:   i + 1,
			Name:        in.Name,
			Description: in.Description,
		}
	}
	return days
}

// getOwnedRoutine fetches a routine and verifies the trainer owns it.
func (s *routineService) getOwnedRoutine(ctx context.Context, trainerID, routineID primitive.ObjectID) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	if routine.TrainerID != trainerID {
		return nil, ErrRoutineAccessDenied
	}
	return routine, nil
}

// requireManagedClient verifies the client exists and is on this trainer's
// roster.
func (s *routineService) requireManagedClient(ctx context.Context, trainerID, clientID primitive.ObjectID) error {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	if !client.IsClient() {
		return ErrClientNotRole
	}
	if client.TrainerID == nil || *client.TrainerID != trainerID {
		return ErrClientNotManaged
	}
	return nil
}
