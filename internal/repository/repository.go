package repository

import (
	"context"
	"time"

	"fitflow/schedule-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddClientIDToTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error
	GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	SetTrainerForClient(ctx context.Context, clientID, trainerID primitive.ObjectID) error
}

// RoutineRepository defines the interface for interacting with routine
// templates (including their embedded ordered days).
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Routine, error)
	Update(ctx context.Context, routine *domain.Routine) error
	Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error // Ensure trainer owns the routine
}

// AssignmentRepository defines the interface for routine assignments.
// Assignments are deactivated rather than deleted, so the schedule history
// of a superseded routine remains resolvable.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.RoutineAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineAssignment, error)
	GetActiveByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.RoutineAssignment, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.RoutineAssignment, error)
	DeactivateByClientAndRoutine(ctx context.Context, clientID, routineID primitive.ObjectID) error
}

// SessionRepository defines the interface for workout sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserInWindow(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error)
	SetEndTime(ctx context.Context, id primitive.ObjectID, endTime time.Time) error
}

// SkipRepository is the server-persisted append-only skip log. Append must
// return ErrDuplicate when a record for the same (client, assignment, date)
// already exists.
type SkipRepository interface {
	Append(ctx context.Context, skip *domain.SkipRecord) (primitive.ObjectID, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.SkipRecord, error)
}

// PhotoRepository defines the interface for progress photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.ProgressPhoto, error)
}
