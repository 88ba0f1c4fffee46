package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitflow/schedule-app/internal/domain"
	"fitflow/schedule-app/internal/repository"
	"fitflow/schedule-app/internal/schedule"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory fakes ---

type fakeAssignmentRepo struct {
	assignments map[primitive.ObjectID]*domain.RoutineAssignment
	listErr     error
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a *domain.RoutineAssignment) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	a.ID = id
	f.assignments[id] = a
	return id, nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineAssignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssignmentRepo) GetActiveByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.RoutineAssignment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.RoutineAssignment
	for _, a := range f.assignments {
		if a.ClientID == clientID && a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.RoutineAssignment, error) {
	var out []domain.RoutineAssignment
	for _, a := range f.assignments {
		if a.ClientID == clientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) DeactivateByClientAndRoutine(ctx context.Context, clientID, routineID primitive.ObjectID) error {
	for _, a := range f.assignments {
		if a.ClientID == clientID && a.RoutineID == routineID {
			a.IsActive = false
		}
	}
	return nil
}

type fakeRoutineRepo struct {
	routines map[primitive.ObjectID]*domain.Routine
}

func (f *fakeRoutineRepo) Create(ctx context.Context, r *domain.Routine) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	r.ID = id
	f.routines[id] = r
	return id, nil
}

func (f *fakeRoutineRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	r, ok := f.routines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoutineRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Routine, error) {
	var out []domain.Routine
	for _, r := range f.routines {
		if r.TrainerID == trainerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoutineRepo) Update(ctx context.Context, r *domain.Routine) error {
	f.routines[r.ID] = r
	return nil
}

func (f *fakeRoutineRepo) Delete(ctx context.Context, id, trainerID primitive.ObjectID) error {
	delete(f.routines, id)
	return nil
}

type fakeSessionRepo struct {
	sessions []domain.WorkoutSession
	err      error
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.WorkoutSession) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	s.ID = id
	f.sessions = append(f.sessions, *s)
	return id, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			return &f.sessions[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessionRepo) GetByUserInWindow(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.WorkoutSession
	for _, s := range f.sessions {
		if s.UserID == userID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) SetEndTime(ctx context.Context, id primitive.ObjectID, endTime time.Time) error {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			if f.sessions[i].EndTime != nil {
				return repository.ErrNotFound
			}
			f.sessions[i].EndTime = &endTime
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeSkipRepo struct {
	skips []domain.SkipRecord
	err   error
}

func (f *fakeSkipRepo) Append(ctx context.Context, skip *domain.SkipRecord) (primitive.ObjectID, error) {
	for _, s := range f.skips {
		if s.AssignmentID == skip.AssignmentID && s.ScheduledDate.Equal(skip.ScheduledDate) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	skip.ID = id
	f.skips = append(f.skips, *skip)
	return id, nil
}

func (f *fakeSkipRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.SkipRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.SkipRecord
	for _, s := range f.skips {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

// --- Test fixture ---

type scheduleFixture struct {
	assignments *fakeAssignmentRepo
	routines    *fakeRoutineRepo
	sessions    *fakeSessionRepo
	skips       *fakeSkipRepo
	svc         ScheduleService
	clientID    primitive.ObjectID
}

func newScheduleFixture() *scheduleFixture {
	f := &scheduleFixture{
		assignments: &fakeAssignmentRepo{assignments: map[primitive.ObjectID]*domain.RoutineAssignment{}},
		routines:    &fakeRoutineRepo{routines: map[primitive.ObjectID]*domain.Routine{}},
		sessions:    &fakeSessionRepo{},
		skips:       &fakeSkipRepo{},
		clientID:    primitive.NewObjectID(),
	}
	f.svc = NewScheduleService(f.assignments, f.routines, f.sessions, f.skips)
	return f
}

// seedAssignment creates a three-day flexible routine assigned to the
// fixture's client, starting at the given date.
func (f *scheduleFixture) seedAssignment(planType domain.PlanType, start time.Time) *domain.RoutineAssignment {
	routine := &domain.Routine{
		TrainerID:   primitive.NewObjectID(),
		Name:        "Full Body",
		DaysPerWeek: 3,
		Days: []domain.RoutineDay{
			{ID: primitive.NewObjectID(), DayNumber: 1, Name: "A"},
			{ID: primitive.NewObjectID(), DayNumber: 2, Name: "B"},
			{ID: primitive.NewObjectID(), DayNumber: 3, Name: "C"},
		},
	}
	routineID, _ := f.routines.Create(context.Background(), routine)

	assignment := &domain.RoutineAssignment{
		RoutineID: routineID,
		ClientID:  f.clientID,
		TrainerID: routine.TrainerID,
		PlanType:  planType,
		StartDate: start,
		IsActive:  true,
	}
	f.assignments.Create(context.Background(), assignment)
	return assignment
}

var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // Monday

func TestGetWeekScheduleReturnsFullWeek(t *testing.T) {
	f := newScheduleFixture()
	f.seedAssignment(domain.PlanFlexible, monday)

	days := f.svc.GetWeekSchedule(context.Background(), f.clientID, monday.AddDate(0, 0, 3))

	require.Len(t, days, 7)
	require.Equal(t, "A", days[0].RoutineDay.Name)
	require.Equal(t, schedule.DateOf(monday), days[0].ScheduledDate)
}

func TestGetWeekScheduleDegradesToEmptyOnAssignmentError(t *testing.T) {
	f := newScheduleFixture()
	f.seedAssignment(domain.PlanFlexible, monday)
	f.assignments.listErr = errors.New("connection reset")

	days := f.svc.GetWeekSchedule(context.Background(), f.clientID, monday)

	require.NotNil(t, days)
	require.Empty(t, days)
}

func TestGetWeekScheduleDegradesToEmptyOnSessionError(t *testing.T) {
	f := newScheduleFixture()
	f.seedAssignment(domain.PlanFlexible, monday)
	f.sessions.err = errors.New("timeout")

	days := f.svc.GetWeekSchedule(context.Background(), f.clientID, monday)

	require.Empty(t, days)
}

func TestGetWeekScheduleDropsAssignmentWithMissingRoutine(t *testing.T) {
	f := newScheduleFixture()
	f.seedAssignment(domain.PlanFlexible, monday)
	dangling := f.seedAssignment(domain.PlanFlexible, monday)
	delete(f.routines.routines, dangling.RoutineID)

	days := f.svc.GetWeekSchedule(context.Background(), f.clientID, monday)

	// Only the healthy assignment contributes days.
	require.Len(t, days, 7)
	for _, d := range days {
		require.NotEqual(t, dangling.ID, d.AssignmentID)
	}
}

func TestSkipDayRecordsSkipAndReturnsWeek(t *testing.T) {
	f := newScheduleFixture()
	assignment := f.seedAssignment(domain.PlanFlexible, monday)
	wednesday := monday.AddDate(0, 0, 2)

	days, err := f.svc.SkipDay(context.Background(), f.clientID, assignment.ID, wednesday)

	require.NoError(t, err)
	require.Len(t, days, 7)
	require.True(t, days[2].WasSkipped)
	require.True(t, days[2].IsRestDay)
	// The cycle pauses: Thursday picks up where Wednesday would have been.
	require.Equal(t, "C", days[3].RoutineDay.Name)
}

func TestSkipDayUnknownAssignment(t *testing.T) {
	f := newScheduleFixture()

	_, err := f.svc.SkipDay(context.Background(), f.clientID, primitive.NewObjectID(), monday)

	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestSkipDayRejectsForeignAssignment(t *testing.T) {
	f := newScheduleFixture()
	assignment := f.seedAssignment(domain.PlanFlexible, monday)

	_, err := f.svc.SkipDay(context.Background(), primitive.NewObjectID(), assignment.ID, monday)

	require.ErrorIs(t, err, ErrAssignmentAccessDenied)
}

func TestSkipDayRejectsInactiveAssignment(t *testing.T) {
	f := newScheduleFixture()
	assignment := f.seedAssignment(domain.PlanFlexible, monday)
	f.assignments.assignments[assignment.ID].IsActive = false

	_, err := f.svc.SkipDay(context.Background(), f.clientID, assignment.ID, monday)

	require.ErrorIs(t, err, ErrAssignmentInactive)
}

func TestSkipDayRejectsStrictPlan(t *testing.T) {
	f := newScheduleFixture()
	assignment := f.seedAssignment(domain.PlanStrict, monday)

	_, err := f.svc.SkipDay(context.Background(), f.clientID, assignment.ID, monday)

	require.ErrorIs(t, err, ErrSkipNotFlexible)
}

func TestSkipDayRejectsDuplicate(t *testing.T) {
	f := newScheduleFixture()
	assignment := f.seedAssignment(domain.PlanFlexible, monday)

	_, err := f.svc.SkipDay(context.Background(), f.clientID, assignment.ID, monday)
	require.NoError(t, err)

	_, err = f.svc.SkipDay(context.Background(), f.clientID, assignment.ID, monday)
	require.ErrorIs(t, err, ErrAlreadySkipped)
}
