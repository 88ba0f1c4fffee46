package schedule

import (
	"testing"
	"time"

	"fitflow/schedule-app/internal/domain"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 2024-01-01 is a Monday, which keeps week math easy to read.
var (
	jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan7 = time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
)

func flexAssignment(startDate time.Time, dayNames ...string) domain.RoutineAssignment {
	return newAssignment(domain.PlanFlexible, startDate, len(dayNames), dayNames...)
}

func strictAssignment(startDate time.Time, daysPerWeek int, dayNames ...string) domain.RoutineAssignment {
	return newAssignment(domain.PlanStrict, startDate, daysPerWeek, dayNames...)
}

func newAssignment(plan domain.PlanType, startDate time.Time, daysPerWeek int, dayNames ...string) domain.RoutineAssignment {
	routine := &domain.Routine{
		ID:          primitive.NewObjectID(),
		DaysPerWeek: daysPerWeek,
	}
	for i, name := range dayNames {
		routine.Days = append(routine.Days, domain.RoutineDay{
			ID:        primitive.NewObjectID(),
			DayNumber: i + 1,
			Name:      name,
		})
	}
	return domain.RoutineAssignment{
		ID:        primitive.NewObjectID(),
		RoutineID: routine.ID,
		ClientID:  primitive.NewObjectID(),
		PlanType:  plan,
		StartDate: startDate,
		IsActive:  true,
		Routine:   routine,
	}
}

// dayNames flattens the generated week into routine-day names, using "rest"
// for rest days.
func dayNames(days []domain.ScheduleDay) []string {
	names := make([]string, len(days))
	for i, d := range days {
		if d.RoutineDay != nil {
			names[i] = d.RoutineDay.Name
		} else {
			names[i] = "rest"
		}
	}
	return names
}

func TestGenerateFlexibleCyclesThroughRoutineDays(t *testing.T) {
	a := flexAssignment(jan1, "A", "B", "C")

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		WeekStart:   jan1,
		WeekEnd:     jan7,
	})

	require.Len(t, days, 7)
	require.Equal(t, []string{"A", "B", "C", "A", "B", "C", "A"}, dayNames(days))
	for _, d := range days {
		require.False(t, d.IsRestDay)
		require.False(t, d.IsCompleted)
		require.False(t, d.WasSkipped)
		require.Equal(t, domain.PlanFlexible, d.PlanType)
	}
}

func TestGenerateFlexibleSkipShiftsCycle(t *testing.T) {
	a := flexAssignment(jan1, "A", "B", "C")
	jan2 := jan1.AddDate(0, 0, 1)

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		Skips: []domain.SkipRecord{
			{ClientID: a.ClientID, AssignmentID: a.ID, ScheduledDate: jan2},
		},
		WeekStart: jan1,
		WeekEnd:   jan7,
	})

	require.Len(t, days, 7)
	require.Equal(t, []string{"A", "rest", "B", "C", "A", "B", "C"}, dayNames(days))

	skippedDay := days[1]
	require.True(t, skippedDay.IsRestDay)
	require.True(t, skippedDay.WasSkipped)
	require.Nil(t, skippedDay.RoutineDay)

	// Every day after the skip sits one routine-day earlier than the
	// no-skip run would have placed it.
	require.Equal(t, "B", days[2].RoutineDay.Name) // was C pre-skip
}

func TestGenerateStrictMapsWeekdays(t *testing.T) {
	a := strictAssignment(jan1, 3, "Push", "Pull", "Legs")

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		WeekStart:   jan1,
		WeekEnd:     jan7,
	})

	require.Len(t, days, 7)
	require.Equal(t, []string{"Push", "Pull", "Legs", "rest", "rest", "rest", "rest"}, dayNames(days))
	for _, d := range days[3:] {
		require.True(t, d.IsRestDay)
		require.False(t, d.WasSkipped)
	}
}

func TestGenerateStrictIgnoresSkipHistoryForMapping(t *testing.T) {
	// Strict plans are calendar-anchored: a skip converts its own day to
	// rest but never shifts the rest of the week.
	a := strictAssignment(jan1, 3, "Push", "Pull", "Legs")
	jan2 := jan1.AddDate(0, 0, 1)

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		Skips: []domain.SkipRecord{
			{ClientID: a.ClientID, AssignmentID: a.ID, ScheduledDate: jan2},
		},
		WeekStart: jan1,
		WeekEnd:   jan7,
	})

	require.Equal(t, []string{"Push", "rest", "Legs", "rest", "rest", "rest", "rest"}, dayNames(days))
	require.True(t, days[1].WasSkipped)
	require.False(t, days[2].WasSkipped)
}

func TestGenerateSkipsDatesBeforeStartDate(t *testing.T) {
	jan4 := jan1.AddDate(0, 0, 3)
	a := flexAssignment(jan4, "A", "B")

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		WeekStart:   jan1,
		WeekEnd:     jan7,
	})

	require.Len(t, days, 4) // Jan 4..7 only
	require.Equal(t, jan4, days[0].ScheduledDate)
	require.Equal(t, []string{"A", "B", "A", "B"}, dayNames(days))
}

func TestGenerateCompletionLinksSessions(t *testing.T) {
	a := flexAssignment(jan1, "A", "B", "C")
	otherRoutineDay := primitive.NewObjectID()

	sessions := []domain.WorkoutSession{
		// Free-form session on Jan 1: counts for any routine.
		{UserID: a.ClientID, Name: "Morning lift", StartTime: jan1.Add(8 * time.Hour)},
		// Session tied to a day of a different routine on Jan 2: must not count.
		{UserID: a.ClientID, Name: "Other plan", StartTime: jan1.AddDate(0, 0, 1).Add(9 * time.Hour), RoutineDayID: &otherRoutineDay},
		// Session tied to this routine's second day on Jan 3.
		{UserID: a.ClientID, Name: "Day C done", StartTime: jan1.AddDate(0, 0, 2).Add(18 * time.Hour), RoutineDayID: &a.Routine.Days[2].ID},
	}

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		Sessions:    sessions,
		WeekStart:   jan1,
		WeekEnd:     jan7,
	})

	require.True(t, days[0].IsCompleted)
	require.Equal(t, "Morning lift", days[0].Session.Name)

	require.False(t, days[1].IsCompleted)
	require.Nil(t, days[1].Session)

	require.True(t, days[2].IsCompleted)
	require.Equal(t, "Day C done", days[2].Session.Name)
}

func TestGenerateRestDayNeverCompleted(t *testing.T) {
	a := strictAssignment(jan1, 2, "Upper", "Lower")

	// Session lands on Wednesday, a rest day for days_per_week=2.
	wednesday := jan1.AddDate(0, 0, 2)
	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		Sessions: []domain.WorkoutSession{
			{UserID: a.ClientID, Name: "Extra cardio", StartTime: wednesday.Add(7 * time.Hour)},
		},
		WeekStart: jan1,
		WeekEnd:   jan7,
	})

	require.True(t, days[2].IsRestDay)
	require.False(t, days[2].IsCompleted)
	require.Nil(t, days[2].Session)
}

func TestGenerateIsIdempotent(t *testing.T) {
	a := flexAssignment(jan1, "A", "B", "C")
	in := Input{
		Assignments: []domain.RoutineAssignment{a},
		Skips: []domain.SkipRecord{
			{ClientID: a.ClientID, AssignmentID: a.ID, ScheduledDate: jan1.AddDate(0, 0, 1)},
		},
		Sessions: []domain.WorkoutSession{
			{UserID: a.ClientID, Name: "Lift", StartTime: jan1.Add(10 * time.Hour)},
		},
		WeekStart: jan1,
		WeekEnd:   jan7,
	}

	first := Generate(in)
	second := Generate(in)
	require.Equal(t, first, second)
}

func TestGenerateMultipleAssignmentsStayIndependent(t *testing.T) {
	flex := flexAssignment(jan1, "A", "B")
	strict := strictAssignment(jan1, 2, "Push", "Pull")

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{flex, strict},
		WeekStart:   jan1,
		WeekEnd:     jan7,
	})

	require.Len(t, days, 14)

	// Ascending by date; both assignments present for every day.
	for i := 1; i < len(days); i++ {
		require.False(t, days[i].ScheduledDate.Before(days[i-1].ScheduledDate))
	}
	perAssignment := make(map[string]int)
	seen := make(map[string]bool)
	for _, d := range days {
		perAssignment[d.AssignmentID.Hex()]++
		require.False(t, seen[d.ID], "duplicate ScheduleDay %s", d.ID)
		seen[d.ID] = true
	}
	require.Equal(t, 7, perAssignment[flex.ID.Hex()])
	require.Equal(t, 7, perAssignment[strict.ID.Hex()])
}

func TestGenerateFlexibleLaterWeekOffsetsByHistory(t *testing.T) {
	// Week two of a 3-day cycle with one skip in week one: the cycle index
	// on Jan 8 is (7 days elapsed - 1 prior skip) mod 3 = 0 -> "A".
	a := flexAssignment(jan1, "A", "B", "C")
	week2Start := jan1.AddDate(0, 0, 7)
	week2End := jan7.AddDate(0, 0, 7)

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		Skips: []domain.SkipRecord{
			{ClientID: a.ClientID, AssignmentID: a.ID, ScheduledDate: jan1.AddDate(0, 0, 1)},
		},
		WeekStart: week2Start,
		WeekEnd:   week2End,
	})

	require.Equal(t, []string{"A", "B", "C", "A", "B", "C", "A"}, dayNames(days))
}

func TestGenerateAssignmentWithoutRoutineDaysProducesNothing(t *testing.T) {
	a := domain.RoutineAssignment{
		ID:        primitive.NewObjectID(),
		PlanType:  domain.PlanFlexible,
		StartDate: jan1,
		IsActive:  true,
		Routine:   &domain.Routine{ID: primitive.NewObjectID()},
	}

	days := Generate(Input{
		Assignments: []domain.RoutineAssignment{a},
		WeekStart:   jan1,
		WeekEnd:     jan7,
	})
	require.Empty(t, days)
}
