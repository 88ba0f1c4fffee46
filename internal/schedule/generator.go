// Package schedule derives the weekly workout calendar from persisted
// records. Generate is a pure function: given the same assignments,
// sessions, skip records and week window it always produces the same
// projection, so the result is recomputed on every fetch and never stored.
package schedule

import (
	"sort"
	"time"

	"fitflow/schedule-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Input is the snapshot the generator works from. Assignments must be
// active and carry a hydrated Routine; Sessions should cover the week
// window; Skips may span the assignment's whole history (flexible plans
// need skips from before the window to offset the cycle).
type Input struct {
	Assignments []domain.RoutineAssignment
	Sessions    []domain.WorkoutSession
	Skips       []domain.SkipRecord
	WeekStart   time.Time // Monday, midnight UTC
	WeekEnd     time.Time // Sunday, midnight UTC
}

// Generate produces one ScheduleDay per assignment per calendar day in
// [WeekStart, WeekEnd], omitting days before the assignment's start date.
// Output is ordered ascending by date; days for different assignments are
// independent entries, never merged.
func Generate(in Input) []domain.ScheduleDay {
	skipSet := make(map[string]struct{}, len(in.Skips))
	skipDates := make(map[primitive.ObjectID][]time.Time)
	for _, s := range in.Skips {
		d := DateOf(s.ScheduledDate)
		skipSet[dayKey(s.AssignmentID, d)] = struct{}{}
		skipDates[s.AssignmentID] = append(skipDates[s.AssignmentID], d)
	}

	sessionsByDate := make(map[string][]domain.WorkoutSession)
	for _, s := range in.Sessions {
		k := DateKey(DateOf(s.StartTime))
		sessionsByDate[k] = append(sessionsByDate[k], s)
	}

	var days []domain.ScheduleDay
	for _, a := range in.Assignments {
		if a.Routine == nil || len(a.Routine.Days) == 0 {
			continue
		}
		start := DateOf(a.StartDate)
		for d := in.WeekStart; !d.After(in.WeekEnd); d = d.AddDate(0, 0, 1) {
			if d.Before(start) {
				continue
			}
			days = append(days, deriveDay(a, start, d, skipSet, skipDates[a.ID], sessionsByDate))
		}
	}

	// Stable keeps assignment order for entries sharing a date.
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].ScheduledDate.Before(days[j].ScheduledDate)
	})
	return days
}

// deriveDay computes the projection for one (assignment, date) pair.
func deriveDay(
	a domain.RoutineAssignment,
	start, date time.Time,
	skipSet map[string]struct{},
	skips []time.Time,
	sessionsByDate map[string][]domain.WorkoutSession,
) domain.ScheduleDay {
	day := domain.ScheduleDay{
		ID:            dayKey(a.ID, date),
		AssignmentID:  a.ID,
		ScheduledDate: date,
		PlanType:      a.PlanType,
	}

	if _, skipped := skipSet[day.ID]; skipped {
		day.IsRestDay = true
		day.WasSkipped = true
		return day
	}

	routineDays := a.Routine.Days
	switch a.PlanType {
	case domain.PlanStrict:
		// Calendar-anchored: weekday N (Mon=1) maps to routine day N while
		// N <= DaysPerWeek; later weekdays are rest. Skip history never
		// shifts a strict plan.
		wd := ISOWeekday(date)
		if wd <= a.Routine.DaysPerWeek && wd <= len(routineDays) {
			day.RoutineDay = snapshotDay(routineDays[wd-1])
		} else {
			day.IsRestDay = true
		}
	default: // flexible
		// The cycle index advances one per elapsed day, minus one per skip
		// recorded strictly before this date, so skips pause the cycle
		// instead of consuming a routine day.
		adjusted := DaysBetween(start, date) - countBefore(skips, date)
		idx := adjusted % len(routineDays)
		if idx < 0 {
			idx += len(routineDays)
		}
		day.RoutineDay = snapshotDay(routineDays[idx])
	}

	// Completion: a session started on this date marks the day completed,
	// provided its routine day (when set) belongs to this routine. Rest
	// days are never completed.
	if day.IsRestDay {
		return day
	}
	for _, s := range sessionsByDate[DateKey(date)] {
		if s.RoutineDayID != nil && a.Routine.DayByID(*s.RoutineDayID) == nil {
			continue
		}
		day.IsCompleted = true
		day.Session = &domain.SessionSnapshot{Name: s.Name}
		break
	}
	return day
}

func snapshotDay(rd domain.RoutineDay) *domain.RoutineDaySnapshot {
	return &domain.RoutineDaySnapshot{Name: rd.Name, Description: rd.Description}
}

// countBefore returns how many of the given dates fall strictly before date.
func countBefore(dates []time.Time, date time.Time) int {
	n := 0
	for _, d := range dates {
		if d.Before(date) {
			n++
		}
	}
	return n
}

// dayKey builds the synthetic ScheduleDay ID, which doubles as the skip-set
// lookup key: "<assignmentIDHex>-<YYYY-MM-DD>".
func dayKey(assignmentID primitive.ObjectID, date time.Time) string {
	return assignmentID.Hex() + "-" + DateKey(date)
}
