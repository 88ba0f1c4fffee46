package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "monday maps to itself",
			in:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "midweek with time-of-day",
			in:        time.Date(2024, 1, 3, 17, 45, 12, 0, time.UTC),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday belongs to the preceding monday",
			in:        time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "crosses month boundary",
			in:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.in)
			require.Equal(t, tt.wantStart, start)
			require.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestISOWeekday(t *testing.T) {
	// 2024-01-01 is a Monday.
	for i := 0; i < 7; i++ {
		d := time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC)
		require.Equal(t, i+1, ISOWeekday(d))
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 0, DaysBetween(a, a))
	require.Equal(t, 14, DaysBetween(a, a.AddDate(0, 0, 14)))
	require.Equal(t, -3, DaysBetween(a, a.AddDate(0, 0, -3)))
	// Spans a DST changeover in civil time; UTC dates are unaffected.
	require.Equal(t, 90, DaysBetween(a, a.AddDate(0, 0, 90)))
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)
	require.Equal(t, "2024-03-15", DateKey(d))

	_, err = ParseDate("15/03/2024")
	require.Error(t, err)
}
