package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2025, time.March, 12, 14, 30, 0, 0, time.UTC)

func TestBuildSchedule_WeeklyNextOccurrence(t *testing.T) {
	t.Parallel()

	input := PlanningInput{
		Title: "Cleaning",
		Mode:  PlanningWeekly,
		Schedule: map[string]DayTimes{
			"Friday": {Start: "18:00", End: "19:00"},
		},
	}

	planned, err := buildSchedule(input, fixedNow)
	require.NoError(t, err)
	require.Len(t, planned, 1)

	// Next Friday after Wednesday Mar 12 is Mar 14.
	assert.Equal(t, time.Date(2025, time.March, 14, 18, 0, 0, 0, time.UTC), planned[0].start)
	assert.Equal(t, time.Date(2025, time.March, 14, 19, 0, 0, 0, time.UTC), planned[0].end)
	assert.Equal(t, domain.RecurrenceWeekly, planned[0].recurrence)
	assert.Equal(t, "Weekly planning for friday", planned[0].description)
}

func TestBuildSchedule_WeeklySameDayGoesToNextWeek(t *testing.T) {
	t.Parallel()

	input := PlanningInput{
		Title: "Cleaning",
		Mode:  PlanningWeekly,
		Schedule: map[string]DayTimes{
			"wednesday": {Start: "08:00", End: "08:30"},
		},
	}

	planned, err := buildSchedule(input, fixedNow)
	require.NoError(t, err)
	require.Len(t, planned, 1)

	// fixedNow is itself a Wednesday: the event lands a week out.
	assert.Equal(t, time.Date(2025, time.March, 19, 8, 0, 0, 0, time.UTC), planned[0].start)
}

func TestBuildSchedule_WeeklyMondayFirstOrder(t *testing.T) {
	t.Parallel()

	input := PlanningInput{
		Title: "Cooking",
		Mode:  PlanningWeekly,
		Schedule: map[string]DayTimes{
			"sunday":  {Start: "12:00", End: "13:00"},
			"monday":  {Start: "12:00", End: "13:00"},
			"friday":  {Start: "12:00", End: "13:00"},
			"TUESDAY": {Start: "12:00", End: "13:00"},
		},
	}

	planned, err := buildSchedule(input, fixedNow)
	require.NoError(t, err)
	require.Len(t, planned, 4)

	got := make([]string, 0, len(planned))
	for _, p := range planned {
		got = append(got, p.day)
	}
	assert.Equal(t, []string{"monday", "tuesday", "friday", "sunday"}, got)
}

func TestBuildSchedule_WeeklyUnknownWeekday(t *testing.T) {
	t.Parallel()

	input := PlanningInput{
		Title: "Cooking",
		Mode:  PlanningWeekly,
		Schedule: map[string]DayTimes{
			"someday": {Start: "12:00", End: "13:00"},
		},
	}

	_, err := buildSchedule(input, fixedNow)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "someday")
}

func TestBuildSchedule_Monthly(t *testing.T) {
	t.Parallel()

	input := PlanningInput{
		Title: "Rent",
		Mode:  PlanningMonthly,
		Month: 3,
		Year:  2025,
		Schedule: map[string]DayTimes{
			"15": {Start: "09:00", End: "09:30"},
		},
	}

	planned, err := buildSchedule(input, fixedNow)
	require.NoError(t, err)
	require.Len(t, planned, 1)

	assert.Equal(t, time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC), planned[0].start)
	assert.Equal(t, time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC), planned[0].end)
	assert.Equal(t, domain.RecurrenceMonthly, planned[0].recurrence)
	assert.Equal(t, "Monthly planning for day 15", planned[0].description)
}

func TestBuildSchedule_MonthlyAscendingDays(t *testing.T) {
	t.Parallel()

	input := PlanningInput{
		Title: "Bills",
		Mode:  PlanningMonthly,
		Month: 6,
		Year:  2025,
		Schedule: map[string]DayTimes{
			"28": {Start: "10:00", End: "10:30"},
			"1":  {Start: "10:00", End: "10:30"},
			"14": {Start: "10:00", End: "10:30"},
		},
	}

	planned, err := buildSchedule(input, fixedNow)
	require.NoError(t, err)
	require.Len(t, planned, 3)
	assert.Equal(t, []string{"1", "14", "28"}, []string{planned[0].day, planned[1].day, planned[2].day})
}

func TestBuildSchedule_MonthlyOneOffIsPlainEvent(t *testing.T) {
	t.Parallel()

	input := PlanningInput{
		Title: "Inspection",
		Mode:  PlanningMonthlyOneOff,
		Month: 4,
		Year:  2025,
		Schedule: map[string]DayTimes{
			"10": {Start: "11:00", End: "12:00"},
		},
	}

	planned, err := buildSchedule(input, fixedNow)
	require.NoError(t, err)
	require.Len(t, planned, 1)
	assert.Equal(t, domain.RecurrenceNone, planned[0].recurrence)
}

func TestBuildSchedule_MonthlyDayOutOfRange(t *testing.T) {
	t.Parallel()

	// February 2025 has 28 days.
	input := PlanningInput{
		Title: "Bills",
		Mode:  PlanningMonthly,
		Month: 2,
		Year:  2025,
		Schedule: map[string]DayTimes{
			"30": {Start: "10:00", End: "10:30"},
		},
	}

	_, err := buildSchedule(input, fixedNow)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildSchedule_NamesOffendingDay(t *testing.T) {
	t.Parallel()

	input := PlanningInput{
		Title: "Cooking",
		Mode:  PlanningWeekly,
		Schedule: map[string]DayTimes{
			"monday": {Start: "12:00", End: "13:00"},
			"friday": {Start: "14:00", End: "14:00"},
		},
	}

	_, err := buildSchedule(input, fixedNow)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "friday")
}

func TestPlanningInput_Validate(t *testing.T) {
	t.Parallel()

	schedule := map[string]DayTimes{"monday": {Start: "08:00", End: "09:00"}}

	tests := []struct {
		name    string
		input   PlanningInput
		wantErr bool
	}{
		{"valid weekly", PlanningInput{Title: "T", Mode: PlanningWeekly, Schedule: schedule}, false},
		{"valid monthly", PlanningInput{Title: "T", Mode: PlanningMonthly, Month: 1, Year: 2025, Schedule: schedule}, false},
		{"unknown mode", PlanningInput{Title: "T", Mode: "biweekly", Schedule: schedule}, true},
		{"missing title", PlanningInput{Mode: PlanningWeekly, Schedule: schedule}, true},
		{"empty schedule", PlanningInput{Title: "T", Mode: PlanningWeekly}, true},
		{"monthly month out of range", PlanningInput{Title: "T", Mode: PlanningMonthly, Month: 13, Year: 2025, Schedule: schedule}, true},
		{"monthly missing year", PlanningInput{Title: "T", Mode: PlanningMonthlyOneOff, Month: 5, Schedule: schedule}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
