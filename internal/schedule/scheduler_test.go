package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitflow/onboarding-app/internal/domain"
)

func testProgram(sessionsPerWeek ...int) domain.Program {
	program := domain.Program{Title: "Foundation Builder"}
	for w, count := range sessionsPerWeek {
		week := domain.Week{WeekNumber: w + 1}
		for s := 0; s < count; s++ {
			week.Sessions = append(week.Sessions, domain.Session{
				ID:   string(rune('a'+w)) + "-" + string(rune('0'+s)),
				Name: "Session",
				Exercises: []domain.Exercise{
					{ExerciseID: "squat", Name: "Back Squat", Sets: 3, Reps: 8},
				},
			})
		}
		program.Weeks = append(program.Weeks, week)
	}
	return program
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func collectStartAts(program domain.Program) []string {
	var all []string
	for _, week := range program.Weeks {
		for _, session := range week.Sessions {
			all = append(all, session.StartAt)
		}
	}
	return all
}

func TestScheduleProgram_PreferredWeekdays(t *testing.T) {
	program := testProgram(2, 3)
	start := mustDate(t, "2025-01-05") // a Sunday
	prefs := &domain.SchedulingPreferences{DaysOfWeek: []int{1, 3}, TimeOfDay: "07:30"}

	scheduled, applied, err := ScheduleProgram(program, start, prefs)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, applied.DaysOfWeek)
	assert.Equal(t, "07:30", applied.TimeOfDay)

	// Week 1: Monday and Wednesday.
	assert.Equal(t, "2025-01-06T07:30", scheduled.Weeks[0].Sessions[0].StartAt)
	assert.Equal(t, "2025-01-08T07:30", scheduled.Weeks[0].Sessions[1].StartAt)

	// Week 2 anchors one week later; third session overflows to Thursday.
	assert.Equal(t, "2025-01-13T07:30", scheduled.Weeks[1].Sessions[0].StartAt)
	assert.Equal(t, "2025-01-15T07:30", scheduled.Weeks[1].Sessions[1].StartAt)
	assert.Equal(t, "2025-01-16T07:30", scheduled.Weeks[1].Sessions[2].StartAt)

	assert.Equal(t, "2025-01-05", scheduled.StartDate)
}

func TestScheduleProgram_DefaultPreferences(t *testing.T) {
	program := testProgram(3, 2)

	scheduled, applied, err := ScheduleProgram(program, mustDate(t, "2025-03-01"), nil)
	require.NoError(t, err)

	// Consecutive days from the anchor, default time of day.
	assert.Equal(t, "2025-03-01T09:00", scheduled.Weeks[0].Sessions[0].StartAt)
	assert.Equal(t, "2025-03-02T09:00", scheduled.Weeks[0].Sessions[1].StartAt)
	assert.Equal(t, "2025-03-03T09:00", scheduled.Weeks[0].Sessions[2].StartAt)
	assert.Equal(t, "2025-03-08T09:00", scheduled.Weeks[1].Sessions[0].StartAt)

	// Applied preferences are fully populated even when nothing was given.
	assert.Equal(t, domain.DefaultTimeOfDay, applied.TimeOfDay)
	assert.Equal(t, 3, applied.SessionsPerWeek, "defaults to the busiest week")
}

func TestScheduleProgram_FullCoverage(t *testing.T) {
	program := testProgram(4, 0, 2, 5)

	scheduled, _, err := ScheduleProgram(program, mustDate(t, "2025-06-02"), nil)
	require.NoError(t, err)

	for _, startAt := range collectStartAts(scheduled) {
		assert.NotEmpty(t, startAt)
	}
}

func TestScheduleProgram_Idempotent(t *testing.T) {
	program := testProgram(3, 3)
	start := mustDate(t, "2025-01-05")
	prefs := &domain.SchedulingPreferences{DaysOfWeek: []int{2, 4}, TimeOfDay: "06:15"}

	once, appliedOnce, err := ScheduleProgram(program, start, prefs)
	require.NoError(t, err)
	twice, appliedTwice, err := ScheduleProgram(once, start, prefs)
	require.NoError(t, err)

	assert.Equal(t, collectStartAts(once), collectStartAts(twice))
	assert.Equal(t, appliedOnce, appliedTwice)
}

func TestScheduleProgram_RescheduleOverwritesEverything(t *testing.T) {
	program := testProgram(3, 3)

	first, _, err := ScheduleProgram(program, mustDate(t, "2025-01-05"), nil)
	require.NoError(t, err)
	second, _, err := ScheduleProgram(first, mustDate(t, "2025-02-10"), nil)
	require.NoError(t, err)

	firstDates := collectStartAts(first)
	for i, startAt := range collectStartAts(second) {
		assert.NotEqual(t, firstDates[i], startAt, "stale timestamp survived rescheduling")
	}
}

func TestScheduleProgram_PreservesOrderAndContent(t *testing.T) {
	program := testProgram(2, 3)

	scheduled, _, err := ScheduleProgram(program, mustDate(t, "2025-01-05"), nil)
	require.NoError(t, err)

	require.Len(t, scheduled.Weeks, len(program.Weeks))
	for w, week := range program.Weeks {
		require.Len(t, scheduled.Weeks[w].Sessions, len(week.Sessions))
		for s, session := range week.Sessions {
			got := scheduled.Weeks[w].Sessions[s]
			assert.Equal(t, session.ID, got.ID)
			assert.Equal(t, session.Exercises, got.Exercises)
		}
	}
}

func TestScheduleProgram_DoesNotMutateInput(t *testing.T) {
	program := testProgram(2)

	_, _, err := ScheduleProgram(program, mustDate(t, "2025-01-05"), nil)
	require.NoError(t, err)

	for _, startAt := range collectStartAts(program) {
		assert.Empty(t, startAt, "input program was mutated")
	}
	assert.Empty(t, program.StartDate)
}

func TestScheduleProgram_NoTwoSessionsCollide(t *testing.T) {
	// One weekday for four sessions per week: heavy overflow, still no two
	// sessions may share a timestamp.
	program := testProgram(4, 4, 4)
	prefs := &domain.SchedulingPreferences{DaysOfWeek: []int{1}}

	scheduled, _, err := ScheduleProgram(program, mustDate(t, "2025-01-05"), prefs)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, startAt := range collectStartAts(scheduled) {
		assert.False(t, seen[startAt], "duplicate start_at %s", startAt)
		seen[startAt] = true
	}
}

func TestScheduleProgram_WeekSpillPushesNextWeekForward(t *testing.T) {
	// Week 1 has nine sessions and spills past its 7-day window. Week 2 still
	// anchors seven days after the start date, but its session is pushed to
	// the first free day after the spill rather than onto a date week 1
	// already used.
	program := testProgram(9, 1)

	scheduled, _, err := ScheduleProgram(program, mustDate(t, "2025-01-05"), nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-13T09:00", scheduled.Weeks[0].Sessions[8].StartAt)
	assert.Equal(t, "2025-01-14T09:00", scheduled.Weeks[1].Sessions[0].StartAt)
}

func TestScheduleProgram_NoCollisionsAcrossWeeks(t *testing.T) {
	// In consecutive-day mode an (8,1) program puts week 1's last session on
	// start+7, exactly where week 2 would begin; heavier spills chain further.
	testCases := []struct {
		name            string
		sessionsPerWeek []int
		prefs           *domain.SchedulingPreferences
	}{
		{"single day spill", []int{8, 1}, nil},
		{"chained spill", []int{10, 10}, nil},
		{"mixed weeks", []int{9, 4, 2}, nil},
		{"preferred day spill", []int{10, 3}, &domain.SchedulingPreferences{DaysOfWeek: []int{6}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program := testProgram(tc.sessionsPerWeek...)
			scheduled, _, err := ScheduleProgram(program, mustDate(t, "2025-01-05"), tc.prefs)
			require.NoError(t, err)

			seen := make(map[string]bool)
			for _, startAt := range collectStartAts(scheduled) {
				assert.False(t, seen[startAt], "duplicate start_at %s", startAt)
				seen[startAt] = true
			}
		})
	}
}

func TestScheduleProgram_ZeroSessionWeek(t *testing.T) {
	program := testProgram(2, 0, 2)

	scheduled, _, err := ScheduleProgram(program, mustDate(t, "2025-01-05"), nil)
	require.NoError(t, err)

	assert.Empty(t, scheduled.Weeks[1].Sessions)
	// Week 3 anchors two weeks after the start, unaffected by the empty week.
	assert.Equal(t, "2025-01-19T09:00", scheduled.Weeks[2].Sessions[0].StartAt)
}

func TestScheduleProgram_SessionsPerWeekMismatchIsNotFatal(t *testing.T) {
	program := testProgram(2)
	prefs := &domain.SchedulingPreferences{SessionsPerWeek: 5}

	scheduled, applied, err := ScheduleProgram(program, mustDate(t, "2025-01-05"), prefs)
	require.NoError(t, err)

	// The actual week size wins for placement; the advisory value is echoed.
	assert.Len(t, scheduled.Weeks[0].Sessions, 2)
	assert.Equal(t, 5, applied.SessionsPerWeek)
}

func TestScheduleProgram_Errors(t *testing.T) {
	_, _, err := ScheduleProgram(domain.Program{}, mustDate(t, "2025-01-05"), nil)
	assert.ErrorIs(t, err, ErrMalformedProgram)

	program := testProgram(2)
	_, _, err = ScheduleProgram(program, mustDate(t, "2025-01-05"), &domain.SchedulingPreferences{DaysOfWeek: []int{9}})
	assert.ErrorIs(t, err, ErrInvalidPreferences)
}
