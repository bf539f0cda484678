package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fitflow/onboarding-app/internal/domain"
)

func TestCurrentStep_Precedence(t *testing.T) {
	testCases := []struct {
		name                                                string
		surveyCompleted, assessmentApproved, programApproved bool
		expected                                            int
	}{
		{"nothing done", false, false, false, StepSurvey},
		{"survey wins even with later flags set", false, true, true, StepSurvey},
		{"assessment pending", true, false, false, StepAssessment},
		{"assessment wins over program flag", true, false, true, StepAssessment},
		{"program pending", true, true, false, StepProgram},
		{"everything approved", true, true, true, StepSchedule},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CurrentStep(tc.surveyCompleted, tc.assessmentApproved, tc.programApproved)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func programWith(startAts ...string) *domain.Program {
	week := domain.Week{WeekNumber: 1}
	for i, startAt := range startAts {
		week.Sessions = append(week.Sessions, domain.Session{
			ID:      string(rune('a' + i)),
			StartAt: startAt,
		})
	}
	return &domain.Program{Weeks: []domain.Week{week}}
}

func TestIsProgramScheduled(t *testing.T) {
	fully := programWith("2025-01-01T10:00", "2025-01-03T10:00")
	assert.True(t, IsProgramScheduled(fully, "2025-01-01"))

	partial := programWith("2025-01-01T10:00", "")
	assert.False(t, IsProgramScheduled(partial, "2025-01-01"))

	// Missing start date fails even with every session dated.
	assert.False(t, IsProgramScheduled(fully, ""))
	assert.False(t, IsProgramScheduled(fully, "   "))

	// Degenerate shapes degrade to false, never panic.
	assert.False(t, IsProgramScheduled(nil, "2025-01-01"))
	assert.False(t, IsProgramScheduled(&domain.Program{}, "2025-01-01"))
	assert.False(t, IsProgramScheduled(programWith(), "2025-01-01"), "no sessions means nothing is scheduled")
}

func TestIsScheduleComplete_Relaxed(t *testing.T) {
	// One dated session is enough, even with others still empty.
	partial := programWith("2025-01-01T10:00", "")
	assert.True(t, IsScheduleComplete(partial, ""))

	// A recorded scheduling run counts even without dated sessions.
	assert.True(t, IsScheduleComplete(programWith("", ""), "2025-01-01T09:00:00Z"))
	assert.True(t, IsScheduleComplete(nil, "2025-01-01T09:00:00Z"))
}

func TestIsScheduleComplete_WhitespaceAndAbsence(t *testing.T) {
	assert.False(t, IsScheduleComplete(programWith("", "  "), ""))
	assert.False(t, IsScheduleComplete(programWith(), "   "))
	assert.False(t, IsScheduleComplete(nil, ""))
	assert.False(t, IsScheduleComplete(&domain.Program{}, ""))
}

func TestStrictVsRelaxed(t *testing.T) {
	// The relaxed check passes as soon as anything is scheduled; the strict
	// one holds out for a complete calendar.
	partial := programWith("2025-01-01T10:00", "")
	assert.True(t, IsScheduleComplete(partial, ""))
	assert.False(t, IsProgramScheduled(partial, "2025-01-01"))
}
