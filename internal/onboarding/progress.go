// Package onboarding derives onboarding UI state from stored completion
// signals. Everything here is a pure function over in-memory values and must
// never fail: the onboarding screen always has to render something, so
// missing or partial data degrades to "not done" instead of erroring.
package onboarding

import (
	"strings"

	"fitflow/onboarding-app/internal/domain"
)

// Onboarding steps, in flow order.
const (
	StepSurvey     = 1 // fill in the fitness survey
	StepAssessment = 2 // review and approve the AI assessment
	StepProgram    = 3 // review and approve the generated program
	StepSchedule   = 4 // place the program on the calendar
)

// CurrentStep maps the three completion flags to the step the user is on.
// Precedence is strict: an earlier incomplete stage wins even if a later flag
// is (inconsistently) set.
func CurrentStep(surveyCompleted, assessmentApproved, programApproved bool) int {
	switch {
	case !surveyCompleted:
		return StepSurvey
	case !assessmentApproved:
		return StepAssessment
	case !programApproved:
		return StepProgram
	default:
		return StepSchedule
	}
}

// IsProgramScheduled is the strict completion check: a start date is present
// and every session in every week has a start timestamp. Use this to gate UI
// that claims the calendar is fully populated. A program with no sessions at
// all is not "scheduled".
func IsProgramScheduled(program *domain.Program, startDate string) bool {
	if program == nil || strings.TrimSpace(startDate) == "" {
		return false
	}
	total := 0
	for _, week := range program.Weeks {
		for _, session := range week.Sessions {
			if strings.TrimSpace(session.StartAt) == "" {
				return false
			}
			total++
		}
	}
	return total > 0
}

// IsScheduleComplete is the relaxed completion check used to advance
// onboarding: it is satisfied as soon as any session has been placed on the
// calendar, or a scheduling run has been recorded at all. Whitespace-only
// values do not count.
func IsScheduleComplete(program *domain.Program, lastScheduledAt string) bool {
	if program != nil {
		for _, week := range program.Weeks {
			for _, session := range week.Sessions {
				if strings.TrimSpace(session.StartAt) != "" {
					return true
				}
			}
		}
	}
	return strings.TrimSpace(lastScheduledAt) != ""
}
