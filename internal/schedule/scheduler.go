// Package schedule converts an abstract, date-free exercise program into a
// concrete calendar schedule. It is pure: it performs no I/O, holds no state,
// and may be called concurrently.
package schedule

import (
	"errors"

	"fitflow/onboarding-app/internal/domain"
)

// Engine error taxonomy. Calendar edge cases (zero-session weeks, weeks
// spilling past their 7-day window) are normalized by the policy and are
// never errors.
var (
	// ErrMalformedProgram means the program value is structurally unusable
	// for scheduling (it has no weeks at all).
	ErrMalformedProgram = errors.New("malformed program: no weeks to schedule")

	// ErrInvalidPreferences means preferences were supplied but contain
	// out-of-range or unparseable values.
	ErrInvalidPreferences = errors.New("invalid scheduling preferences")
)

// ScheduleProgram assigns a concrete start timestamp to every session of the
// program, anchored at startDate, and returns the updated program together
// with the fully resolved preferences that were applied.
//
// Week i (0-based) is anchored at startDate + 7*i days; its sessions are
// placed by the scheduling policy relative to that anchor. Session order is
// never changed; only start_at is written. The call is idempotent: the same
// program, start date and preferences always produce the same timestamps,
// and a re-run fully overwrites any previously assigned timestamps.
//
// No two sessions of the program ever share a start_at. When a week has more
// sessions than its 7-day window and spills onto dates a later week's slots
// would use, those later sessions are pushed forward day by day past the
// spill. Anchors themselves stay fixed at startDate + 7*i.
//
// The input program is not mutated; a copy with rewritten weeks is returned.
func ScheduleProgram(program domain.Program, startDate Date, prefs *domain.SchedulingPreferences) (domain.Program, domain.AppliedPreferences, error) {
	if len(program.Weeks) == 0 {
		return domain.Program{}, domain.AppliedPreferences{}, ErrMalformedProgram
	}

	applied, err := ResolvePreferences(prefs)
	if err != nil {
		return domain.Program{}, domain.AppliedPreferences{}, err
	}
	if applied.SessionsPerWeek == 0 {
		applied.SessionsPerWeek = maxSessionsPerWeek(program)
	}

	anchorWeekday := startDate.Weekday()

	scheduled := program
	scheduled.Weeks = make([]domain.Week, len(program.Weeks))
	lastOffset := -1 // day offset from startDate of the last assigned session
	for i, week := range program.Weeks {
		slots := weekSlots(applied, anchorWeekday, len(week.Sessions))

		newWeek := week
		newWeek.Sessions = make([]domain.Session, len(week.Sessions))
		for j, session := range week.Sessions {
			offset := 7*i + slots[j].dayOffset
			if offset <= lastOffset {
				// A prior week spilled onto this date; push forward.
				offset = lastOffset + 1
			}
			newSession := session
			newSession.StartAt = startDate.AddDays(offset).AtTime(slots[j].timeOfDay)
			newWeek.Sessions[j] = newSession
			lastOffset = offset
		}
		scheduled.Weeks[i] = newWeek
	}

	scheduled.StartDate = startDate.String()
	return scheduled, applied, nil
}

// maxSessionsPerWeek is the default for the advisory sessionsPerWeek value
// when the user did not provide one: the busiest week of the program.
func maxSessionsPerWeek(program domain.Program) int {
	max := 0
	for _, week := range program.Weeks {
		if len(week.Sessions) > max {
			max = len(week.Sessions)
		}
	}
	return max
}
