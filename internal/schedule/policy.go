package schedule

import (
	"fmt"
	"sort"
	"time"

	"fitflow/onboarding-app/internal/domain"
)

// slot is one planned session placement: a day offset from the week's anchor
// date plus the time of day.
type slot struct {
	dayOffset int
	timeOfDay string
}

// ResolvePreferences validates user preferences and fills in defaults,
// producing the fully populated preferences a scheduling run will use.
// A nil prefs value is valid and yields pure defaults. SessionsPerWeek is left
// at 0 here when the user did not set it; the scheduler derives it from the
// program, since the policy has no view of the program shape.
func ResolvePreferences(prefs *domain.SchedulingPreferences) (domain.AppliedPreferences, error) {
	// DaysOfWeek starts as an empty (not nil) slice so the applied record is
	// always fully populated when serialized; empty means consecutive days.
	applied := domain.AppliedPreferences{
		DaysOfWeek: []int{},
		TimeOfDay:  domain.DefaultTimeOfDay,
	}
	if prefs == nil {
		return applied, nil
	}

	if len(prefs.DaysOfWeek) > 0 {
		seen := make(map[int]bool, len(prefs.DaysOfWeek))
		for _, day := range prefs.DaysOfWeek {
			if day < 0 || day > 6 {
				return domain.AppliedPreferences{}, fmt.Errorf("%w: weekday index %d out of range 0..6", ErrInvalidPreferences, day)
			}
			seen[day] = true
		}
		days := make([]int, 0, len(seen))
		for day := range seen {
			days = append(days, day)
		}
		sort.Ints(days)
		applied.DaysOfWeek = days
	}

	if prefs.TimeOfDay != "" {
		if _, err := time.Parse("15:04", prefs.TimeOfDay); err != nil {
			return domain.AppliedPreferences{}, fmt.Errorf("%w: timeOfDay %q is not HH:mm", ErrInvalidPreferences, prefs.TimeOfDay)
		}
		applied.TimeOfDay = prefs.TimeOfDay
	}

	if prefs.SessionsPerWeek < 0 {
		return domain.AppliedPreferences{}, fmt.Errorf("%w: sessionsPerWeek must not be negative", ErrInvalidPreferences)
	}
	applied.SessionsPerWeek = prefs.SessionsPerWeek

	return applied, nil
}

// weekSlots plans placements for one week: given the resolved preferences,
// the weekday of the week's anchor date, and the number of sessions in the
// week, it returns one slot per session, in session order.
//
// With a preferred weekday set, each session takes the next preferred weekday
// within the week window; sessions beyond the available weekdays are pushed
// to the day immediately after the last used one, never back onto a day
// already assigned this week. Without a weekday set, sessions land on
// consecutive days starting at the anchor.
//
// Day offsets are strictly increasing and may exceed 6: a week with more
// sessions than available days simply spills into the next week's date
// window. The next week's anchor is unaffected; the scheduler pushes a later
// week's sessions past any dates consumed by the spill.
func weekSlots(applied domain.AppliedPreferences, anchorWeekday int, sessionCount int) []slot {
	if sessionCount <= 0 {
		return nil
	}

	slots := make([]slot, 0, sessionCount)

	if len(applied.DaysOfWeek) == 0 {
		for i := 0; i < sessionCount; i++ {
			slots = append(slots, slot{dayOffset: i, timeOfDay: applied.TimeOfDay})
		}
		return slots
	}

	// Translate preferred weekdays to offsets from the anchor, then order by
	// offset so sessions progress forward through the week regardless of
	// which weekday the anchor falls on.
	offsets := make([]int, 0, len(applied.DaysOfWeek))
	for _, day := range applied.DaysOfWeek {
		offsets = append(offsets, (day-anchorWeekday+7)%7)
	}
	sort.Ints(offsets)

	lastOffset := -1
	for i := 0; i < sessionCount; i++ {
		var offset int
		if i < len(offsets) {
			offset = offsets[i]
		} else {
			// Overflow: continue on the day right after the last used one.
			offset = lastOffset + 1
		}
		slots = append(slots, slot{dayOffset: offset, timeOfDay: applied.TimeOfDay})
		lastOffset = offset
	}
	return slots
}
