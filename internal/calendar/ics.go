// Package calendar renders scheduled programs as iCalendar (RFC 5545)
// documents so users can import their sessions into any calendar app.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"fitflow/onboarding-app/internal/domain"
)

const (
	prodID = "-//fitflow//onboarding-app//EN"

	// Sessions have a start but no prescribed length; an hour is the slot we
	// block out on the user's calendar.
	defaultSessionDuration = time.Hour

	startAtLayout = "2006-01-02T15:04"
	icsTimeLayout = "20060102T150400"
)

// RenderICS renders every scheduled session of the program as a VEVENT.
// Sessions without a start_at are skipped rather than treated as an error;
// callers that need a fully scheduled program gate on that before exporting.
// Timestamps are written as floating local times, matching the engine's
// calendar-date (not absolute-instant) semantics.
func RenderICS(program *domain.Program) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:" + prodID + "\r\n")

	for _, week := range program.Weeks {
		for _, session := range week.Sessions {
			start, err := time.Parse(startAtLayout, session.StartAt)
			if err != nil {
				continue
			}
			end := start.Add(defaultSessionDuration)

			summary := session.Name
			if summary == "" {
				summary = fmt.Sprintf("Workout (week %d)", week.WeekNumber)
			}

			b.WriteString("BEGIN:VEVENT\r\n")
			b.WriteString("UID:" + escapeText(session.ID) + "\r\n")
			b.WriteString("DTSTART:" + start.Format(icsTimeLayout) + "\r\n")
			b.WriteString("DTEND:" + end.Format(icsTimeLayout) + "\r\n")
			b.WriteString("SUMMARY:" + escapeText(summary) + "\r\n")
			if session.Goal != "" {
				b.WriteString("DESCRIPTION:" + escapeText(session.Goal) + "\r\n")
			}
			b.WriteString("END:VEVENT\r\n")
		}
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

// escapeText escapes the characters RFC 5545 requires escaping in text values.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
