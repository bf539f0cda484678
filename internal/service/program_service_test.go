package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitflow/onboarding-app/internal/domain"
	"fitflow/onboarding-app/internal/schedule"
)

type programFixture struct {
	users    *fakeUserRepo
	programs *fakeProgramRepo
	exports  *fakeExportRepo
	storage  *fakeStorage
	svc      ProgramService
	userID   primitive.ObjectID
}

func newProgramFixture(t *testing.T) *programFixture {
	t.Helper()
	f := &programFixture{
		users:    newFakeUserRepo(),
		programs: newFakeProgramRepo(),
		exports:  &fakeExportRepo{},
		storage:  newFakeStorage(),
	}
	f.svc = NewProgramService(f.programs, f.users, f.exports, f.storage)
	f.userID = f.users.add(&domain.User{Email: "a@b.c"})
	return f
}

func (f *programFixture) createProgram(t *testing.T, sessionsPerWeek ...int) primitive.ObjectID {
	t.Helper()
	var weeks []domain.Week
	for i, n := range sessionsPerWeek {
		week := domain.Week{WeekNumber: i + 1}
		for j := 0; j < n; j++ {
			week.Sessions = append(week.Sessions, domain.Session{
				ID:   primitive.NewObjectID().Hex(),
				Name: "Session",
			})
		}
		weeks = append(weeks, week)
	}
	id, err := f.programs.Create(context.Background(), &domain.Program{
		UserID: f.userID,
		Title:  "Block",
		Weeks:  weeks,
	})
	require.NoError(t, err)
	return id
}

func TestScheduleHappyPath(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 2, 2)

	prefs := &domain.SchedulingPreferences{
		DaysOfWeek: []int{1, 3},
		TimeOfDay:  "07:30",
	}
	program, applied, err := f.svc.Schedule(context.Background(), f.userID, programID, "2025-01-05", prefs)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-05", program.StartDate)
	assert.Equal(t, []int{1, 3}, applied.DaysOfWeek)
	assert.Equal(t, "07:30", applied.TimeOfDay)
	assert.Equal(t, "2025-01-06T07:30", program.Weeks[0].Sessions[0].StartAt)
	assert.Equal(t, "2025-01-08T07:30", program.Weeks[0].Sessions[1].StartAt)
	assert.Equal(t, "2025-01-13T07:30", program.Weeks[1].Sessions[0].StartAt)

	// LastScheduledAt is stamped as RFC 3339 at scheduling time.
	stamped, err := time.Parse(time.RFC3339, program.LastScheduledAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), stamped, time.Minute)

	stored := f.programs.programs[programID]
	assert.Equal(t, domain.ProgramStatusScheduled, stored.Status)
	assert.Equal(t, "2025-01-05", stored.StartDate)
	require.NotNil(t, stored.Preferences)
	assert.Equal(t, []int{1, 3}, stored.Preferences.DaysOfWeek)
}

func TestScheduleInvalidStartDate(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 2)

	_, _, err := f.svc.Schedule(context.Background(), f.userID, programID, "05/01/2025", nil)
	assert.ErrorIs(t, err, ErrInvalidStartDate)
}

func TestScheduleInvalidPreferences(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 2)

	_, _, err := f.svc.Schedule(context.Background(), f.userID, programID, "2025-01-05", &domain.SchedulingPreferences{
		DaysOfWeek: []int{9},
	})
	assert.ErrorIs(t, err, schedule.ErrInvalidPreferences)
}

func TestScheduleMalformedProgram(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t) // no weeks

	_, _, err := f.svc.Schedule(context.Background(), f.userID, programID, "2025-01-05", nil)
	assert.ErrorIs(t, err, schedule.ErrMalformedProgram)
}

func TestScheduleOwnership(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 2)

	_, _, err := f.svc.Schedule(context.Background(), primitive.NewObjectID(), programID, "2025-01-05", nil)
	assert.ErrorIs(t, err, ErrProgramAccessDenied)

	_, _, err = f.svc.Schedule(context.Background(), f.userID, primitive.NewObjectID(), "2025-01-05", nil)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestScheduleReusesStoredStartDate(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 1)
	f.programs.programs[programID].StartDate = "2025-02-10"

	program, _, err := f.svc.Schedule(context.Background(), f.userID, programID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-10", program.StartDate)
	assert.Equal(t, "2025-02-10T09:00", program.Weeks[0].Sessions[0].StartAt)
}

func TestScheduleStampsOnboardingCompletion(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 1)

	user := f.users.users[f.userID]
	user.SurveyCompleted = true
	user.AssessmentApproved = true
	user.ProgramApproved = true

	_, _, err := f.svc.Schedule(context.Background(), f.userID, programID, "2025-01-05", nil)
	require.NoError(t, err)
	assert.True(t, user.IsOnboarded())
}

func TestScheduleDoesNotStampIncompleteOnboarding(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 1)

	user := f.users.users[f.userID]
	user.SurveyCompleted = true
	// Assessment never approved.

	_, _, err := f.svc.Schedule(context.Background(), f.userID, programID, "2025-01-05", nil)
	require.NoError(t, err)
	assert.False(t, user.IsOnboarded())
}

func TestExportCalendarRequiresFullSchedule(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 2)

	_, err := f.svc.ExportCalendar(context.Background(), f.userID, programID)
	assert.ErrorIs(t, err, ErrProgramNotScheduled)
}

func TestExportCalendar(t *testing.T) {
	f := newProgramFixture(t)
	programID := f.createProgram(t, 2)

	_, _, err := f.svc.Schedule(context.Background(), f.userID, programID, "2025-01-05", nil)
	require.NoError(t, err)

	url, err := f.svc.ExportCalendar(context.Background(), f.userID, programID)
	require.NoError(t, err)
	assert.Contains(t, url, "exports/"+f.userID.Hex()+"/")
	assert.True(t, strings.HasSuffix(url, ".ics"))

	require.Len(t, f.storage.uploaded, 1)
	for key, body := range f.storage.uploaded {
		assert.Contains(t, url, key)
		assert.Contains(t, string(body), "BEGIN:VCALENDAR")
		assert.Contains(t, string(body), "DTSTART:20250105T090000")
	}

	require.Len(t, f.exports.exports, 1)
	assert.Equal(t, programID, f.exports.exports[0].ProgramID)
}
