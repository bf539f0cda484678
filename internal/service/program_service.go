package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitflow/onboarding-app/internal/calendar"
	"fitflow/onboarding-app/internal/domain"
	"fitflow/onboarding-app/internal/onboarding"
	"fitflow/onboarding-app/internal/repository"
	"fitflow/onboarding-app/internal/schedule"
	"fitflow/onboarding-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound     = errors.New("program not found")
	ErrProgramAccessDenied = errors.New("access denied to this program")
	ErrInvalidStartDate    = errors.New("startDate must be a YYYY-MM-DD calendar date")
	ErrProgramNotScheduled = errors.New("program must be fully scheduled before exporting")
)

// ProgramService owns the scheduling and export operations over a user's
// program. The scheduling engine itself is pure; this service resolves the
// start date, authorizes ownership, and persists the outcome.
type ProgramService interface {
	GetProgram(ctx context.Context, userID, programID primitive.ObjectID) (*domain.Program, error)
	GetLatestProgram(ctx context.Context, userID primitive.ObjectID) (*domain.Program, error)

	// Schedule places every session of the program on the calendar and
	// persists the result. startDate and prefs are optional; see the engine
	// for defaulting rules.
	Schedule(ctx context.Context, userID, programID primitive.ObjectID, startDate string, prefs *domain.SchedulingPreferences) (*domain.Program, domain.AppliedPreferences, error)

	// ExportCalendar renders the scheduled program as an .ics document,
	// stores it, and returns a presigned download URL.
	ExportCalendar(ctx context.Context, userID, programID primitive.ObjectID) (string, error)
}

type programService struct {
	programRepo repository.ProgramRepository
	userRepo    repository.UserRepository
	exportRepo  repository.CalendarExportRepository
	fileStorage storage.FileStorage
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramRepository,
	userRepo repository.UserRepository,
	exportRepo repository.CalendarExportRepository,
	fileStorage storage.FileStorage,
) ProgramService {
	return &programService{
		programRepo: programRepo,
		userRepo:    userRepo,
		exportRepo:  exportRepo,
		fileStorage: fileStorage,
	}
}

// getOwnedProgram loads a program and verifies the requester owns it.
func (s *programService) getOwnedProgram(ctx context.Context, userID, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.UserID != userID {
		return nil, ErrProgramAccessDenied
	}
	return program, nil
}

func (s *programService) GetProgram(ctx context.Context, userID, programID primitive.ObjectID) (*domain.Program, error) {
	return s.getOwnedProgram(ctx, userID, programID)
}

func (s *programService) GetLatestProgram(ctx context.Context, userID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// Schedule runs the scheduling engine over the program and persists the
// updated document, the applied preferences, and the run timestamp in one
// authoritative write.
func (s *programService) Schedule(ctx context.Context, userID, programID primitive.ObjectID, startDate string, prefs *domain.SchedulingPreferences) (*domain.Program, domain.AppliedPreferences, error) {
	program, err := s.getOwnedProgram(ctx, userID, programID)
	if err != nil {
		return nil, domain.AppliedPreferences{}, err
	}

	// Start date resolution: request override, then the program's stored
	// start date, then today. Format validation happens here; the engine
	// only ever sees a parsed Date.
	anchor, err := s.resolveStartDate(startDate, program.StartDate)
	if err != nil {
		return nil, domain.AppliedPreferences{}, err
	}

	scheduled, applied, err := schedule.ScheduleProgram(*program, anchor, prefs)
	if err != nil {
		return nil, domain.AppliedPreferences{}, err
	}

	// An advisory sessionsPerWeek that disagrees with the program shape is a
	// configuration inconsistency, not a failure; the actual counts won.
	if prefs != nil && prefs.SessionsPerWeek > 0 {
		for _, week := range scheduled.Weeks {
			if len(week.Sessions) != prefs.SessionsPerWeek {
				logrus.WithFields(logrus.Fields{
					"programId":       programID.Hex(),
					"week":            week.WeekNumber,
					"sessionsPerWeek": prefs.SessionsPerWeek,
					"actual":          len(week.Sessions),
				}).Warn("sessionsPerWeek preference disagrees with program week")
			}
		}
	}

	scheduled.LastScheduledAt = time.Now().UTC().Format(time.RFC3339)
	scheduled.Preferences = applied.ToPreferences()

	if err := s.programRepo.UpdateSchedule(ctx, &scheduled); err != nil {
		return nil, domain.AppliedPreferences{}, err
	}

	// Scheduling is the last onboarding step; stamp completion once the
	// earlier flags are all in place.
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		if user.SurveyCompleted && user.AssessmentApproved && user.ProgramApproved && !user.IsOnboarded() {
			if err := s.userRepo.MarkOnboarded(ctx, userID, time.Now().UTC()); err != nil {
				logrus.WithError(err).WithField("userId", userID.Hex()).Warn("failed to stamp onboarding completion")
			}
		}
	}

	return &scheduled, applied, nil
}

func (s *programService) resolveStartDate(requested, stored string) (schedule.Date, error) {
	if requested != "" {
		d, err := schedule.ParseDate(requested)
		if err != nil {
			return schedule.Date{}, ErrInvalidStartDate
		}
		return d, nil
	}
	if stored != "" {
		d, err := schedule.ParseDate(stored)
		if err == nil {
			return d, nil
		}
		// A stored date we can't parse shouldn't wedge the user; fall through
		// to today and let the new run overwrite it.
		logrus.WithField("startDate", stored).Warn("stored program start date is unparseable, using today")
	}
	return schedule.Today(), nil
}

// ExportCalendar renders the fully scheduled program as iCalendar, uploads it
// to object storage, records the export, and returns a presigned URL.
func (s *programService) ExportCalendar(ctx context.Context, userID, programID primitive.ObjectID) (string, error) {
	program, err := s.getOwnedProgram(ctx, userID, programID)
	if err != nil {
		return "", err
	}

	// Exporting a half-scheduled calendar would silently drop sessions, so
	// the strict completion check gates this.
	if !onboarding.IsProgramScheduled(program, program.StartDate) {
		return "", ErrProgramNotScheduled
	}

	ics := calendar.RenderICS(program)
	objectKey := fmt.Sprintf("exports/%s/%s.ics", userID.Hex(), uuid.NewString())

	if err := s.fileStorage.UploadObject(ctx, objectKey, "text/calendar", []byte(ics)); err != nil {
		return "", err
	}

	if _, err := s.exportRepo.Create(ctx, &domain.CalendarExport{
		UserID:    userID,
		ProgramID: programID,
		ObjectKey: objectKey,
	}); err != nil {
		// The object is already uploaded; losing the metadata row is not
		// worth failing the request over.
		logrus.WithError(err).WithField("key", objectKey).Warn("failed to record calendar export")
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}
