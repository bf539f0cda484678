package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitflow/onboarding-app/internal/domain"
	"fitflow/onboarding-app/internal/generation"
	"fitflow/onboarding-app/internal/onboarding"
	"fitflow/onboarding-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrSurveyRequired        = errors.New("survey must be completed first")
	ErrAssessmentRequired    = errors.New("no assessment found; generate one first")
	ErrAssessmentNotApproved = errors.New("assessment must be approved first")
	ErrProgramRequired       = errors.New("no program found; generate one first")
	ErrGenerationUnavailable = errors.New("generation service unavailable")
)

// OnboardingStatus is the derived onboarding UI state for one user. It is
// computed on demand from stored records and never persisted as a unit.
type OnboardingStatus struct {
	CurrentStep        int  `json:"currentStep"`
	SurveyCompleted    bool `json:"surveyCompleted"`
	AssessmentApproved bool `json:"assessmentApproved"`
	ProgramApproved    bool `json:"programApproved"`
	// ScheduleComplete is the relaxed check gating onboarding advancement.
	ScheduleComplete bool `json:"scheduleComplete"`
	// ProgramScheduled is the strict check: every session has a date.
	ProgramScheduled bool `json:"programScheduled"`
}

// OnboardingService walks a user through survey, assessment, and program
// generation, and reports where in the flow they currently are.
type OnboardingService interface {
	SubmitSurvey(ctx context.Context, userID primitive.ObjectID, answers []domain.SurveyAnswer) (*domain.Survey, error)
	GenerateAssessment(ctx context.Context, userID primitive.ObjectID) (*domain.Assessment, error)
	GetAssessment(ctx context.Context, userID primitive.ObjectID) (*domain.Assessment, error)
	ApproveAssessment(ctx context.Context, userID primitive.ObjectID) error
	GenerateProgram(ctx context.Context, userID primitive.ObjectID) (*domain.Program, error)
	ApproveProgram(ctx context.Context, userID primitive.ObjectID) error
	Status(ctx context.Context, userID primitive.ObjectID) (*OnboardingStatus, error)
}

type onboardingService struct {
	userRepo       repository.UserRepository
	surveyRepo     repository.SurveyRepository
	assessmentRepo repository.AssessmentRepository
	programRepo    repository.ProgramRepository
	generator      generation.Generator
}

// NewOnboardingService creates a new instance of onboardingService.
func NewOnboardingService(
	userRepo repository.UserRepository,
	surveyRepo repository.SurveyRepository,
	assessmentRepo repository.AssessmentRepository,
	programRepo repository.ProgramRepository,
	generator generation.Generator,
) OnboardingService {
	return &onboardingService{
		userRepo:       userRepo,
		surveyRepo:     surveyRepo,
		assessmentRepo: assessmentRepo,
		programRepo:    programRepo,
		generator:      generator,
	}
}

// SubmitSurvey stores the user's questionnaire answers and flips the survey
// completion flag. Retaking the survey just inserts a newer answer set.
func (s *onboardingService) SubmitSurvey(ctx context.Context, userID primitive.ObjectID, answers []domain.SurveyAnswer) (*domain.Survey, error) {
	if userID == primitive.NilObjectID || len(answers) == 0 {
		return nil, errors.New("user ID and at least one answer are required")
	}

	survey := &domain.Survey{
		UserID:  userID,
		Answers: answers,
	}
	surveyID, err := s.surveyRepo.Create(ctx, survey)
	if err != nil {
		return nil, err
	}
	survey.ID = surveyID

	if err := s.userRepo.MarkSurveyCompleted(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return survey, nil
}

// GenerateAssessment runs the AI assessment over the user's latest survey and
// stores the result. Regeneration is allowed; the newest assessment wins.
func (s *onboardingService) GenerateAssessment(ctx context.Context, userID primitive.ObjectID) (*domain.Assessment, error) {
	survey, err := s.surveyRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSurveyRequired
		}
		return nil, err
	}

	assessment, err := s.generator.GenerateAssessment(ctx, survey)
	if err != nil {
		logrus.WithError(err).WithField("userId", userID.Hex()).Error("assessment generation failed")
		return nil, ErrGenerationUnavailable
	}

	assessmentID, err := s.assessmentRepo.Create(ctx, assessment)
	if err != nil {
		return nil, err
	}
	assessment.ID = assessmentID
	return assessment, nil
}

// GetAssessment returns the user's current (latest) assessment.
func (s *onboardingService) GetAssessment(ctx context.Context, userID primitive.ObjectID) (*domain.Assessment, error) {
	assessment, err := s.assessmentRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssessmentRequired
		}
		return nil, err
	}
	return assessment, nil
}

// ApproveAssessment marks the latest assessment approved and advances the
// onboarding flag.
func (s *onboardingService) ApproveAssessment(ctx context.Context, userID primitive.ObjectID) error {
	assessment, err := s.assessmentRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssessmentRequired
		}
		return err
	}

	if err := s.assessmentRepo.SetApproved(ctx, assessment.ID, userID); err != nil {
		return err
	}
	return s.userRepo.MarkAssessmentApproved(ctx, userID)
}

// GenerateProgram runs program generation from the approved assessment and
// stores the resulting date-free program as a draft.
func (s *onboardingService) GenerateProgram(ctx context.Context, userID primitive.ObjectID) (*domain.Program, error) {
	assessment, err := s.assessmentRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssessmentRequired
		}
		return nil, err
	}
	if !assessment.Approved {
		return nil, ErrAssessmentNotApproved
	}

	// The survey is optional extra context for generation here; assessment
	// content is the primary input.
	survey, err := s.surveyRepo.GetLatestByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	program, err := s.generator.GenerateProgram(ctx, assessment, survey)
	if err != nil {
		logrus.WithError(err).WithField("userId", userID.Hex()).Error("program generation failed")
		return nil, ErrGenerationUnavailable
	}

	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	program.ID = programID
	return program, nil
}

// ApproveProgram marks the latest program approved and advances the
// onboarding flag. Scheduling is a separate, later step.
func (s *onboardingService) ApproveProgram(ctx context.Context, userID primitive.ObjectID) error {
	program, err := s.programRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramRequired
		}
		return err
	}

	if err := s.programRepo.SetStatus(ctx, program.ID, domain.ProgramStatusApproved); err != nil {
		return err
	}
	return s.userRepo.MarkProgramApproved(ctx, userID)
}

// Status derives the user's current onboarding state from stored records.
func (s *onboardingService) Status(ctx context.Context, userID primitive.ObjectID) (*OnboardingStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// An absent program just means nothing is scheduled yet; the resolver
	// treats it as such rather than erroring.
	var program *domain.Program
	var startDate, lastScheduledAt string
	if p, err := s.programRepo.GetLatestByUserID(ctx, userID); err == nil {
		program = p
		startDate = p.StartDate
		lastScheduledAt = p.LastScheduledAt
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &OnboardingStatus{
		CurrentStep:        onboarding.CurrentStep(user.SurveyCompleted, user.AssessmentApproved, user.ProgramApproved),
		SurveyCompleted:    user.SurveyCompleted,
		AssessmentApproved: user.AssessmentApproved,
		ProgramApproved:    user.ProgramApproved,
		ScheduleComplete:   onboarding.IsScheduleComplete(program, lastScheduledAt),
		ProgramScheduled:   onboarding.IsProgramScheduled(program, startDate),
	}, nil
}
