package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitflow/onboarding-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	// Onboarding flag transitions. Each sets exactly one flag and bumps
	// updatedAt; the flags only ever move forward.
	MarkSurveyCompleted(ctx context.Context, userID primitive.ObjectID) error
	MarkAssessmentApproved(ctx context.Context, userID primitive.ObjectID) error
	MarkProgramApproved(ctx context.Context, userID primitive.ObjectID) error
	MarkOnboarded(ctx context.Context, userID primitive.ObjectID, at time.Time) error
}

// SurveyRepository defines the interface for interacting with survey data.
type SurveyRepository interface {
	Create(ctx context.Context, survey *domain.Survey) (primitive.ObjectID, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Survey, error)
}

// AssessmentRepository defines the interface for interacting with assessments.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *domain.Assessment) (primitive.ObjectID, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Assessment, error)
	SetApproved(ctx context.Context, id, userID primitive.ObjectID) error
}

// ProgramRepository defines the interface for interacting with program documents.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Program, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.ProgramStatus) error

	// UpdateSchedule persists the outcome of one scheduling run: the rewritten
	// weeks, the anchor start date, the applied preferences, and the run
	// timestamp. This is the single authoritative write per scheduling
	// request, so two racing requests cannot interleave partial updates.
	UpdateSchedule(ctx context.Context, program *domain.Program) error
}

// ExerciseDefinitionRepository defines the interface for the exercise catalog.
type ExerciseDefinitionRepository interface {
	Create(ctx context.Context, def *domain.ExerciseDefinition) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseDefinition, error)
	List(ctx context.Context) ([]domain.ExerciseDefinition, error)
}

// CalendarExportRepository defines the interface for calendar export metadata.
type CalendarExportRepository interface {
	Create(ctx context.Context, export *domain.CalendarExport) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.CalendarExport, error)
}
