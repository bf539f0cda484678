package generation

import (
	"context"
	"errors"

	"fitflow/onboarding-app/internal/domain"
)

// Errors returned by generators. The upstream model service is an external
// collaborator; callers map these to gateway-style failures.
var (
	ErrGenerationFailed    = errors.New("generation request failed")
	ErrMalformedGeneration = errors.New("generation service returned a malformed document")
)

// Generator produces AI-generated onboarding documents from user input. It
// does not persist anything; callers own storage of the results.
type Generator interface {
	// GenerateAssessment turns survey answers into a fitness assessment.
	GenerateAssessment(ctx context.Context, survey *domain.Survey) (*domain.Assessment, error)

	// GenerateProgram turns an approved assessment (plus the survey it came
	// from) into a date-free, multi-week exercise program. Sessions come back
	// with fresh IDs and no start_at values; scheduling happens later.
	GenerateProgram(ctx context.Context, assessment *domain.Assessment, survey *domain.Survey) (*domain.Program, error)
}
