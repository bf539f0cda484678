package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitflow/onboarding-app/internal/domain"
	"fitflow/onboarding-app/internal/repository"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// ExerciseService manages the shared exercise catalog that generated programs
// reference.
type ExerciseService interface {
	CreateDefinition(ctx context.Context, name, description, muscleGroup, difficulty, videoURL string) (*domain.ExerciseDefinition, error)
	GetDefinition(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseDefinition, error)
	ListDefinitions(ctx context.Context) ([]domain.ExerciseDefinition, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseDefinitionRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseDefinitionRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// CreateDefinition adds a new entry to the catalog.
func (s *exerciseService) CreateDefinition(ctx context.Context, name, description, muscleGroup, difficulty, videoURL string) (*domain.ExerciseDefinition, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	def := &domain.ExerciseDefinition{
		Name:        name,
		Description: description,
		MuscleGroup: muscleGroup,
		Difficulty:  difficulty,
		VideoURL:    videoURL,
	}

	id, err := s.exerciseRepo.Create(ctx, def)
	if err != nil {
		return nil, err
	}
	def.ID = id
	return def, nil
}

// GetDefinition retrieves a single catalog entry.
func (s *exerciseService) GetDefinition(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseDefinition, error) {
	def, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return def, nil
}

// ListDefinitions retrieves the whole catalog.
func (s *exerciseService) ListDefinitions(ctx context.Context) ([]domain.ExerciseDefinition, error) {
	return s.exerciseRepo.List(ctx)
}
