package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fitflow/onboarding-app/internal/domain"
	"fitflow/onboarding-app/internal/repository"
)

const surveyCollectionName = "surveys"

// mongoSurveyRepository implements repository.SurveyRepository.
type mongoSurveyRepository struct {
	collection *mongo.Collection
}

// NewMongoSurveyRepository creates a new Survey repository.
func NewMongoSurveyRepository(db *mongo.Database) repository.SurveyRepository {
	return &mongoSurveyRepository{
		collection: db.Collection(surveyCollectionName),
	}
}

// Create inserts a new survey response set.
func (r *mongoSurveyRepository) Create(ctx context.Context, survey *domain.Survey) (primitive.ObjectID, error) {
	if survey.UserID == primitive.NilObjectID || len(survey.Answers) == 0 {
		return primitive.NilObjectID, errors.New("survey requires userId and at least one answer")
	}
	survey.ID = primitive.NewObjectID()
	if survey.CompletedAt.IsZero() {
		survey.CompletedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, survey)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted survey ID")
	}
	return insertedID, nil
}

// GetLatestByUserID retrieves the user's most recent survey. A user may retake
// the survey; only the newest set of answers feeds assessment generation.
func (r *mongoSurveyRepository) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Survey, error) {
	var survey domain.Survey
	findOptions := options.FindOne().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, findOptions).Decode(&survey)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// EnsureSurveyIndexes creates necessary indexes. Call during startup.
func EnsureSurveyIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
