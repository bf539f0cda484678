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

const exerciseDefinitionCollectionName = "exercise_definitions"

// mongoExerciseDefinitionRepository implements repository.ExerciseDefinitionRepository.
type mongoExerciseDefinitionRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseDefinitionRepository creates a new exercise catalog repository.
func NewMongoExerciseDefinitionRepository(db *mongo.Database) repository.ExerciseDefinitionRepository {
	return &mongoExerciseDefinitionRepository{
		collection: db.Collection(exerciseDefinitionCollectionName),
	}
}

// Create inserts a new catalog entry.
func (r *mongoExerciseDefinitionRepository) Create(ctx context.Context, def *domain.ExerciseDefinition) (primitive.ObjectID, error) {
	if def.Name == "" {
		return primitive.NilObjectID, errors.New("exercise definition requires a name")
	}
	def.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	def.CreatedAt = now
	def.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, def)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, errors.New("exercise with this name already exists")
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted exercise ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single catalog entry.
func (r *mongoExerciseDefinitionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseDefinition, error) {
	var def domain.ExerciseDefinition
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&def)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &def, nil
}

// List retrieves the whole catalog, name-sorted.
func (r *mongoExerciseDefinitionRepository) List(ctx context.Context) ([]domain.ExerciseDefinition, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var defs []domain.ExerciseDefinition
	if err = cursor.All(ctx, &defs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Empty slice if the catalog is empty (not an error).
	return defs, nil
}

// EnsureExerciseDefinitionIndexes creates necessary indexes. Call during startup.
func EnsureExerciseDefinitionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "muscleGroup", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
