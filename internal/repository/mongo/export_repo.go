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

const exportCollectionName = "calendar_exports"

// mongoCalendarExportRepository implements repository.CalendarExportRepository.
type mongoCalendarExportRepository struct {
	collection *mongo.Collection
}

// NewMongoCalendarExportRepository creates a new calendar export repository.
func NewMongoCalendarExportRepository(db *mongo.Database) repository.CalendarExportRepository {
	return &mongoCalendarExportRepository{
		collection: db.Collection(exportCollectionName),
	}
}

// Create records metadata for one rendered .ics document.
func (r *mongoCalendarExportRepository) Create(ctx context.Context, export *domain.CalendarExport) (primitive.ObjectID, error) {
	if export.UserID == primitive.NilObjectID || export.ProgramID == primitive.NilObjectID || export.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("export requires userId, programId, and objectKey")
	}
	export.ID = primitive.NewObjectID()
	export.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, export)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted export ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves a user's exports, newest first.
func (r *mongoCalendarExportRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.CalendarExport, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exports []domain.CalendarExport
	if err = cursor.All(ctx, &exports); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exports, nil
}

// EnsureCalendarExportIndexes creates necessary indexes. Call during startup.
func EnsureCalendarExportIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
