package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const eventLogCollectionName = "event_logs"

type mongoEventLogRepository struct {
	collection *mongo.Collection
}

// NewMongoEventLogRepository creates a new EventLog repository backed by MongoDB.
func NewMongoEventLogRepository(db *mongo.Database) repository.EventLogRepository {
	return &mongoEventLogRepository{
		collection: db.Collection(eventLogCollectionName),
	}
}

// Create appends an analytics event.
func (r *mongoEventLogRepository) Create(ctx context.Context, event *domain.EventLog) (primitive.ObjectID, error) {
	if event.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("event log requires userId")
	}

	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted event log ID")
	}
	return insertedID, nil
}

// List retrieves the most recent events, newest first.
func (r *mongoEventLogRepository) List(ctx context.Context, limit int64) ([]domain.EventLog, error) {
	var events []domain.EventLog
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, cursor.Err()
}

// EnsureEventLogIndexes creates necessary indexes for the event_logs collection.
func EnsureEventLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
