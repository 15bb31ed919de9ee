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

const macroLogCollectionName = "macro_logs"

type mongoMacroLogRepository struct {
	collection *mongo.Collection
}

// NewMongoMacroLogRepository creates a new MacroLog repository backed by MongoDB.
func NewMongoMacroLogRepository(db *mongo.Database) repository.MacroLogRepository {
	return &mongoMacroLogRepository{
		collection: db.Collection(macroLogCollectionName),
	}
}

// Create appends a nutrition log entry.
func (r *mongoMacroLogRepository) Create(ctx context.Context, entry *domain.MacroLog) (primitive.ObjectID, error) {
	if entry.MemberID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("macro log requires memberId")
	}

	entry.ID = primitive.NewObjectID()
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted macro log ID")
	}
	return insertedID, nil
}

// ListByMember retrieves a member's nutrition history, newest first.
func (r *mongoMacroLogRepository) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.MacroLog, error) {
	var entries []domain.MacroLog
	filter := bson.M{"memberId": memberID}
	findOptions := options.Find().SetSort(bson.D{{Key: "loggedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, cursor.Err()
}

// EnsureMacroLogIndexes creates necessary indexes for the macro_logs collection.
func EnsureMacroLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "loggedAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
