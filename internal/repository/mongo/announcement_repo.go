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

const announcementCollectionName = "announcements"

// mongoAnnouncementRepository implements repository.AnnouncementRepository
type mongoAnnouncementRepository struct {
	collection *mongo.Collection
}

// NewMongoAnnouncementRepository creates a new Announcement repository backed by MongoDB.
func NewMongoAnnouncementRepository(db *mongo.Database) repository.AnnouncementRepository {
	return &mongoAnnouncementRepository{
		collection: db.Collection(announcementCollectionName),
	}
}

// Create appends a new announcement.
func (r *mongoAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) (primitive.ObjectID, error) {
	if a.GymID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("announcement requires gymId")
	}

	a.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted announcement ID")
	}
	return insertedID, nil
}

// GetByID retrieves an announcement by its ID.
func (r *mongoAnnouncementRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Announcement, error) {
	var a domain.Announcement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByGym retrieves a gym's announcement history, newest first.
func (r *mongoAnnouncementRepository) ListByGym(ctx context.Context, gymID primitive.ObjectID) ([]domain.Announcement, error) {
	var announcements []domain.Announcement
	filter := bson.M{"gymId": gymID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, cursor.Err()
}

// UpdateMessage replaces the message text and returns the updated document.
func (r *mongoAnnouncementRepository) UpdateMessage(ctx context.Context, id primitive.ObjectID, message string) (*domain.Announcement, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{"message": message, "updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a domain.Announcement
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes an announcement permanently.
func (r *mongoAnnouncementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByGym removes a gym's entire announcement history (deletion cascade).
func (r *mongoAnnouncementRepository) DeleteByGym(ctx context.Context, gymID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"gymId": gymID})
	return err
}

// EnsureAnnouncementIndexes creates necessary indexes for the announcements collection.
func EnsureAnnouncementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "gymId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
