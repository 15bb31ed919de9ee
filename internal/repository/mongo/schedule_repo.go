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

const scheduleCollectionName = "schedules"

// mongoScheduleRepository implements repository.ScheduleRepository
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new Schedule repository backed by MongoDB.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// Create inserts a new availability slot.
func (r *mongoScheduleRepository) Create(ctx context.Context, slot *domain.ScheduleSlot) (primitive.ObjectID, error) {
	if slot.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("schedule slot requires trainerId")
	}

	slot.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	if slot.Status == "" {
		slot.Status = domain.SlotAvailable
	}

	result, err := r.collection.InsertOne(ctx, slot)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted slot ID")
	}
	return insertedID, nil
}

// GetByID retrieves a slot by its ID.
func (r *mongoScheduleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduleSlot, error) {
	var slot domain.ScheduleSlot
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// ListByTrainer retrieves all of a trainer's slots, earliest first.
func (r *mongoScheduleRepository) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	return r.list(ctx, bson.M{"trainerId": trainerID})
}

// ListAvailableByTrainer retrieves only slots still open for booking.
func (r *mongoScheduleRepository) ListAvailableByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	return r.list(ctx, bson.M{"trainerId": trainerID, "status": domain.SlotAvailable})
}

// ListBookedByMember retrieves the sessions a member has booked.
func (r *mongoScheduleRepository) ListBookedByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	return r.list(ctx, bson.M{"bookedBy": memberID, "status": domain.SlotBooked})
}

func (r *mongoScheduleRepository) list(ctx context.Context, filter bson.M) ([]domain.ScheduleSlot, error) {
	var slots []domain.ScheduleSlot
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, cursor.Err()
}

// BookIfAvailable performs the atomic compare-and-set that prevents double
// booking: the filter matches only while status is still "available", so two
// concurrent calls can never both succeed. The loser sees ErrNotFound and the
// caller decides between not-found and already-booked by re-reading the slot.
func (r *mongoScheduleRepository) BookIfAvailable(ctx context.Context, id, memberID primitive.ObjectID) (*domain.ScheduleSlot, error) {
	filter := bson.M{"_id": id, "status": domain.SlotAvailable}
	update := bson.M{
		"$set": bson.M{
			"status":    domain.SlotBooked,
			"bookedBy":  memberID,
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot domain.ScheduleSlot
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// DeleteIfAvailable removes a slot only while it is unbooked. A slot that was
// booked between the caller's ownership check and this delete survives.
func (r *mongoScheduleRepository) DeleteIfAvailable(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "status": domain.SlotAvailable}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureScheduleIndexes creates necessary indexes for the schedules collection.
func EnsureScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "bookedBy", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
