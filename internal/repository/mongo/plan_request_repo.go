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

const planRequestCollectionName = "plan_requests"

// mongoPlanRequestRepository implements repository.PlanRequestRepository
type mongoPlanRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRequestRepository creates a new PlanRequest repository backed by MongoDB.
func NewMongoPlanRequestRepository(db *mongo.Database) repository.PlanRequestRepository {
	return &mongoPlanRequestRepository{
		collection: db.Collection(planRequestCollectionName),
	}
}

// Create inserts a new plan request.
func (r *mongoPlanRequestRepository) Create(ctx context.Context, req *domain.PlanRequest) (primitive.ObjectID, error) {
	if req.MemberID == primitive.NilObjectID || req.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan request requires memberId and trainerId")
	}

	req.ID = primitive.NewObjectID()
	req.CreatedAt = time.Now().UTC()
	if req.Status == "" {
		req.Status = domain.RequestPending
	}

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan request ID")
	}
	return insertedID, nil
}

// GetByID retrieves a plan request by its ID.
func (r *mongoPlanRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRequest, error) {
	var req domain.PlanRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindPending looks up a pending request for the exact (member, trainer, type)
// triple. Pending requests of a different type are allowed to coexist.
func (r *mongoPlanRequestRepository) FindPending(ctx context.Context, memberID, trainerID primitive.ObjectID, planType domain.PlanType) (*domain.PlanRequest, error) {
	var req domain.PlanRequest
	filter := bson.M{
		"memberId":    memberID,
		"trainerId":   trainerID,
		"requestType": planType,
		"status":      domain.RequestPending,
	}

	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListByTrainer retrieves all plan requests addressed to a trainer.
func (r *mongoPlanRequestRepository) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.PlanRequest, error) {
	return r.list(ctx, bson.M{"trainerId": trainerID})
}

// ListByMember retrieves all plan requests made by a member.
func (r *mongoPlanRequestRepository) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.PlanRequest, error) {
	return r.list(ctx, bson.M{"memberId": memberID})
}

func (r *mongoPlanRequestRepository) list(ctx context.Context, filter bson.M) ([]domain.PlanRequest, error) {
	var requests []domain.PlanRequest
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, cursor.Err()
}

// ResolveIfPending transitions a request out of pending with a conditional
// update, same contract as the membership request repository.
func (r *mongoPlanRequestRepository) ResolveIfPending(ctx context.Context, id primitive.ObjectID, status domain.RequestStatus) (*domain.PlanRequest, error) {
	now := time.Now().UTC()
	filter := bson.M{"_id": id, "status": domain.RequestPending}
	update := bson.M{
		"$set": bson.M{"status": status, "resolvedAt": now},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req domain.PlanRequest
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// EnsurePlanRequestIndexes creates necessary indexes for the plan_requests collection.
func EnsurePlanRequestIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One pending request per (member, trainer, type) triple.
			Keys: bson.D{
				{Key: "memberId", Value: 1},
				{Key: "trainerId", Value: 1},
				{Key: "requestType", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.RequestPending}),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
