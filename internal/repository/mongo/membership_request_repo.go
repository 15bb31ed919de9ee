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

const membershipRequestCollectionName = "membership_requests"

// mongoMembershipRequestRepository implements repository.MembershipRequestRepository
type mongoMembershipRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoMembershipRequestRepository creates a new MembershipRequest repository backed by MongoDB.
func NewMongoMembershipRequestRepository(db *mongo.Database) repository.MembershipRequestRepository {
	return &mongoMembershipRequestRepository{
		collection: db.Collection(membershipRequestCollectionName),
	}
}

// Create inserts a new membership request.
func (r *mongoMembershipRequestRepository) Create(ctx context.Context, req *domain.MembershipRequest) (primitive.ObjectID, error) {
	if req.MemberID == primitive.NilObjectID || req.GymID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("membership request requires memberId and gymId")
	}

	req.ID = primitive.NewObjectID()
	req.CreatedAt = time.Now().UTC()
	if req.Status == "" {
		req.Status = domain.RequestPending
	}

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Partial unique index on (memberId, gymId, status=pending).
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted membership request ID")
	}
	return insertedID, nil
}

// GetByID retrieves a membership request by its ID.
func (r *mongoMembershipRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MembershipRequest, error) {
	var req domain.MembershipRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindPending looks up the single pending request for a (member, gym) pair.
func (r *mongoMembershipRequestRepository) FindPending(ctx context.Context, memberID, gymID primitive.ObjectID) (*domain.MembershipRequest, error) {
	var req domain.MembershipRequest
	filter := bson.M{"memberId": memberID, "gymId": gymID, "status": domain.RequestPending}

	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListByGym retrieves all requests targeting a gym, newest first.
func (r *mongoMembershipRequestRepository) ListByGym(ctx context.Context, gymID primitive.ObjectID) ([]domain.MembershipRequest, error) {
	return r.list(ctx, bson.M{"gymId": gymID})
}

// ListByMember retrieves all requests made by a member, newest first.
func (r *mongoMembershipRequestRepository) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.MembershipRequest, error) {
	return r.list(ctx, bson.M{"memberId": memberID})
}

func (r *mongoMembershipRequestRepository) list(ctx context.Context, filter bson.M) ([]domain.MembershipRequest, error) {
	var requests []domain.MembershipRequest
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
// update. The status filter makes double-resolution a lost race rather than a
// silent overwrite: the second caller matches no document and gets ErrNotFound.
func (r *mongoMembershipRequestRepository) ResolveIfPending(ctx context.Context, id primitive.ObjectID, status domain.RequestStatus) (*domain.MembershipRequest, error) {
	now := time.Now().UTC()
	filter := bson.M{"_id": id, "status": domain.RequestPending}
	update := bson.M{
		"$set": bson.M{"status": status, "resolvedAt": now},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req domain.MembershipRequest
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// DeletePendingByGym removes all unresolved requests for a gym (deletion cascade).
func (r *mongoMembershipRequestRepository) DeletePendingByGym(ctx context.Context, gymID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"gymId": gymID, "status": domain.RequestPending})
	return err
}

// EnsureMembershipRequestIndexes creates necessary indexes for the membership_requests collection.
func EnsureMembershipRequestIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// At most one pending request per (member, gym) pair. The partial
			// filter keeps resolved history out of the uniqueness constraint.
			Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "gymId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.RequestPending}),
		},
		{
			Keys:    bson.D{{Key: "gymId", Value: 1}, {Key: "createdAt", Value: -1}},
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
