// internal/repository/mongo/plan_repo.go
package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/repository"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Replace stores a freshly generated plan. Any prior plan for the user is
// deleted first: one active plan per athlete, no version history.
func (r *mongoPlanRepository) Replace(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	if plan.UserID == primitive.NilObjectID {
		return nil, errors.New("plan requires a user id")
	}

	if _, err := r.collection.DeleteMany(ctx, bson.M{"userId": plan.UserID}); err != nil {
		return nil, err
	}

	plan.ID = primitive.NewObjectID()
	plan.GeneratedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetByUserID retrieves the athlete's current (only) plan.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan

	// Newest first guards against a stray duplicate from a failed replace.
	opts := options.FindOne().SetSort(bson.D{{Key: "generatedAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// DeleteByUserID removes the athlete's plan.
func (r *mongoPlanRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes for the plans collection.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "generatedAt", Value: -1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Could not create plan indexes: %v", err)
	}
}
