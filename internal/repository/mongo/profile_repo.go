// internal/repository/mongo/profile_repo.go
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

const profileCollectionName = "athlete_profiles"

// mongoProfileRepository implements repository.ProfileRepository.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new athlete profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Upsert saves the athlete's profile, replacing any existing one for the same
// user. The profile is returned as stored, with id and timestamps set.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.AthleteProfile) (*domain.AthleteProfile, error) {
	if profile.UserID == primitive.NilObjectID {
		return nil, errors.New("profile requires a user id")
	}

	now := time.Now().UTC()
	profile.UpdatedAt = now

	filter := bson.M{"userId": profile.UserID}

	// Keep _id and createdAt stable across upserts of the same profile.
	existing := &domain.AthleteProfile{}
	err := r.collection.FindOne(ctx, filter).Decode(existing)
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, mongo.ErrNoDocuments):
		profile.ID = primitive.NewObjectID()
		profile.CreatedAt = now
	default:
		return nil, err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, profile, opts); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByUserID retrieves the athlete's profile.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.AthleteProfile, error) {
	var profile domain.AthleteProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureProfileIndexes creates necessary indexes for the athlete_profiles
// collection. One profile per user.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Could not create profile indexes: %v", err)
	}
}
