// internal/repository/mongo/strava_repo.go
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

const stravaCollectionName = "strava_connections"

// mongoStravaRepository implements repository.StravaRepository.
type mongoStravaRepository struct {
	collection *mongo.Collection
}

// NewMongoStravaRepository creates a new Strava connection repository.
func NewMongoStravaRepository(db *mongo.Database) repository.StravaRepository {
	return &mongoStravaRepository{
		collection: db.Collection(stravaCollectionName),
	}
}

// Upsert stores the user's Strava tokens, replacing any existing connection.
func (r *mongoStravaRepository) Upsert(ctx context.Context, conn *domain.StravaConnection) (*domain.StravaConnection, error) {
	if conn.UserID == primitive.NilObjectID {
		return nil, errors.New("strava connection requires a user id")
	}

	now := time.Now().UTC()
	conn.UpdatedAt = now

	filter := bson.M{"userId": conn.UserID}

	existing := &domain.StravaConnection{}
	err := r.collection.FindOne(ctx, filter).Decode(existing)
	switch {
	case err == nil:
		conn.ID = existing.ID
		conn.CreatedAt = existing.CreatedAt
	case errors.Is(err, mongo.ErrNoDocuments):
		conn.ID = primitive.NewObjectID()
		conn.CreatedAt = now
	default:
		return nil, err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, conn, opts); err != nil {
		return nil, err
	}
	return conn, nil
}

// GetByUserID retrieves the user's Strava connection.
func (r *mongoStravaRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.StravaConnection, error) {
	var conn domain.StravaConnection
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&conn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &conn, nil
}

// DeleteByUserID removes the user's Strava connection.
func (r *mongoStravaRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureStravaIndexes creates necessary indexes for the strava_connections
// collection.
func EnsureStravaIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Could not create strava indexes: %v", err)
	}
}
