package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"thryveiq/coaching-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository defines the interface for athlete profile storage.
// Profiles are keyed by user id: one profile per athlete, replaced on save.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.AthleteProfile) (*domain.AthleteProfile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.AthleteProfile, error)
}

// PlanRepository defines the interface for plan storage. One active plan per
// athlete: Replace deletes any prior plan for the user before inserting the
// new one, so no version history is retained.
type PlanRepository interface {
	Replace(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// StravaRepository defines the interface for Strava OAuth token storage.
type StravaRepository interface {
	Upsert(ctx context.Context, conn *domain.StravaConnection) (*domain.StravaConnection, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.StravaConnection, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}
