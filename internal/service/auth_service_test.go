package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*domain.User{},
		byID:    map[primitive.ObjectID]*domain.User{},
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	r.byEmail[user.Email] = &stored
	r.byID[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

const testJWTSecret = "test-secret-do-not-use"

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Alex", "alex@example.com", "supersecret1")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "alex@example.com", user.Email)
	assert.NotEqual(t, "supersecret1", user.PasswordHash)

	token, loggedIn, err := svc.Login(context.Background(), "alex@example.com", "supersecret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The token carries the user id in the uid claim.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims["uid"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Alex", "alex@example.com", "supersecret1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Alex", "alex@example.com", "differentpass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Alex", "alex@example.com", "supersecret1")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alex@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "supersecret1")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
