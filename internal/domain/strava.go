// internal/domain/strava.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StravaConnection stores the OAuth tokens linking an athlete to Strava.
// One connection per user, replaced wholesale on re-auth or refresh.
type StravaConnection struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	AccessToken  string             `bson:"accessToken" json:"-"`
	RefreshToken string             `bson:"refreshToken" json:"-"`
	ExpiresAt    time.Time          `bson:"expiresAt" json:"expiresAt"`
	AthleteID    int64              `bson:"athleteId,omitempty" json:"athleteId,omitempty"`
	AthleteName  string             `bson:"athleteName,omitempty" json:"athleteName,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
