// internal/domain/plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is a single scheduled workout inside a plan.
type Session struct {
	ID              string     `bson:"id" json:"id"` // deterministic: w{week}_d{day}_{sport}
	Week            int        `bson:"week" json:"week"`
	Day             string     `bson:"day" json:"day"` // weekday name, Monday..Sunday
	Sport           Discipline `bson:"sport" json:"sport"`
	DurationMinutes int        `bson:"duration_minutes" json:"duration_minutes"`
	Zone            int        `bson:"zone" json:"zone"` // 1-5
	ZoneLabel       string     `bson:"zone_label" json:"zone_label"`
	Description     string     `bson:"description" json:"description"`
}

// GeneratedPlan is the in-memory result of plan generation, before the store
// assigns an id and timestamp. Sessions are in chronological order.
type GeneratedPlan struct {
	WeeksUntilRace int       `bson:"weeks_until_race" json:"weeks_until_race"`
	Sessions       []Session `bson:"sessions" json:"sessions"`
}

// Plan is the persisted plan record. One active plan per athlete: storing a
// new plan supersedes any prior plan, no version history is kept.
type Plan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	WeeksUntilRace int                `bson:"weeks_until_race" json:"weeks_until_race"`
	Sessions       []Session          `bson:"sessions" json:"sessions"`
	GeneratedAt    time.Time          `bson:"generatedAt" json:"generated_at"`
}
