// internal/domain/profile.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discipline is one of the three triathlon sports.
type Discipline string

const (
	DisciplineSwim Discipline = "swim"
	DisciplineBike Discipline = "bike"
	DisciplineRun  Discipline = "run"
)

// Disciplines lists the valid sports in canonical order.
var Disciplines = []Discipline{DisciplineSwim, DisciplineBike, DisciplineRun}

// IsValid reports whether d is one of swim, bike or run.
func (d Discipline) IsValid() bool {
	switch d {
	case DisciplineSwim, DisciplineBike, DisciplineRun:
		return true
	}
	return false
}

// Goal/experience levels an athlete can declare during onboarding.
const (
	LevelFirstTimer   = "first_timer"
	LevelRecreational = "recreational"
	LevelCompetitive  = "competitive"
)

// AthleteProfile holds the guide rails the plan engine works from.
// One profile per user; saving again replaces the previous one.
type AthleteProfile struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID `bson:"userId" json:"userId"`
	Goal                string             `bson:"goal" json:"goal"`
	Experience          string             `bson:"experience" json:"experience"`
	RaceDate            time.Time          `bson:"raceDate" json:"race_date"`
	CurrentBackground   string             `bson:"currentBackground" json:"current_background"`
	WeeklyHours         float64            `bson:"weeklyHours" json:"weekly_hours"`
	DaysAvailable       int                `bson:"daysAvailable" json:"days_available"`
	StrongestDiscipline Discipline         `bson:"strongestDiscipline" json:"strongest_discipline"`
	WeakestDiscipline   Discipline         `bson:"weakestDiscipline" json:"weakest_discipline"`

	// Benchmarks. Zero/empty means unknown; the zone calculator substitutes
	// its defaults for unknown benchmarks only, never for invalid ones.
	FTP  int    `bson:"ftp,omitempty" json:"ftp,omitempty"`   // watts
	LTHR int    `bson:"lthr,omitempty" json:"lthr,omitempty"` // bpm
	CSS  string `bson:"css,omitempty" json:"css,omitempty"`   // "MM:SS" per km

	// Zones computed from the benchmarks when the profile is saved.
	Zones *ZoneTables `bson:"zones,omitempty" json:"zones,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
