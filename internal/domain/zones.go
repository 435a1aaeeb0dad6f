// internal/domain/zones.go
package domain

// ZoneRange is one entry of a heart-rate or power zone table. Min/Max are nil
// at the open extremes: zone 1 has no minimum, zone 5 has no maximum.
type ZoneRange struct {
	Label string `bson:"label" json:"label"`
	Min   *int   `bson:"min" json:"min"`
	Max   *int   `bson:"max" json:"max"`
}

// PaceZoneRange is one entry of the pace zone table. Paces are "MM:SS" per km,
// so a numerically larger value is slower. MinPace is the slow boundary of the
// zone and MaxPace the fast boundary, not numeric min/max. Open ends are nil:
// zone 1 has no slow limit, zone 5 has no fast limit.
type PaceZoneRange struct {
	Label   string  `bson:"label" json:"label"`
	MinPace *string `bson:"min_pace" json:"min_pace"`
	MaxPace *string `bson:"max_pace" json:"max_pace"`
}

// ZoneThresholds echoes the benchmark values the tables were derived from,
// after default substitution for unknown inputs.
type ZoneThresholds struct {
	FTP  int    `bson:"ftp" json:"ftp"`   // watts
	LTHR int    `bson:"lthr" json:"lthr"` // bpm
	CSS  string `bson:"css" json:"css"`   // "MM:SS" per km
}

// ZoneTables holds the three five-zone tables derived from an athlete's
// threshold benchmarks. Tables are recomputed wholesale when a benchmark
// changes, never mutated in place. Keys are "Z1".."Z5".
type ZoneTables struct {
	PowerZones map[string]ZoneRange     `bson:"power_zones" json:"power_zones"`
	HRZones    map[string]ZoneRange     `bson:"hr_zones" json:"hr_zones"`
	PaceZones  map[string]PaceZoneRange `bson:"pace_zones" json:"pace_zones"`
	Inputs     ZoneThresholds           `bson:"inputs" json:"inputs"`
}
