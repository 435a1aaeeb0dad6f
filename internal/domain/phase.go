// internal/domain/phase.go
package domain

// Phase is a named block of training weeks within a plan. Phases are laid out
// contiguously from week 1 in the order Base, Build, Peak, Taper, and their
// week counts always sum to the plan's total weeks until race.
type Phase struct {
	Name      string `json:"name"` // Base | Build | Peak | Taper
	Weeks     int    `json:"weeks"`
	StartWeek int    `json:"start_week"` // 1-indexed, inclusive
	EndWeek   int    `json:"end_week"`   // inclusive
	Focus     string `json:"focus"`
}
