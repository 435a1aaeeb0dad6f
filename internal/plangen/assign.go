// internal/plangen/assign.go
package plangen

import (
	"math"

	"thryveiq/coaching-app/internal/domain"
)

// Recovery-week cadence: a fixed 3-weeks-build / 1-week-recovery macrocycle,
// applied uniformly across phase boundaries. Recovery weeks run at 60% of the
// normal weekly-hour budget.
const recoveryVolumeFactor = 0.6

// isRecoveryWeek reports whether the 1-indexed week is a recovery week.
func isRecoveryWeek(weekNum int) bool {
	return weekNum%4 == 0
}

// assignZone picks the intensity zone for session i of totalSessions in a
// week, following a polarized distribution: ~70% Z1-2, ~20% Z3, ~10% Z4.
// Recovery weeks never go above zone 2. Zone 5 is never auto-assigned; it is
// reserved for LLM-authored sessions.
func assignZone(sessionIndex, totalSessions int, isRecovery bool) int {
	if isRecovery {
		if sessionIndex%3 == 0 {
			return 1
		}
		return 2
	}

	if totalSessions < 1 {
		totalSessions = 1
	}
	ratio := float64(sessionIndex) / float64(totalSessions)
	switch {
	case ratio < 0.70:
		return 2
	case ratio < 0.90:
		return 3
	default:
		return 4
	}
}

// Relative duration weights: the bike carries the longest sessions, the swim
// the shortest, and harder zones shorten a session.
var (
	sportWeight = map[domain.Discipline]float64{
		domain.DisciplineSwim: 0.75,
		domain.DisciplineBike: 1.25,
		domain.DisciplineRun:  1.0,
	}
	zoneWeight = map[int]float64{1: 0.7, 2: 1.0, 3: 0.85, 4: 0.7, 5: 0.55}
)

// Session duration bounds in minutes.
const (
	minSessionMinutes = 20
	maxSessionMinutes = 180
)

// weekDurations budgets the week's total minutes across its sessions.
// Each session weighs sportWeight x zoneWeight; weights are normalized to sum
// to 1 and multiplied by the weekly minutes, then each duration is rounded to
// the nearest 5 minutes and clamped to [20,180]. Rounding happens before
// clamping, so the post-clamp sum can drift a few minutes from the budget near
// the bounds; that drift is accepted.
func weekDurations(sportOrder []domain.Discipline, weeklyHours float64, zones []int) []int {
	rawWeights := make([]float64, len(sportOrder))
	totalWeight := 0.0
	for i, sport := range sportOrder {
		sw, ok := sportWeight[sport]
		if !ok {
			sw = 1.0
		}
		zw, ok := zoneWeight[zones[i]]
		if !ok {
			zw = 1.0
		}
		rawWeights[i] = sw * zw
		totalWeight += rawWeights[i]
	}

	totalMinutes := weeklyHours * 60

	durations := make([]int, len(rawWeights))
	for i, w := range rawWeights {
		minutes := (w / totalWeight) * totalMinutes
		rounded := int(math.Round(minutes/5)) * 5
		if rounded < minSessionMinutes {
			rounded = minSessionMinutes
		} else if rounded > maxSessionMinutes {
			rounded = maxSessionMinutes
		}
		durations[i] = rounded
	}

	return durations
}
