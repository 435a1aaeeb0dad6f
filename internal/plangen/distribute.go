// internal/plangen/distribute.go
package plangen

import (
	"math"

	"thryveiq/coaching-app/internal/domain"
)

// distributeSports lays out one week of sport assignments across the athlete's
// available days. The weakest discipline gets ~20% more sessions than an even
// split, the strongest ~20% fewer (never below 1), and the middle discipline
// fills the rest. Counts are reconciled to exactly daysAvailable by trimming
// or padding the weakest discipline. The final order interleaves round-robin
// (weakest, middle, strongest) so the same sport never lands on consecutive
// days when avoidable. Deterministic for the same inputs.
func distributeSports(daysAvailable int, strongest, weakest domain.Discipline) []domain.Discipline {
	var middle domain.Discipline
	for _, s := range domain.Disciplines {
		if s != strongest && s != weakest {
			middle = s
			break
		}
	}

	basePerSport := float64(daysAvailable) / 3

	weakestCount := int(math.Ceil(basePerSport * 1.2))
	strongestCount := int(math.Floor(basePerSport * 0.8))
	if strongestCount < 1 {
		strongestCount = 1
	}
	middleCount := daysAvailable - weakestCount - strongestCount
	if middleCount < 1 {
		middleCount = 1
	}

	distribution := make([]domain.Discipline, 0, weakestCount+middleCount+strongestCount)
	for i := 0; i < weakestCount; i++ {
		distribution = append(distribution, weakest)
	}
	for i := 0; i < middleCount; i++ {
		distribution = append(distribution, middle)
	}
	for i := 0; i < strongestCount; i++ {
		distribution = append(distribution, strongest)
	}

	// Trim or pad to match daysAvailable.
	if len(distribution) > daysAvailable {
		distribution = distribution[:daysAvailable]
	}
	for len(distribution) < daysAvailable {
		distribution = append(distribution, weakest)
	}

	// Interleave so the same sport isn't back to back.
	counts := map[domain.Discipline]int{}
	for _, s := range distribution {
		counts[s]++
	}

	result := make([]domain.Discipline, 0, len(distribution))
	order := []domain.Discipline{weakest, middle, strongest}
	for counts[weakest] > 0 || counts[middle] > 0 || counts[strongest] > 0 {
		for _, s := range order {
			if counts[s] > 0 {
				result = append(result, s)
				counts[s]--
			}
		}
	}

	return result[:daysAvailable]
}
