// internal/plangen/phases.go
package plangen

import (
	"math"
	"time"

	"thryveiq/coaching-app/internal/domain"
)

// WeeksUntilRace returns the whole weeks between today and the race date,
// never less than 1. "Today" is an explicit parameter so the date math stays
// a pure function of its inputs.
func WeeksUntilRace(raceDate, today time.Time) int {
	days := int(raceDate.Sub(today).Hours() / 24)
	weeks := days / 7
	if weeks < 1 {
		return 1
	}
	return weeks
}

// CalculatePhases segments the time until the race into named training phases.
//
// Taper always ends on the race week. Short timelines compress: 4 weeks or
// fewer gives Base + Taper only, 5-8 weeks adds Build, and 9+ weeks gets the
// full Base / Build / Peak / Taper progression. Phase week counts always sum
// exactly to the weeks until race.
func CalculatePhases(raceDate, today time.Time) []domain.Phase {
	totalWeeks := WeeksUntilRace(raceDate, today)

	if totalWeeks <= 4 {
		// Race week only: no room for a base block at all.
		if totalWeeks == 1 {
			return []domain.Phase{
				{Name: "Taper", Weeks: 1, StartWeek: 1, EndWeek: 1,
					Focus: "Reduce volume, stay sharp for race day"},
			}
		}
		base := totalWeeks - 1
		return []domain.Phase{
			{Name: "Base", Weeks: base, StartWeek: 1, EndWeek: base,
				Focus: "Build aerobic fitness and technique"},
			{Name: "Taper", Weeks: 1, StartWeek: totalWeeks, EndWeek: totalWeeks,
				Focus: "Reduce volume, stay sharp for race day"},
		}
	}

	if totalWeeks <= 8 {
		taper := 1
		build := totalWeeks / 3
		if build < 2 {
			build = 2
		}
		base := totalWeeks - build - taper
		return layout([]phaseSpan{
			{"Base", base, "Build aerobic endurance and technique foundations"},
			{"Build", build, "Increase intensity, add race-pace work and longer sessions"},
			{"Taper", taper, "Reduce volume, maintain intensity, prepare for race day"},
		})
	}

	// Standard distribution for 9+ weeks.
	taper := 2
	peak := totalWeeks / 8
	if peak < 2 {
		peak = 2
	} else if peak > 3 {
		peak = 3
	}
	remaining := totalWeeks - taper - peak
	build := int(math.Round(float64(remaining) * 0.4))
	if build < 3 {
		build = 3
	}
	base := remaining - build

	return layout([]phaseSpan{
		{"Base", base, "Build aerobic endurance, technique, and consistency across all three disciplines"},
		{"Build", build, "Increase intensity and volume progressively, add race-specific workouts"},
		{"Peak", peak, "Highest intensity block, race simulations, fine-tune pacing"},
		{"Taper", taper, "Reduce volume by 40-60%, maintain intensity, rest and prepare for race day"},
	})
}

type phaseSpan struct {
	name  string
	weeks int
	focus string
}

// layout places phases contiguously starting at week 1.
func layout(spans []phaseSpan) []domain.Phase {
	phases := make([]domain.Phase, 0, len(spans))
	week := 1
	for _, s := range spans {
		phases = append(phases, domain.Phase{
			Name:      s.name,
			Weeks:     s.weeks,
			StartWeek: week,
			EndWeek:   week + s.weeks - 1,
			Focus:     s.focus,
		})
		week += s.weeks
	}
	return phases
}
