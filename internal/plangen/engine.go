// Package plangen is the deterministic, rule-based plan generation engine.
//
// It turns an athlete profile into a full multi-week schedule of training
// sessions without any external model: phases are segmented from the race
// date, each week's days are distributed across the three sports biased
// toward the athlete's weakest discipline, zones follow a polarized intensity
// model with a recovery week every 4th week, and per-session durations are
// budgeted against the weekly hours. Every function here is pure: "today" is
// an explicit parameter, so the same profile and date always produce the same
// plan. The plan service invokes this engine whenever LLM generation is
// unavailable or returns unusable output.
package plangen

import (
	"errors"
	"fmt"
	"time"

	"thryveiq/coaching-app/internal/domain"
)

// --- Error Definitions ---
var (
	ErrInvalidDaysAvailable = errors.New("days available must be between 1 and 7")
	ErrInvalidWeeklyHours   = errors.New("weekly hours must be greater than 0 and at most 40")
	ErrInvalidDiscipline    = errors.New("discipline must be one of swim, bike, run")
	ErrSameDiscipline       = errors.New("strongest and weakest discipline must differ")
)

// daysOfWeek in fixed order; a week's sessions land on the first
// daysAvailable of these.
var daysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// GeneratePlan builds a complete training schedule from the athlete's profile.
//
// Weeks are independent of each other apart from the week-number-driven
// recovery cadence, so the session list is fully determined by the profile
// and today's date; calling twice with identical inputs yields an identical
// plan.
func GeneratePlan(profile *domain.AthleteProfile, today time.Time) (*domain.GeneratedPlan, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	weeks := WeeksUntilRace(profile.RaceDate, today)
	days := profile.DaysAvailable

	sessions := make([]domain.Session, 0, weeks*days)

	for weekNum := 1; weekNum <= weeks; weekNum++ {
		recovery := isRecoveryWeek(weekNum)

		weekHours := profile.WeeklyHours
		if recovery {
			weekHours *= recoveryVolumeFactor
		}

		sportOrder := distributeSports(days, profile.StrongestDiscipline, profile.WeakestDiscipline)
		trainingDays := daysOfWeek[:days]

		// Zones first, so durations can be budgeted over the whole week.
		weekZones := make([]int, days)
		for i := range weekZones {
			weekZones[i] = assignZone(i, days, recovery)
		}
		durations := weekDurations(sportOrder, weekHours, weekZones)

		for dayIndex, sport := range sportOrder {
			zone := weekZones[dayIndex]
			sessions = append(sessions, domain.Session{
				ID:              fmt.Sprintf("w%d_d%d_%s", weekNum, dayIndex+1, sport),
				Week:            weekNum,
				Day:             trainingDays[dayIndex],
				Sport:           sport,
				DurationMinutes: durations[dayIndex],
				Zone:            zone,
				ZoneLabel:       ZoneLabels[zone],
				Description:     sessionDescription(sport, zone),
			})
		}
	}

	return &domain.GeneratedPlan{
		WeeksUntilRace: weeks,
		Sessions:       sessions,
	}, nil
}

// validateProfile fails fast on caller-supplied invalid inputs. Absent
// benchmarks (FTP/LTHR/CSS) are not checked here; only the zone calculator
// substitutes defaults for those.
func validateProfile(profile *domain.AthleteProfile) error {
	if profile == nil {
		return errors.New("profile is required")
	}
	if profile.DaysAvailable < 1 || profile.DaysAvailable > 7 {
		return ErrInvalidDaysAvailable
	}
	if profile.WeeklyHours <= 0 || profile.WeeklyHours > 40 {
		return ErrInvalidWeeklyHours
	}
	if !profile.StrongestDiscipline.IsValid() || !profile.WeakestDiscipline.IsValid() {
		return ErrInvalidDiscipline
	}
	if profile.StrongestDiscipline == profile.WeakestDiscipline {
		return ErrSameDiscipline
	}
	return nil
}
