// internal/llm/planner.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/plangen"
)

// ErrUnusableOutput is returned when the model response could not be turned
// into at least one valid session. The caller falls back to the rule engine.
var ErrUnusableOutput = errors.New("llm returned unusable plan output")

var daysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const planSystemPrompt = `You are an expert Ironman 70.3 triathlon coach building a personalized training plan.
You must return ONLY valid JSON - no markdown, no explanation, no extra text.

Rules:
- Each session must have: id, week, day, sport, duration_minutes, zone (1-5), zone_label, description
- zone_label must be one of: Recovery, Aerobic, Tempo, Threshold, VO2max
- sport must be one of: swim, bike, run
- id format: w{week}_d{day_number}_{sport} (e.g. w1_d1_swim)
- description should be 2-3 sentences with specific coaching cues
- Use periodization: build for 3 weeks, recovery week every 4th week
- Recovery weeks should reduce volume by ~40% and keep zones at 1-2
- Follow polarized training: ~70% Zone 1-2, ~20% Zone 3, ~10% Zone 4-5
- Include variety: long sessions, tempo work, intervals, technique/drill sessions, brick workouts
- Total weekly duration must stay within the athlete's weekly hours budget`

// GeneratePlan asks the model for a complete training plan built from the
// athlete's guide rails, then validates and cleans the result. Sessions with
// an unknown sport are dropped; out-of-range zones and durations are coerced
// into range rather than rejected.
func (c *Client) GeneratePlan(ctx context.Context, profile *domain.AthleteProfile, today time.Time) (*domain.GeneratedPlan, error) {
	weeks := plangen.WeeksUntilRace(profile.RaceDate, today)
	trainingDays := daysOfWeek[:profile.DaysAvailable]

	prompt := fmt.Sprintf(`Build a complete training plan with these constraints:

Athlete:
- Goal: %s
- Experience: %s
- Race date: %s (%d weeks away)
- Weekly hours available: %.1f
- Training days per week: %d (%s)
- Strongest discipline: %s
- Weakest discipline: %s
- Background: %s

Requirements:
- Generate %d weeks of training
- %d sessions per week on %s
- Give the weakest discipline (%s) ~20%% more sessions
- Total duration per week should be close to %.1f hours (%d minutes)
- Recovery weeks (every 4th week): reduce to ~%d minutes total

Return JSON: {"sessions": [...]}`,
		profile.Goal,
		profile.Experience,
		profile.RaceDate.Format("2006-01-02"), weeks,
		profile.WeeklyHours,
		profile.DaysAvailable, strings.Join(trainingDays, ", "),
		profile.StrongestDiscipline,
		profile.WeakestDiscipline,
		profile.CurrentBackground,
		weeks,
		profile.DaysAvailable, strings.Join(trainingDays, ", "),
		profile.WeakestDiscipline,
		profile.WeeklyHours, int(profile.WeeklyHours*60),
		int(profile.WeeklyHours*0.6*60),
	)

	response, err := c.Generate(ctx, prompt, planSystemPrompt, true)
	if err != nil {
		return nil, err
	}

	sessions, err := cleanSessions(response)
	if err != nil {
		return nil, err
	}

	return &domain.GeneratedPlan{
		WeeksUntilRace: weeks,
		Sessions:       sessions,
	}, nil
}

// rawSession tolerates the loose shapes models produce: float durations,
// missing ids, mixed-case sports.
type rawSession struct {
	ID              string  `json:"id"`
	Week            int     `json:"week"`
	Day             string  `json:"day"`
	Sport           string  `json:"sport"`
	DurationMinutes float64 `json:"duration_minutes"`
	Zone            int     `json:"zone"`
	Description     string  `json:"description"`
}

// cleanSessions parses the model output and coerces each session into a valid
// domain.Session, dropping the ones that cannot be salvaged.
func cleanSessions(response string) ([]domain.Session, error) {
	var parsed struct {
		Sessions []rawSession `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnusableOutput, err)
	}
	if len(parsed.Sessions) == 0 {
		return nil, ErrUnusableOutput
	}

	cleaned := make([]domain.Session, 0, len(parsed.Sessions))
	for _, raw := range parsed.Sessions {
		sport := domain.Discipline(strings.ToLower(strings.TrimSpace(raw.Sport)))
		if !sport.IsValid() {
			continue
		}

		zone := raw.Zone
		if zone < 1 || zone > 5 {
			zone = 2
		}

		week := raw.Week
		if week < 1 {
			week = 1
		}

		duration := int(raw.DurationMinutes)
		if duration == 0 {
			duration = 60
		}
		if duration < 20 {
			duration = 20
		} else if duration > 180 {
			duration = 180
		}

		id := raw.ID
		if id == "" {
			id = fmt.Sprintf("w%d_d%d_%s", week, len(cleaned)+1, sport)
		}

		day := raw.Day
		if day == "" {
			day = "Monday"
		}

		description := raw.Description
		if description == "" {
			description = fmt.Sprintf("Zone %d %s session.", zone, sport)
		}

		cleaned = append(cleaned, domain.Session{
			ID:              id,
			Week:            week,
			Day:             day,
			Sport:           sport,
			DurationMinutes: duration,
			Zone:            zone,
			ZoneLabel:       plangen.ZoneLabels[zone],
			Description:     description,
		})
	}

	if len(cleaned) == 0 {
		return nil, ErrUnusableOutput
	}
	return cleaned, nil
}
