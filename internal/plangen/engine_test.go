package plangen

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thryveiq/coaching-app/internal/domain"
)

func testProfile(today time.Time, weeksOut int) *domain.AthleteProfile {
	return &domain.AthleteProfile{
		Goal:                domain.LevelRecreational,
		Experience:          domain.LevelRecreational,
		RaceDate:            today.AddDate(0, 0, weeksOut*7),
		WeeklyHours:         8,
		DaysAvailable:       5,
		StrongestDiscipline: domain.DisciplineBike,
		WeakestDiscipline:   domain.DisciplineSwim,
	}
}

func TestGeneratePlanTenWeekScenario(t *testing.T) {
	today := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	profile := testProfile(today, 10)

	plan, err := GeneratePlan(profile, today)
	require.NoError(t, err)

	assert.Equal(t, 10, plan.WeeksUntilRace)
	require.Len(t, plan.Sessions, 50) // 10 weeks x 5 days

	// The matching phase layout is the full four-phase progression.
	phases := CalculatePhases(profile.RaceDate, today)
	require.Len(t, phases, 4)
	total := 0
	for _, p := range phases {
		total += p.Weeks
	}
	assert.Equal(t, 10, total)

	for _, s := range plan.Sessions {
		assert.GreaterOrEqual(t, s.Week, 1)
		assert.LessOrEqual(t, s.Week, 10)
		assert.True(t, s.Sport.IsValid())
		assert.GreaterOrEqual(t, s.DurationMinutes, 20)
		assert.LessOrEqual(t, s.DurationMinutes, 180)
		assert.Zero(t, s.DurationMinutes%5, "session %s duration %d", s.ID, s.DurationMinutes)
		assert.GreaterOrEqual(t, s.Zone, 1)
		assert.LessOrEqual(t, s.Zone, 5)
		assert.Equal(t, ZoneLabels[s.Zone], s.ZoneLabel)
		assert.NotEmpty(t, s.Description)

		// Recovery weeks 4 and 8 stay at zone 2 or below.
		if s.Week%4 == 0 {
			assert.LessOrEqual(t, s.Zone, 2, "week %d session %s", s.Week, s.ID)
		}
	}
}

func TestGeneratePlanSessionIdentifiers(t *testing.T) {
	today := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	plan, err := GeneratePlan(testProfile(today, 6), today)
	require.NoError(t, err)

	seen := map[string]bool{}
	perWeekOrdinal := map[int]int{}
	for _, s := range plan.Sessions {
		assert.False(t, seen[s.ID], "duplicate session id %s", s.ID)
		seen[s.ID] = true

		perWeekOrdinal[s.Week]++
		want := fmt.Sprintf("w%d_d%d_%s", s.Week, perWeekOrdinal[s.Week], s.Sport)
		assert.Equal(t, want, s.ID)
	}
}

func TestGeneratePlanDayNames(t *testing.T) {
	today := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	profile := testProfile(today, 4)
	profile.DaysAvailable = 3

	plan, err := GeneratePlan(profile, today)
	require.NoError(t, err)

	// Three training days use the first three weekday names, in order.
	allowed := map[string]bool{"Monday": true, "Tuesday": true, "Wednesday": true}
	for _, s := range plan.Sessions {
		assert.True(t, allowed[s.Day], "unexpected day %q", s.Day)
	}
}

func TestGeneratePlanDeterministic(t *testing.T) {
	today := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	profile := testProfile(today, 12)

	first, err := GeneratePlan(profile, today)
	require.NoError(t, err)
	second, err := GeneratePlan(profile, today)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGeneratePlanRaceInPast(t *testing.T) {
	// A race date behind "today" still yields a structurally valid one-week plan.
	today := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	profile := testProfile(today, 10)
	profile.RaceDate = today.AddDate(0, 0, -30)

	plan, err := GeneratePlan(profile, today)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.WeeksUntilRace)
	assert.Len(t, plan.Sessions, profile.DaysAvailable)
}

func TestGeneratePlanValidation(t *testing.T) {
	today := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*domain.AthleteProfile)
		err    error
	}{
		{"days too low", func(p *domain.AthleteProfile) { p.DaysAvailable = 0 }, ErrInvalidDaysAvailable},
		{"days too high", func(p *domain.AthleteProfile) { p.DaysAvailable = 8 }, ErrInvalidDaysAvailable},
		{"zero hours", func(p *domain.AthleteProfile) { p.WeeklyHours = 0 }, ErrInvalidWeeklyHours},
		{"too many hours", func(p *domain.AthleteProfile) { p.WeeklyHours = 41 }, ErrInvalidWeeklyHours},
		{"bad discipline", func(p *domain.AthleteProfile) { p.StrongestDiscipline = "rowing" }, ErrInvalidDiscipline},
		{"same discipline", func(p *domain.AthleteProfile) {
			p.StrongestDiscipline = domain.DisciplineRun
			p.WeakestDiscipline = domain.DisciplineRun
		}, ErrSameDiscipline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testProfile(today, 10)
			tt.mutate(profile)
			_, err := GeneratePlan(profile, today)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
