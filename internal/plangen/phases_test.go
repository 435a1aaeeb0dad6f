package plangen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var phaseTestToday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func raceIn(weeks int) time.Time {
	return phaseTestToday.AddDate(0, 0, weeks*7)
}

func TestWeeksUntilRace(t *testing.T) {
	tests := []struct {
		days  int
		weeks int
	}{
		{70, 10},
		{21, 3},
		{13, 1},  // under two whole weeks
		{7, 1},
		{0, 1},   // race today still counts as one week
		{-14, 1}, // race in the past clamps to one
	}

	for _, tt := range tests {
		race := phaseTestToday.AddDate(0, 0, tt.days)
		assert.Equal(t, tt.weeks, WeeksUntilRace(race, phaseTestToday), "days=%d", tt.days)
	}
}

// Phase week counts must sum exactly to the weeks until race, for any timeline.
func TestCalculatePhasesWeeksAlwaysSum(t *testing.T) {
	for weeks := 1; weeks <= 120; weeks++ {
		phases := CalculatePhases(raceIn(weeks), phaseTestToday)
		require.NotEmpty(t, phases, "weeks=%d", weeks)

		sum := 0
		for _, p := range phases {
			assert.GreaterOrEqual(t, p.Weeks, 1, "weeks=%d phase=%s", weeks, p.Name)
			sum += p.Weeks
		}
		assert.Equal(t, weeks, sum, "weeks=%d", weeks)
	}
}

func TestCalculatePhasesContiguous(t *testing.T) {
	for weeks := 1; weeks <= 60; weeks++ {
		phases := CalculatePhases(raceIn(weeks), phaseTestToday)

		seen := map[string]bool{}
		next := 1
		for _, p := range phases {
			assert.False(t, seen[p.Name], "weeks=%d duplicate phase %s", weeks, p.Name)
			seen[p.Name] = true

			assert.Equal(t, next, p.StartWeek, "weeks=%d phase=%s", weeks, p.Name)
			assert.Equal(t, p.StartWeek+p.Weeks-1, p.EndWeek, "weeks=%d phase=%s", weeks, p.Name)
			next = p.EndWeek + 1
		}
		// Taper always ends on the race week.
		last := phases[len(phases)-1]
		assert.Equal(t, "Taper", last.Name, "weeks=%d", weeks)
		assert.Equal(t, weeks, last.EndWeek, "weeks=%d", weeks)
	}
}

func TestCalculatePhasesShortTimeline(t *testing.T) {
	// Race three weeks out: Base 2 weeks + Taper 1 week.
	phases := CalculatePhases(raceIn(3), phaseTestToday)
	require.Len(t, phases, 2)

	assert.Equal(t, "Base", phases[0].Name)
	assert.Equal(t, 2, phases[0].Weeks)
	assert.Equal(t, 1, phases[0].StartWeek)
	assert.Equal(t, 2, phases[0].EndWeek)

	assert.Equal(t, "Taper", phases[1].Name)
	assert.Equal(t, 1, phases[1].Weeks)
	assert.Equal(t, 3, phases[1].StartWeek)
	assert.Equal(t, 3, phases[1].EndWeek)
}

func TestCalculatePhasesRaceWeekOnly(t *testing.T) {
	phases := CalculatePhases(raceIn(1), phaseTestToday)
	require.Len(t, phases, 1)
	assert.Equal(t, "Taper", phases[0].Name)
	assert.Equal(t, 1, phases[0].Weeks)
}

func TestCalculatePhasesMidTimeline(t *testing.T) {
	// 5-8 weeks out: Base + Build + Taper, taper fixed at one week.
	for weeks := 5; weeks <= 8; weeks++ {
		phases := CalculatePhases(raceIn(weeks), phaseTestToday)
		require.Len(t, phases, 3, "weeks=%d", weeks)
		assert.Equal(t, "Base", phases[0].Name)
		assert.Equal(t, "Build", phases[1].Name)
		assert.Equal(t, "Taper", phases[2].Name)
		assert.Equal(t, 1, phases[2].Weeks)
		assert.GreaterOrEqual(t, phases[1].Weeks, 2, "weeks=%d", weeks)
	}
}

func TestCalculatePhasesStandardTimeline(t *testing.T) {
	// Ten weeks out: full Base / Build / Peak / Taper progression.
	phases := CalculatePhases(raceIn(10), phaseTestToday)
	require.Len(t, phases, 4)

	assert.Equal(t, "Base", phases[0].Name)
	assert.Equal(t, "Build", phases[1].Name)
	assert.Equal(t, "Peak", phases[2].Name)
	assert.Equal(t, "Taper", phases[3].Name)

	assert.Equal(t, 2, phases[3].Weeks)
	assert.Equal(t, 10, phases[3].EndWeek)
	for _, p := range phases {
		assert.NotEmpty(t, p.Focus)
	}

	// Peak stays within its 2-3 week clamp on long timelines too.
	for weeks := 9; weeks <= 40; weeks++ {
		ps := CalculatePhases(raceIn(weeks), phaseTestToday)
		require.Len(t, ps, 4, "weeks=%d", weeks)
		peak := ps[2]
		assert.GreaterOrEqual(t, peak.Weeks, 2, "weeks=%d", weeks)
		assert.LessOrEqual(t, peak.Weeks, 3, "weeks=%d", weeks)
	}
}
