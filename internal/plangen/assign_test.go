package plangen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thryveiq/coaching-app/internal/domain"
)

func TestIsRecoveryWeek(t *testing.T) {
	recovery := map[int]bool{4: true, 8: true, 12: true}
	for week := 1; week <= 16; week++ {
		assert.Equal(t, week%4 == 0, isRecoveryWeek(week), "week=%d", week)
	}
	for week := range recovery {
		assert.True(t, isRecoveryWeek(week))
	}
}

func TestAssignZoneRecoveryWeek(t *testing.T) {
	// Recovery weeks alternate zones 1 and 2 and never go harder.
	for i := 0; i < 7; i++ {
		zone := assignZone(i, 7, true)
		assert.LessOrEqual(t, zone, 2, "i=%d", i)
		if i%3 == 0 {
			assert.Equal(t, 1, zone, "i=%d", i)
		} else {
			assert.Equal(t, 2, zone, "i=%d", i)
		}
	}
}

func TestAssignZonePolarized(t *testing.T) {
	tests := []struct {
		index, total int
		zone         int
	}{
		{0, 5, 2}, // ratio 0.0
		{1, 5, 2}, // 0.2
		{2, 5, 2}, // 0.4
		{3, 5, 2}, // 0.6
		{4, 5, 3}, // 0.8
		{6, 10, 2}, // 0.6
		{7, 10, 3}, // 0.7: moderate band starts
		{8, 10, 3}, // 0.8
		{9, 10, 4}, // 0.9: hard band starts
	}
	for _, tt := range tests {
		assert.Equal(t, tt.zone, assignZone(tt.index, tt.total, false),
			"index=%d total=%d", tt.index, tt.total)
	}

	// The deterministic engine never hands out zone 5.
	for total := 1; total <= 7; total++ {
		for i := 0; i < total; i++ {
			assert.LessOrEqual(t, assignZone(i, total, false), 4, "i=%d total=%d", i, total)
		}
	}
}

func TestWeekDurationsBudget(t *testing.T) {
	sports := []domain.Discipline{
		domain.DisciplineSwim, domain.DisciplineRun, domain.DisciplineBike,
		domain.DisciplineSwim, domain.DisciplineRun,
	}
	zones := []int{2, 2, 2, 2, 3}

	durations := weekDurations(sports, 8, zones)
	require.Len(t, durations, 5)

	// Weight-normalized split of 480 minutes: swim 0.75, run 1.0, bike 1.25,
	// swim 0.75, run x 0.85, total weight 4.6.
	assert.Equal(t, []int{80, 105, 130, 80, 90}, durations)

	total := 0
	for _, d := range durations {
		assert.Zero(t, d%5, "duration %d not a multiple of 5", d)
		assert.GreaterOrEqual(t, d, 20)
		assert.LessOrEqual(t, d, 180)
		total += d
	}
	// Rounding keeps the week within a few minutes of the 480-minute budget.
	assert.InDelta(t, 480, total, 15)
}

func TestWeekDurationsClampFloor(t *testing.T) {
	sports := []domain.Discipline{
		domain.DisciplineSwim, domain.DisciplineBike, domain.DisciplineRun,
		domain.DisciplineSwim, domain.DisciplineBike, domain.DisciplineRun,
	}
	zones := []int{2, 2, 2, 1, 3, 4}

	// One hour across six sessions: everything clamps up to the 20 minute floor.
	durations := weekDurations(sports, 1, zones)
	for _, d := range durations {
		assert.Equal(t, 20, d)
	}
}

func TestWeekDurationsClampCeiling(t *testing.T) {
	sports := []domain.Discipline{domain.DisciplineBike, domain.DisciplineRun}
	zones := []int{2, 2}

	// Forty hours over two sessions pins both at the 180 minute ceiling.
	durations := weekDurations(sports, 40, zones)
	for _, d := range durations {
		assert.Equal(t, 180, d)
	}
}
