package plangen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thryveiq/coaching-app/internal/domain"
)

func disciplinePairs() [][2]domain.Discipline {
	var pairs [][2]domain.Discipline
	for _, strongest := range domain.Disciplines {
		for _, weakest := range domain.Disciplines {
			if strongest != weakest {
				pairs = append(pairs, [2]domain.Discipline{strongest, weakest})
			}
		}
	}
	return pairs
}

// Every combination of days and disciplines yields exactly daysAvailable
// entries, each a valid sport.
func TestDistributeSportsLength(t *testing.T) {
	for days := 1; days <= 7; days++ {
		for _, pair := range disciplinePairs() {
			got := distributeSports(days, pair[0], pair[1])
			require.Len(t, got, days, "days=%d strongest=%s weakest=%s", days, pair[0], pair[1])
			for _, s := range got {
				assert.True(t, s.IsValid(), "days=%d got %q", days, s)
			}
		}
	}
}

func TestDistributeSportsWeakestBias(t *testing.T) {
	for days := 2; days <= 7; days++ {
		for _, pair := range disciplinePairs() {
			strongest, weakest := pair[0], pair[1]
			got := distributeSports(days, strongest, weakest)

			counts := map[domain.Discipline]int{}
			for _, s := range got {
				counts[s]++
			}
			assert.GreaterOrEqual(t, counts[weakest], counts[strongest],
				"days=%d strongest=%s weakest=%s counts=%v", days, strongest, weakest, counts)
		}
	}
}

func TestDistributeSportsNoBackToBack(t *testing.T) {
	for days := 1; days <= 7; days++ {
		for _, pair := range disciplinePairs() {
			got := distributeSports(days, pair[0], pair[1])
			for i := 1; i < len(got); i++ {
				assert.NotEqual(t, got[i-1], got[i],
					"days=%d strongest=%s weakest=%s sequence=%v", days, pair[0], pair[1], got)
			}
		}
	}
}

func TestDistributeSportsKnownWeek(t *testing.T) {
	// 5 days, strongest bike, weakest swim: swim twice, run twice, bike once,
	// interleaved weakest-middle-strongest.
	got := distributeSports(5, domain.DisciplineBike, domain.DisciplineSwim)
	want := []domain.Discipline{
		domain.DisciplineSwim, domain.DisciplineRun, domain.DisciplineBike,
		domain.DisciplineSwim, domain.DisciplineRun,
	}
	assert.Equal(t, want, got)
}

func TestDistributeSportsSingleDay(t *testing.T) {
	// With one day the weakest discipline gets it.
	got := distributeSports(1, domain.DisciplineRun, domain.DisciplineSwim)
	assert.Equal(t, []domain.Discipline{domain.DisciplineSwim}, got)
}

func TestDistributeSportsDeterministic(t *testing.T) {
	for days := 1; days <= 7; days++ {
		a := distributeSports(days, domain.DisciplineSwim, domain.DisciplineRun)
		b := distributeSports(days, domain.DisciplineSwim, domain.DisciplineRun)
		assert.Equal(t, a, b, "days=%d", days)
	}
}
