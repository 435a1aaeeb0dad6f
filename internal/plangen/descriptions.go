// internal/plangen/descriptions.go
package plangen

import (
	"fmt"

	"thryveiq/coaching-app/internal/domain"
)

// ZoneLabels maps an intensity zone to its display label.
var ZoneLabels = map[int]string{
	1: "Recovery",
	2: "Aerobic",
	3: "Tempo",
	4: "Threshold",
	5: "VO2max",
}

type sportZone struct {
	sport domain.Discipline
	zone  int
}

// Canonical coaching text per sport and zone. Pairs outside this table fall
// back to a templated sentence.
var placeholderDescriptions = map[sportZone]string{
	{domain.DisciplineSwim, 1}: "Easy recovery swim. Focus on smooth technique and relaxed breathing.",
	{domain.DisciplineSwim, 2}: "Aerobic swim. Focus on bilateral breathing and a long catch. Keep effort conversational.",
	{domain.DisciplineSwim, 3}: "Tempo swim. Maintain steady effort with good form. Push pace slightly above comfortable.",
	{domain.DisciplineSwim, 4}: "Threshold swim intervals. Hard effort with structured rest. Focus on holding pace.",
	{domain.DisciplineSwim, 5}: "VO2max swim set. Short, fast repeats with full recovery between efforts.",
	{domain.DisciplineBike, 1}: "Easy recovery spin. Keep cadence light and legs loose.",
	{domain.DisciplineBike, 2}: "Aerobic endurance ride. Steady effort, should be able to hold a conversation.",
	{domain.DisciplineBike, 3}: "Tempo ride. Maintain steady power in Zone 3. Practice race-day nutrition.",
	{domain.DisciplineBike, 4}: "Threshold intervals on the bike. Sustained hard effort near FTP.",
	{domain.DisciplineBike, 5}: "VO2max bike intervals. Short, maximal efforts with recovery between.",
	{domain.DisciplineRun, 1}:  "Easy recovery jog. Keep it very relaxed, walk breaks are fine.",
	{domain.DisciplineRun, 2}:  "Easy aerobic run. Conversational pace, focus on cadence ~170-180 spm.",
	{domain.DisciplineRun, 3}:  "Tempo run. Comfortably hard effort, steady pace throughout.",
	{domain.DisciplineRun, 4}:  "Threshold run intervals. Hard effort at lactate threshold pace.",
	{domain.DisciplineRun, 5}:  "VO2max run repeats. Fast intervals with full recovery.",
}

// sessionDescription returns the coaching text for a sport/zone pair.
func sessionDescription(sport domain.Discipline, zone int) string {
	if desc, ok := placeholderDescriptions[sportZone{sport, zone}]; ok {
		return desc
	}
	return fmt.Sprintf("Zone %d %s session. Maintain target intensity throughout.", zone, sport)
}
