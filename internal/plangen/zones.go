// internal/plangen/zones.go
package plangen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"thryveiq/coaching-app/internal/domain"
)

// Defaults substituted when a benchmark is unknown (zero / empty). These cover
// a recreational triathlete; caller-supplied but invalid values are errors,
// never silently replaced.
const (
	DefaultFTP  = 200    // watts
	DefaultLTHR = 155    // bpm
	DefaultCSS  = "5:00" // per km
)

// ParsePace parses a "MM:SS" pace string into total seconds per km.
func ParsePace(pace string) (int, error) {
	parts := strings.Split(strings.TrimSpace(pace), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pace format %q: expected \"MM:SS\"", pace)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid pace format %q: expected \"MM:SS\"", pace)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("invalid pace format %q: expected \"MM:SS\"", pace)
	}
	return minutes*60 + seconds, nil
}

// FormatPace converts total seconds per km back to a "MM:SS" pace string.
func FormatPace(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ComputeZones derives the three five-zone tables from an athlete's threshold
// benchmarks.
//
// HR zones use the 5-zone model anchored at LTHR; power zones the 5-zone
// Coggan model anchored at FTP; pace zones are anchored at threshold pace
// (CSS). Pass ftp/lthr <= 0 or an empty css to get the defaults. A malformed
// css string is an error.
func ComputeZones(ftp, lthr int, css string) (*domain.ZoneTables, error) {
	if lthr <= 0 {
		lthr = DefaultLTHR
	}
	if ftp <= 0 {
		ftp = DefaultFTP
	}
	if strings.TrimSpace(css) == "" {
		css = DefaultCSS
	}
	cssSec, err := ParsePace(css)
	if err != nil {
		return nil, err
	}

	hrZones := map[string]domain.ZoneRange{
		"Z1": {Label: "Recovery", Min: nil, Max: pctOf(lthr, 0.84)},
		"Z2": {Label: "Aerobic", Min: pctOf(lthr, 0.85), Max: pctOf(lthr, 0.89)},
		"Z3": {Label: "Tempo", Min: pctOf(lthr, 0.90), Max: pctOf(lthr, 0.94)},
		"Z4": {Label: "Threshold", Min: pctOf(lthr, 0.95), Max: pctOf(lthr, 0.99)},
		"Z5": {Label: "VO2max", Min: pctOf(lthr, 1.00), Max: nil},
	}

	powerZones := map[string]domain.ZoneRange{
		"Z1": {Label: "Recovery", Min: nil, Max: pctOf(ftp, 0.55)},
		"Z2": {Label: "Endurance", Min: pctOf(ftp, 0.56), Max: pctOf(ftp, 0.75)},
		"Z3": {Label: "Tempo", Min: pctOf(ftp, 0.76), Max: pctOf(ftp, 0.90)},
		"Z4": {Label: "Threshold", Min: pctOf(ftp, 0.91), Max: pctOf(ftp, 1.05)},
		"Z5": {Label: "VO2max+", Min: pctOf(ftp, 1.06), Max: nil},
	}

	// MinPace is the slow boundary (more seconds), MaxPace the fast boundary.
	// Z4's fast boundary is the CSS anchor itself, as supplied.
	paceZones := map[string]domain.PaceZoneRange{
		"Z1": {Label: "Recovery", MinPace: nil, MaxPace: pacePct(cssSec, 1.25)},
		"Z2": {Label: "Aerobic", MinPace: pacePct(cssSec, 1.25), MaxPace: pacePct(cssSec, 1.10)},
		"Z3": {Label: "Tempo", MinPace: pacePct(cssSec, 1.10), MaxPace: pacePct(cssSec, 1.00)},
		"Z4": {Label: "Threshold", MinPace: pacePct(cssSec, 1.05), MaxPace: &css},
		"Z5": {Label: "VO2max", MinPace: pacePct(cssSec, 0.95), MaxPace: nil},
	}

	return &domain.ZoneTables{
		PowerZones: powerZones,
		HRZones:    hrZones,
		PaceZones:  paceZones,
		Inputs:     domain.ZoneThresholds{FTP: ftp, LTHR: lthr, CSS: css},
	}, nil
}

func pctOf(base int, pct float64) *int {
	v := int(math.Round(float64(base) * pct))
	return &v
}

func pacePct(cssSec int, pct float64) *string {
	p := FormatPace(int(math.Round(float64(cssSec) * pct)))
	return &p
}
