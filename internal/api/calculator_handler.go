package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/plangen"
)

// CalculatorHandler exposes the zone and phase calculators as standalone
// endpoints, without requiring a saved profile.
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// --- Request/Response Structs ---

type ComputeZonesRequest struct {
	FTP  int    `json:"ftp"`  // watts, 0 = unknown
	LTHR int    `json:"lthr"` // bpm, 0 = unknown
	CSS  string `json:"css"`  // "MM:SS", empty = unknown
}

type PhasesResponse struct {
	WeeksUntilRace int            `json:"weeks_until_race"`
	Phases         []domain.Phase `json:"phases"`
}

// --- Handler Methods ---

// ComputeZones derives heart rate, power, and pace zone tables from the
// supplied benchmarks. Unknown benchmarks fall back to conservative defaults.
func (h *CalculatorHandler) ComputeZones(c *gin.Context) {
	var req ComputeZonesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	zones, err := plangen.ComputeZones(req.FTP, req.LTHR, req.CSS)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, zones)
}

// GetPhases segments the time until a race date into training phases.
func (h *CalculatorHandler) GetPhases(c *gin.Context) {
	raceDateStr := c.Query("race_date")
	if raceDateStr == "" {
		abortWithError(c, http.StatusBadRequest, "race_date query parameter is required")
		return
	}
	raceDate, err := time.Parse("2006-01-02", raceDateStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "race_date must be formatted as YYYY-MM-DD")
		return
	}

	today := time.Now().UTC()
	c.JSON(http.StatusOK, PhasesResponse{
		WeeksUntilRace: plangen.WeeksUntilRace(raceDate, today),
		Phases:         plangen.CalculatePhases(raceDate, today),
	})
}
