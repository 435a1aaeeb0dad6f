package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/plangen"
	"thryveiq/coaching-app/internal/service"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Response Structs ---

type PlanResponse struct {
	ID             string           `json:"id"`
	WeeksUntilRace int              `json:"weeks_until_race"`
	Sessions       []domain.Session `json:"sessions"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

type WeekResponse struct {
	Week     int              `json:"week"`
	Sessions []domain.Session `json:"sessions"`
}

type ExportResponse struct {
	DownloadURL string `json:"download_url"`
}

// --- Handler Methods ---

// GeneratePlan builds a fresh training plan for the athlete, superseding any
// prior plan.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	plan, err := h.planService.Generate(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, "Save an athlete profile before generating a plan")
		case errors.Is(err, plangen.ErrInvalidDaysAvailable),
			errors.Is(err, plangen.ErrInvalidWeeklyHours),
			errors.Is(err, plangen.ErrInvalidDiscipline),
			errors.Is(err, plangen.ErrSameDiscipline):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// GetCurrentPlan returns the athlete's stored plan.
func (h *PlanHandler) GetCurrentPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	plan, err := h.planService.GetCurrent(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		}
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// GetPlanWeek returns the sessions of a single plan week.
func (h *PlanHandler) GetPlanWeek(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		abortWithError(c, http.StatusBadRequest, "week must be a positive integer")
		return
	}

	sessions, err := h.planService.GetWeek(c.Request.Context(), userID, week)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) || errors.Is(err, service.ErrWeekNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan week")
		}
		return
	}

	c.JSON(http.StatusOK, WeekResponse{Week: week, Sessions: sessions})
}

// ExportPlan snapshots the current plan to object storage and returns a
// temporary download URL.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	url, err := h.planService.Export(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExportUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to export plan")
		}
		return
	}

	c.JSON(http.StatusOK, ExportResponse{DownloadURL: url})
}

// MapPlanToResponse converts a domain Plan to its DTO.
func MapPlanToResponse(plan *domain.Plan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:             plan.ID.Hex(),
		WeeksUntilRace: plan.WeeksUntilRace,
		Sessions:       plan.Sessions,
		GeneratedAt:    plan.GeneratedAt,
	}
}
