package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/service"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

type SaveProfileRequest struct {
	Goal                string            `json:"goal" binding:"required"`
	Experience          string            `json:"experience" binding:"required,oneof=first_timer recreational competitive"`
	RaceDate            string            `json:"race_date" binding:"required"` // YYYY-MM-DD
	CurrentBackground   string            `json:"current_background"`
	WeeklyHours         float64           `json:"weekly_hours" binding:"required,gt=0"`
	DaysAvailable       int               `json:"days_available" binding:"required,min=1,max=7"`
	StrongestDiscipline domain.Discipline `json:"strongest_discipline" binding:"required,oneof=swim bike run"`
	WeakestDiscipline   domain.Discipline `json:"weakest_discipline" binding:"required,oneof=swim bike run"`
	FTP                 int               `json:"ftp"`  // watts, 0 = unknown
	LTHR                int               `json:"lthr"` // bpm, 0 = unknown
	CSS                 string            `json:"css"`  // "MM:SS", empty = unknown
}

type ProfileResponse struct {
	ID                  string             `json:"id"`
	Goal                string             `json:"goal"`
	Experience          string             `json:"experience"`
	RaceDate            string             `json:"race_date"`
	CurrentBackground   string             `json:"current_background,omitempty"`
	WeeklyHours         float64            `json:"weekly_hours"`
	DaysAvailable       int                `json:"days_available"`
	StrongestDiscipline domain.Discipline  `json:"strongest_discipline"`
	WeakestDiscipline   domain.Discipline  `json:"weakest_discipline"`
	FTP                 int                `json:"ftp,omitempty"`
	LTHR                int                `json:"lthr,omitempty"`
	CSS                 string             `json:"css,omitempty"`
	Zones               *domain.ZoneTables `json:"zones,omitempty"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

// --- Handler Methods ---

// SaveProfile creates or replaces the athlete's profile and recomputes their
// training zones.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	raceDate, err := time.Parse("2006-01-02", req.RaceDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "race_date must be formatted as YYYY-MM-DD")
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), userID, service.ProfileInput{
		Goal:                req.Goal,
		Experience:          req.Experience,
		RaceDate:            raceDate,
		CurrentBackground:   req.CurrentBackground,
		WeeklyHours:         req.WeeklyHours,
		DaysAvailable:       req.DaysAvailable,
		StrongestDiscipline: req.StrongestDiscipline,
		WeakestDiscipline:   req.WeakestDiscipline,
		FTP:                 req.FTP,
		LTHR:                req.LTHR,
		CSS:                 req.CSS,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) || errors.Is(err, service.ErrInvalidBenchmark) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// GetMyProfile returns the authenticated athlete's profile.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// MapProfileToResponse converts a domain AthleteProfile to its DTO.
func MapProfileToResponse(profile *domain.AthleteProfile) ProfileResponse {
	if profile == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ID:                  profile.ID.Hex(),
		Goal:                profile.Goal,
		Experience:          profile.Experience,
		RaceDate:            profile.RaceDate.Format("2006-01-02"),
		CurrentBackground:   profile.CurrentBackground,
		WeeklyHours:         profile.WeeklyHours,
		DaysAvailable:       profile.DaysAvailable,
		StrongestDiscipline: profile.StrongestDiscipline,
		WeakestDiscipline:   profile.WeakestDiscipline,
		FTP:                 profile.FTP,
		LTHR:                profile.LTHR,
		CSS:                 profile.CSS,
		Zones:               profile.Zones,
		UpdatedAt:           profile.UpdatedAt,
	}
}
