package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thryveiq/coaching-app/internal/service"
)

// StravaHandler holds the Strava service dependency.
type StravaHandler struct {
	stravaService service.StravaService
}

// NewStravaHandler creates a new StravaHandler.
func NewStravaHandler(stravaService service.StravaService) *StravaHandler {
	return &StravaHandler{stravaService: stravaService}
}

// --- Request Structs ---

type StravaExchangeRequest struct {
	Code string `json:"code" binding:"required"` // OAuth authorization code
}

// --- Handler Methods ---

// Exchange trades a Strava authorization code for tokens and links the
// athlete's account.
func (h *StravaHandler) Exchange(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req StravaExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	status, err := h.stravaService.Exchange(c.Request.Context(), userID, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrStravaExchangeFailed) {
			abortWithError(c, http.StatusBadGateway, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to connect Strava account")
		}
		return
	}

	c.JSON(http.StatusOK, status)
}

// Status reports whether the athlete's Strava account is linked.
func (h *StravaHandler) Status(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	status, err := h.stravaService.Status(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load Strava connection")
		return
	}

	c.JSON(http.StatusOK, status)
}

// Disconnect removes the athlete's stored Strava tokens.
func (h *StravaHandler) Disconnect(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.stravaService.Disconnect(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrStravaNotConnected) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to disconnect Strava account")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Strava account disconnected"})
}

// RecentActivities lists the athlete's latest Strava activities.
func (h *StravaHandler) RecentActivities(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	perPage := 10
	if raw := c.Query("per_page"); raw != "" {
		perPage, err = strconv.Atoi(raw)
		if err != nil || perPage < 1 {
			abortWithError(c, http.StatusBadRequest, "per_page must be a positive integer")
			return
		}
	}

	activities, err := h.stravaService.GetRecentActivities(c.Request.Context(), userID, perPage)
	if err != nil {
		if errors.Is(err, service.ErrStravaNotConnected) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusBadGateway, "Failed to fetch Strava activities")
		}
		return
	}

	c.JSON(http.StatusOK, activities)
}
