package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
	"github.com/dayatwork/sismo-v2-sub002/internal/middleware"
)

// trackerHandler handles HTTP requests related to time trackers.
type trackerHandler struct {
	trackerService portssvc.TrackerSvcFacade
}

// newTrackerHandler creates a new trackerHandler.
func newTrackerHandler(ts portssvc.TrackerSvcFacade) *trackerHandler {
	return &trackerHandler{trackerService: ts}
}

// registerTrackerRoutes registers time tracker routes nested under a specific organization.
func registerTrackerRoutes(rg *gin.RouterGroup, trackerService portssvc.TrackerSvcFacade) {
	h := newTrackerHandler(trackerService)

	trackers := rg.Group("/trackers")
	{
		trackers.POST("/start", h.startTracker)
		trackers.POST("/stop", h.stopTracker)
		trackers.GET("", h.listTrackers)
		trackers.GET("/summary", h.summarizeTrackers)
	}
}

// mapTrackerError translates service errors shared across tracker endpoints.
func mapTrackerError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No tracker found"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// trackerRange parses the required from/to query range.
func trackerRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// startTracker godoc
// @Summary Start a time tracker
// @Description Starts a tracker for the calling user. Only one tracker may run at a time.
// @Tags trackers
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param tracker body dto.StartTrackerRequest true "Task note"
// @Success 201 {object} dto.TrackerResponse
// @Failure 400 {object} ErrorResponse "A tracker is already running"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/trackers/start [post]
func (h *trackerHandler) startTracker(c *gin.Context) {
	var req dto.StartTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tracker, err := h.trackerService.StartTracker(c.Request.Context(), c.Param("organizationID"), userID, req.TaskNote)
	if err != nil {
		mapTrackerError(c, err, "start tracker")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTrackerResponse(tracker, time.Now()))
}

// stopTracker godoc
// @Summary Stop the running tracker
// @Description Stops the calling user's running tracker.
// @Tags trackers
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.TrackerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No tracker is running"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/trackers/stop [post]
func (h *trackerHandler) stopTracker(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tracker, err := h.trackerService.StopTracker(c.Request.Context(), c.Param("organizationID"), userID)
	if err != nil {
		mapTrackerError(c, err, "stop tracker")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrackerResponse(tracker, time.Now()))
}

// listTrackers godoc
// @Summary List tracker items
// @Description Retrieves the calling user's tracker items overlapping the given range.
// @Tags trackers
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "End date (YYYY-MM-DD, exclusive)"
// @Success 200 {array} dto.TrackerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/trackers [get]
func (h *trackerHandler) listTrackers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	from, to, ok := trackerRange(c)
	if !ok {
		return
	}

	trackers, err := h.trackerService.ListTrackers(c.Request.Context(), c.Param("organizationID"), userID, from, to)
	if err != nil {
		mapTrackerError(c, err, "list trackers")
		return
	}

	now := time.Now()
	responses := make([]dto.TrackerResponse, len(trackers))
	for i, tracker := range trackers {
		responses[i] = dto.ToTrackerResponse(&tracker, now)
	}
	c.JSON(http.StatusOK, responses)
}

// summarizeTrackers godoc
// @Summary Summarize tracked time
// @Description Aggregates the calling user's tracked durations over the given range.
// @Tags trackers
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "End date (YYYY-MM-DD, exclusive)"
// @Success 200 {object} dto.TrackerSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/trackers/summary [get]
func (h *trackerHandler) summarizeTrackers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	from, to, ok := trackerRange(c)
	if !ok {
		return
	}

	summary, err := h.trackerService.Summarize(c.Request.Context(), c.Param("organizationID"), userID, from, to)
	if err != nil {
		mapTrackerError(c, err, "summarize trackers")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrackerSummaryResponse(summary))
}
