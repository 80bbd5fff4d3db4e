package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
	"github.com/dayatwork/sismo-v2-sub002/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	accountService portssvc.AccountSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, as portssvc.AccountSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
		accountService: as,
	}
}

// registerJournalRoutes registers journal entry routes nested under a specific organization.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newJournalHandler(journalService, accountService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// mapJournalError translates service errors shared across journal endpoints.
func mapJournalError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, services.ErrEntryMinAccounts),
		errors.Is(err, services.ErrDescriptionMissing),
		errors.Is(err, services.ErrCurrencyMismatch),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Entry not found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// normalBalancesForLines resolves the normal balance side per account so the
// response can carry display amounts. Lookup failures just omit them.
func (h *journalHandler) normalBalancesForLines(c *gin.Context, organizationID string, lines []domain.EntryLine, userID string) map[string]domain.NormalBalance {
	idSet := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, seen := idSet[line.AccountID]; !seen {
			idSet[line.AccountID] = struct{}{}
			ids = append(ids, line.AccountID)
		}
	}

	accounts, err := h.accountService.GetAccountsByIDs(c.Request.Context(), organizationID, ids, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to resolve accounts for display amounts", slog.String("error", err.Error()))
		return nil
	}

	normalBalances := make(map[string]domain.NormalBalance, len(accounts))
	for id, account := range accounts {
		normalBalances[id] = account.NormalBalance
	}
	return normalBalances
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Validates and posts a balanced journal entry. Requires the manage:finance permission.
// @Tags journal
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param entry body dto.CreateEntryRequest true "Entry with its lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	organizationID := c.Param("organizationID")
	entry, err := h.journalService.CreateEntry(c.Request.Context(), organizationID, req, creatorUserID)
	if err != nil {
		mapJournalError(c, err, "create entry")
		return
	}

	// Re-read to pick up the persisted lines.
	created, lines, err := h.journalService.GetEntry(c.Request.Context(), organizationID, entry.EntryID, creatorUserID)
	if err != nil {
		c.JSON(http.StatusCreated, dto.ToEntryResponse(entry, nil, nil))
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(created, lines, h.normalBalancesForLines(c, organizationID, lines, creatorUserID)))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a page of the organization's journal entries, newest first. Reversed entries are hidden unless includeReversals is set.
// @Tags journal
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param limit query int false "Max results" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Param includeReversals query bool false "Include reversed entries" default(false)
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	entries, nextToken, err := h.journalService.ListEntries(c.Request.Context(), c.Param("organizationID"), params, userID)
	if err != nil {
		mapJournalError(c, err, "list entries")
		return
	}

	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i, entry := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entry, nil, nil)
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get journal entry by ID
// @Description Retrieves a journal entry with its lines and display amounts.
// @Tags journal
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	organizationID := c.Param("organizationID")
	entry, lines, err := h.journalService.GetEntry(c.Request.Context(), organizationID, c.Param("entryID"), userID)
	if err != nil {
		mapJournalError(c, err, "get entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry, lines, h.normalBalancesForLines(c, organizationID, lines, userID)))
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Creates a reversing entry with swapped sides and marks the original as reversed. Requires the manage:finance permission.
// @Tags journal
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param entryID path string true "Entry ID"
// @Success 201 {object} dto.EntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry already reversed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/entries/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	organizationID := c.Param("organizationID")
	reversing, err := h.journalService.ReverseEntry(c.Request.Context(), organizationID, c.Param("entryID"), userID)
	if err != nil {
		mapJournalError(c, err, "reverse entry")
		return
	}

	created, lines, err := h.journalService.GetEntry(c.Request.Context(), organizationID, reversing.EntryID, userID)
	if err != nil {
		c.JSON(http.StatusCreated, dto.ToEntryResponse(reversing, nil, nil))
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(created, lines, h.normalBalancesForLines(c, organizationID, lines, userID)))
}
