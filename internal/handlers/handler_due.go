package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
	"github.com/jdvillegas/condo_mgmt_app/internal/middleware"
)

// dueHandler handles HTTP requests related to due records.
type dueHandler struct {
	dueService portssvc.DueSvcFacade
}

// newDueHandler creates a new dueHandler.
func newDueHandler(ds portssvc.DueSvcFacade) *dueHandler {
	return &dueHandler{
		dueService: ds,
	}
}

// registerDueRoutes registers routes related to due records. Write routes
// are admin-only; owners may read.
func registerDueRoutes(rg *gin.RouterGroup, dueService portssvc.DueSvcFacade) {
	h := newDueHandler(dueService)

	dues := rg.Group("/dues")
	{
		dues.GET("", h.listDues)
		dues.GET("/:dueID", h.getDue)
	}

	admin := rg.Group("/dues", middleware.RequireAdmin())
	{
		admin.POST("", h.createDue)
		admin.POST("/bulk", h.bulkGenerateDues)
		admin.PATCH("/:dueID/status", h.updateDueStatus)
		admin.DELETE("/:dueID", h.deleteDue)
	}
}

// createDue godoc
// @Summary Create a due record
// @Description Issues a single billing obligation against a unit (admin operation)
// @Tags dues
// @Accept  json
// @Produce  json
// @Param   due body dto.CreateDueRequest true "Due details"
// @Success 201 {object} dto.DueResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 500 {object} map[string]string "Failed to create due"
// @Security BearerAuth
// @Router /dues [post]
func (h *dueHandler) createDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	due, err := h.dueService.CreateDue(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		} else if errors.Is(err, apperrors.ErrInvalidAmount) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create due", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create due"})
		}
		return
	}

	logger.Info("Due created", slog.String("due_id", due.DueID), slog.String("unit_id", due.UnitID))
	c.JSON(http.StatusCreated, dto.ToDueResponse(due, time.Now()))
}

// bulkGenerateDues godoc
// @Summary Generate dues for every unit
// @Description Splits a building-wide expense across all units pro-rata by share fraction (admin operation). Items commit independently; inspect per-item errors.
// @Tags dues
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkGenerateDuesRequest true "Bulk generation details"
// @Success 200 {array} domain.BulkGenerateItem
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate dues"
// @Security BearerAuth
// @Router /dues/bulk [post]
func (h *dueHandler) bulkGenerateDues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkGenerateDuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkGenerateDues", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := h.dueService.BulkGenerateDues(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to bulk generate dues", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate dues"})
		}
		return
	}

	logger.Info("Bulk due generation completed", slog.Int("items", len(items)))
	c.JSON(http.StatusOK, items)
}

// getDue godoc
// @Summary Get a due record
// @Description Retrieves one due record; the status field is effective, so elapsed pending dues read as OVERDUE
// @Tags dues
// @Produce  json
// @Param   dueID path string true "Due ID"
// @Success 200 {object} dto.DueResponse
// @Failure 404 {object} map[string]string "Due not found"
// @Failure 500 {object} map[string]string "Failed to retrieve due"
// @Security BearerAuth
// @Router /dues/{dueID} [get]
func (h *dueHandler) getDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dueID := c.Param("dueID")

	due, err := h.dueService.GetDue(c.Request.Context(), dueID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Due not found"})
		} else {
			logger.Error("Failed to get due", slog.String("due_id", dueID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve due"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDueResponse(due, time.Now()))
}

// listDues godoc
// @Summary List due records
// @Description Lists dues filtered by owner, unit, status and month. An OVERDUE status filter selects pending dues whose date has passed.
// @Tags dues
// @Produce  json
// @Param   ownerID query string false "Filter by owner"
// @Param   unitID query string false "Filter by unit"
// @Param   status query string false "Filter by effective status" Enums(PENDING, IN_REVIEW, PAID, OVERDUE)
// @Param   month query string false "Filter by due month (YYYY-MM)"
// @Success 200 {array} dto.DueResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to list dues"
// @Security BearerAuth
// @Router /dues [get]
func (h *dueHandler) listDues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListDuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListDues", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return
	}

	dues, err := h.dueService.ListDues(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list dues", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list dues"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListDueResponse(dues, time.Now()))
}

// updateDueStatus godoc
// @Summary Manually transition a due's status
// @Description Applies an administrator status correction under the ledger state machine. OVERDUE can not be stored.
// @Tags dues
// @Accept  json
// @Produce  json
// @Param   dueID path string true "Due ID"
// @Param   request body dto.UpdateDueStatusRequest true "Target status"
// @Success 200 {object} dto.DueResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Due not found"
// @Failure 409 {object} map[string]string "Transition not allowed from current status"
// @Failure 500 {object} map[string]string "Failed to update due"
// @Security BearerAuth
// @Router /dues/{dueID}/status [patch]
func (h *dueHandler) updateDueStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dueID := c.Param("dueID")

	var req dto.UpdateDueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDueStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	due, err := h.dueService.UpdateDueStatus(c.Request.Context(), dueID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Due not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update due status", slog.String("due_id", dueID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update due"})
		}
		return
	}

	logger.Info("Due status updated", slog.String("due_id", dueID), slog.String("status", string(due.Status)))
	c.JSON(http.StatusOK, dto.ToDueResponse(due, time.Now()))
}

// deleteDue godoc
// @Summary Delete a due record
// @Description Removes a due that has no payment history (admin operation)
// @Tags dues
// @Produce  json
// @Param   dueID path string true "Due ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Due not found"
// @Failure 409 {object} map[string]string "Due has payment history"
// @Failure 500 {object} map[string]string "Failed to delete due"
// @Security BearerAuth
// @Router /dues/{dueID} [delete]
func (h *dueHandler) deleteDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dueID := c.Param("dueID")

	if err := h.dueService.DeleteDue(c.Request.Context(), dueID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Due not found"})
		} else if errors.Is(err, apperrors.ErrHasDependents) {
			c.JSON(http.StatusConflict, gin.H{"error": "Due has payment history and can not be deleted"})
		} else {
			logger.Error("Failed to delete due", slog.String("due_id", dueID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete due"})
		}
		return
	}

	logger.Info("Due deleted", slog.String("due_id", dueID))
	c.Status(http.StatusNoContent)
}
