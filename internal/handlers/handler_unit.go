package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
	"github.com/jdvillegas/condo_mgmt_app/internal/middleware"
)

// unitHandler handles HTTP requests related to apartment units.
type unitHandler struct {
	unitService portssvc.UnitSvcFacade
}

// newUnitHandler creates a new unitHandler.
func newUnitHandler(us portssvc.UnitSvcFacade) *unitHandler {
	return &unitHandler{
		unitService: us,
	}
}

// registerUnitRoutes registers routes related to units. Writes are admin-only.
func registerUnitRoutes(rg *gin.RouterGroup, unitService portssvc.UnitSvcFacade) {
	h := newUnitHandler(unitService)

	units := rg.Group("/units")
	{
		units.GET("", h.listUnits)
		units.GET("/:unitID", h.getUnit)
	}

	admin := rg.Group("/units", middleware.RequireAdmin())
	{
		admin.POST("", h.createUnit)
		admin.PATCH("/:unitID", h.updateUnit)
		admin.DELETE("/:unitID", h.deleteUnit)
	}
}

// createUnit godoc
// @Summary Register an apartment unit
// @Description Creates a unit with its expense share fraction (admin operation)
// @Tags units
// @Accept  json
// @Produce  json
// @Param   unit body dto.CreateUnitRequest true "Unit details"
// @Success 201 {object} dto.UnitResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Unit number already exists"
// @Failure 500 {object} map[string]string "Failed to create unit"
// @Security BearerAuth
// @Router /units [post]
func (h *unitHandler) createUnit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateUnit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Unit number already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Owner not found"})
		} else {
			logger.Error("Failed to create unit", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create unit"})
		}
		return
	}

	logger.Info("Unit created", slog.String("unit_id", unit.UnitID), slog.String("number", unit.Number))
	c.JSON(http.StatusCreated, dto.ToUnitResponse(unit))
}

// getUnit godoc
// @Summary Get a unit
// @Tags units
// @Produce  json
// @Param   unitID path string true "Unit ID"
// @Success 200 {object} dto.UnitResponse
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 500 {object} map[string]string "Failed to retrieve unit"
// @Security BearerAuth
// @Router /units/{unitID} [get]
func (h *unitHandler) getUnit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	unitID := c.Param("unitID")

	unit, err := h.unitService.GetUnit(c.Request.Context(), unitID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		} else {
			logger.Error("Failed to get unit", slog.String("unit_id", unitID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve unit"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUnitResponse(unit))
}

// listUnits godoc
// @Summary List all units
// @Tags units
// @Produce  json
// @Success 200 {array} dto.UnitResponse
// @Failure 500 {object} map[string]string "Failed to list units"
// @Security BearerAuth
// @Router /units [get]
func (h *unitHandler) listUnits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	units, err := h.unitService.ListUnits(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list units", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list units"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListUnitResponse(units))
}

// updateUnit godoc
// @Summary Update a unit
// @Description Applies the non-nil fields. Share changes only affect future generations; owner changes only affect future dues (admin operation).
// @Tags units
// @Accept  json
// @Produce  json
// @Param   unitID path string true "Unit ID"
// @Param   unit body dto.UpdateUnitRequest true "Fields to update"
// @Success 200 {object} dto.UnitResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 409 {object} map[string]string "Unit number already exists"
// @Failure 500 {object} map[string]string "Failed to update unit"
// @Security BearerAuth
// @Router /units/{unitID} [patch]
func (h *unitHandler) updateUnit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	unitID := c.Param("unitID")

	var req dto.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUnit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	unit, err := h.unitService.UpdateUnit(c.Request.Context(), unitID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Unit number already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update unit", slog.String("unit_id", unitID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update unit"})
		}
		return
	}

	logger.Info("Unit updated", slog.String("unit_id", unitID))
	c.JSON(http.StatusOK, dto.ToUnitResponse(unit))
}

// deleteUnit godoc
// @Summary Delete a unit
// @Description Removes a unit no due references (admin operation)
// @Tags units
// @Produce  json
// @Param   unitID path string true "Unit ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 409 {object} map[string]string "Dues still reference the unit"
// @Failure 500 {object} map[string]string "Failed to delete unit"
// @Security BearerAuth
// @Router /units/{unitID} [delete]
func (h *unitHandler) deleteUnit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	unitID := c.Param("unitID")

	if err := h.unitService.DeleteUnit(c.Request.Context(), unitID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		} else if errors.Is(err, apperrors.ErrHasDependents) {
			c.JSON(http.StatusConflict, gin.H{"error": "Dues still reference this unit"})
		} else {
			logger.Error("Failed to delete unit", slog.String("unit_id", unitID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete unit"})
		}
		return
	}

	logger.Info("Unit deleted", slog.String("unit_id", unitID))
	c.Status(http.StatusNoContent)
}
