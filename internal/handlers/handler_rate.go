package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
	"github.com/jdvillegas/condo_mgmt_app/internal/middleware"
)

// defaultHistoryLimit bounds a history listing when the client gives none.
const defaultHistoryLimit = 30

// rateHandler handles HTTP requests related to exchange-rate samples.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to exchange rates. Reads are
// open to any authenticated user; recording and syncing are admin-only.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/:code/latest", h.latestRate)
		rates.GET("/:code/history", h.rateHistory)
		rates.GET("/:code/trend", h.rateTrend)
	}

	admin := rg.Group("/rates", middleware.RequireAdmin())
	{
		admin.POST("", h.recordSample)
		admin.POST("/sync", h.syncNow)
	}
}

// latestRate godoc
// @Summary Get the latest exchange rate
// @Description Retrieves the most recent rate sample for a currency
// @Tags rates
// @Produce  json
// @Param   code path string true "Currency code (3 letters)"
// @Success 200 {object} dto.RateSampleResponse
// @Failure 404 {object} map[string]string "No samples recorded"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Security BearerAuth
// @Router /rates/{code}/latest [get]
func (h *rateHandler) latestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("code"))

	sample, err := h.rateService.Latest(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate samples recorded for " + code})
		} else {
			logger.Error("Failed to get latest rate", slog.String("currency", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRateSampleResponse(sample))
}

// rateHistory godoc
// @Summary List recent exchange-rate samples
// @Description Retrieves up to limit samples, most recent first
// @Tags rates
// @Produce  json
// @Param   code path string true "Currency code (3 letters)"
// @Param   limit query int false "Maximum samples to return" default(30)
// @Success 200 {array} dto.RateSampleResponse
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 500 {object} map[string]string "Failed to retrieve history"
// @Security BearerAuth
// @Router /rates/{code}/history [get]
func (h *rateHandler) rateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("code"))

	limit := defaultHistoryLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit: " + limitStr})
			return
		}
		limit = parsed
	}

	samples, err := h.rateService.History(c.Request.Context(), code, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get rate history", slog.String("currency", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListRateSampleResponse(samples))
}

// rateTrend godoc
// @Summary Get the exchange-rate trend
// @Description Compares the two newest samples. Returns 204 when fewer than two samples exist.
// @Tags rates
// @Produce  json
// @Param   code path string true "Currency code (3 letters)"
// @Success 200 {object} dto.RateTrendResponse
// @Success 204 "Not enough samples for a trend"
// @Failure 500 {object} map[string]string "Failed to compute trend"
// @Security BearerAuth
// @Router /rates/{code}/trend [get]
func (h *rateHandler) rateTrend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("code"))

	trend, err := h.rateService.Trend(c.Request.Context(), code)
	if err != nil {
		logger.Error("Failed to compute rate trend", slog.String("currency", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trend"})
		return
	}
	if trend == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.RateTrendResponse{
		Direction:     trend.Direction,
		PercentChange: trend.PercentChange,
	})
}

// recordSample godoc
// @Summary Record an exchange-rate sample
// @Description Appends a manually observed rate to the time series (admin operation)
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   sample body dto.RecordRateSampleRequest true "Sample details"
// @Success 201 {object} dto.RateSampleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to record sample"
// @Security BearerAuth
// @Router /rates [post]
func (h *rateHandler) recordSample(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordRateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSample", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sample, err := h.rateService.RecordSample(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record rate sample", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sample"})
		}
		return
	}

	logger.Info("Rate sample recorded",
		slog.String("currency", sample.CurrencyCode),
		slog.String("value", sample.Value.String()),
	)
	c.JSON(http.StatusCreated, dto.ToRateSampleResponse(sample))
}

// syncNow godoc
// @Summary Trigger an immediate rate sync
// @Description Fetches the current dollar rate from the external source and records it. On upstream failure returns the configured fallback value without recording it.
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RateSampleResponse
// @Failure 500 {object} map[string]string "Failed to sync rate"
// @Security BearerAuth
// @Router /rates/sync [post]
func (h *rateHandler) syncNow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sample, err := h.rateService.SyncNow(c.Request.Context())
	if err != nil {
		logger.Error("Failed to sync rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateSampleResponse(sample))
}
