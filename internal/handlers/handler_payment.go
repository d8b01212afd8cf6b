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

// paymentHandler handles declared-payment submission and the admin review flow.
type paymentHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(rs portssvc.ReconciliationSvcFacade) *paymentHandler {
	return &paymentHandler{
		reconciliationService: rs,
	}
}

// registerPaymentRoutes registers routes related to payment declaration and
// review. Submission is open to any authenticated user; approval and
// rejection are admin-only.
func registerPaymentRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newPaymentHandler(reconciliationService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.submitPayment)
		payments.POST("/bulk", h.submitBulkPayment)
	}

	review := rg.Group("/payments", middleware.RequireAdmin())
	{
		review.POST("/:dueID/approve", h.approvePayment)
		review.POST("/:dueID/reject", h.rejectPayment)
	}
}

// submitPayment godoc
// @Summary Declare a payment against a due
// @Description Records a local-currency bank transfer against one pending due, classifies it and moves the due to IN_REVIEW
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.SubmitPaymentRequest true "Declared payment details"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid amount or rate"
// @Failure 404 {object} map[string]string "Due not found"
// @Failure 409 {object} map[string]string "Due is not payable"
// @Failure 500 {object} map[string]string "Failed to submit payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) submitPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	submitterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Submitter user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reconciliationService.SubmitPayment(c.Request.Context(), req, submitterUserID)
	if err != nil {
		h.writeReconciliationError(c, logger, err, "Failed to submit payment")
		return
	}

	logger.Info("Payment submitted",
		slog.String("due_id", result.DueID),
		slog.String("classification", string(result.Classification)),
	)
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(result))
}

// submitBulkPayment godoc
// @Summary Declare one payment covering several dues
// @Description Distributes a single declared amount across the listed dues in order, funding whole dues greedily. Leftover attaches to the last funded due as an over-payment.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.SubmitBulkPaymentRequest true "Declared bulk payment details"
// @Success 200 {array} domain.BulkPaymentItem
// @Failure 400 {object} map[string]string "Invalid amount, rate or due list"
// @Failure 404 {object} map[string]string "A listed due was not found"
// @Failure 409 {object} map[string]string "A listed due is not payable"
// @Failure 500 {object} map[string]string "Failed to submit bulk payment"
// @Security BearerAuth
// @Router /payments/bulk [post]
func (h *paymentHandler) submitBulkPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitBulkPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitBulkPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	submitterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Submitter user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := h.reconciliationService.SubmitBulkPayment(c.Request.Context(), req, submitterUserID)
	if err != nil {
		h.writeReconciliationError(c, logger, err, "Failed to submit bulk payment")
		return
	}

	logger.Info("Bulk payment submitted", slog.Int("items", len(items)))
	c.JSON(http.StatusOK, items)
}

// approvePayment godoc
// @Summary Approve a declared payment
// @Description Confirms an IN_REVIEW payment: the due becomes PAID; a partial payment issues a remainder due and an over-payment credits the owner's balance (admin operation)
// @Tags payments
// @Produce  json
// @Param   dueID path string true "Due ID"
// @Success 200 {object} dto.DueResponse
// @Failure 404 {object} map[string]string "Due not found"
// @Failure 409 {object} map[string]string "Due is not in review"
// @Failure 500 {object} map[string]string "Failed to approve payment"
// @Security BearerAuth
// @Router /payments/{dueID}/approve [post]
func (h *paymentHandler) approvePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dueID := c.Param("dueID")

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	due, err := h.reconciliationService.Approve(c.Request.Context(), dueID, approverUserID)
	if err != nil {
		h.writeReconciliationError(c, logger, err, "Failed to approve payment")
		return
	}

	logger.Info("Payment approved", slog.String("due_id", dueID))
	c.JSON(http.StatusOK, dto.ToDueResponse(due, time.Now()))
}

// rejectPayment godoc
// @Summary Reject a declared payment
// @Description Returns an IN_REVIEW due to PENDING and clears the declared metadata; the receipt reference is kept only when retainReceipt is set (admin operation)
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   dueID path string true "Due ID"
// @Param   request body dto.RejectPaymentRequest false "Rejection options"
// @Success 200 {object} dto.DueResponse
// @Failure 404 {object} map[string]string "Due not found"
// @Failure 409 {object} map[string]string "Due is not in review"
// @Failure 500 {object} map[string]string "Failed to reject payment"
// @Security BearerAuth
// @Router /payments/{dueID}/reject [post]
func (h *paymentHandler) rejectPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dueID := c.Param("dueID")

	// The body is optional; an empty one means default options.
	var req dto.RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = dto.RejectPaymentRequest{}
	}

	rejecterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Rejecter user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	due, err := h.reconciliationService.Reject(c.Request.Context(), dueID, req.RetainReceipt, rejecterUserID)
	if err != nil {
		h.writeReconciliationError(c, logger, err, "Failed to reject payment")
		return
	}

	logger.Info("Payment rejected",
		slog.String("due_id", dueID),
		slog.Bool("retain_receipt", req.RetainReceipt),
	)
	c.JSON(http.StatusOK, dto.ToDueResponse(due, time.Now()))
}

// writeReconciliationError maps reconciliation service errors onto HTTP codes.
func (h *paymentHandler) writeReconciliationError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Due not found"})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrStaleRate),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
