package services

import (
	"context"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
)

// ReconciliationSvcFacade converts declared local-currency payments into
// ledger effects and drives the administrator review flow.
type ReconciliationSvcFacade interface {
	// SubmitPayment records an owner's declared payment against one due,
	// classifies it and moves the due to IN_REVIEW.
	SubmitPayment(ctx context.Context, req dto.SubmitPaymentRequest, submitterUserID string) (*domain.ReconciliationResult, error)

	// SubmitBulkPayment distributes one declared amount across the dues in
	// the order given, greedily until the amount runs out. Unfunded dues
	// are left untouched.
	SubmitBulkPayment(ctx context.Context, req dto.SubmitBulkPaymentRequest, submitterUserID string) ([]domain.BulkPaymentItem, error)

	// Approve confirms a declared payment: IN_REVIEW -> PAID, applying the
	// partial-remainder or over-payment credit side effects.
	Approve(ctx context.Context, dueID string, approverUserID string) (*domain.Due, error)

	// Reject returns a declared payment to PENDING and clears the declared
	// metadata. The receipt reference survives only when retainReceipt is set.
	Reject(ctx context.Context, dueID string, retainReceipt bool, rejecterUserID string) (*domain.Due, error)
}

// BalanceSvcFacade derives owner balances from the ledger.
type BalanceSvcFacade interface {
	// ComputeBalance derives the owner's net USD position from every due
	// ever issued and every recorded payment.
	ComputeBalance(ctx context.Context, ownerID string) (*domain.BalanceSummary, error)
}
