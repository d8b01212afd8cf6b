package dto

import (
	"time"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitPaymentRequest defines an owner's declared payment against one due.
// Amounts are in the local currency; RateUsed is local units per 1 USD.
type SubmitPaymentRequest struct {
	DueID               string              `json:"dueID" binding:"required"`
	DeclaredLocalAmount decimal.Decimal     `json:"declaredLocalAmount" binding:"required"`
	RateUsed            decimal.Decimal     `json:"rateUsed" binding:"required"`
	OperationDate       time.Time           `json:"operationDate" binding:"required"`
	PayerTaxID          string              `json:"payerTaxID" binding:"required"`
	TransferKind        domain.TransferKind `json:"transferKind" binding:"required"`
	PayerEmail          string              `json:"payerEmail" binding:"required,email"`
	ReceiptRef          *string             `json:"receiptRef,omitempty"`
}

// SubmitBulkPaymentRequest declares one payment covering several dues. The
// order of DueIDs decides which obligations consume the amount first.
type SubmitBulkPaymentRequest struct {
	DueIDs              []string            `json:"dueIDs" binding:"required,min=1"`
	DeclaredLocalAmount decimal.Decimal     `json:"declaredLocalAmount" binding:"required"`
	RateUsed            decimal.Decimal     `json:"rateUsed" binding:"required"`
	OperationDate       time.Time           `json:"operationDate" binding:"required"`
	PayerTaxID          string              `json:"payerTaxID" binding:"required"`
	TransferKind        domain.TransferKind `json:"transferKind" binding:"required"`
	PayerEmail          string              `json:"payerEmail" binding:"required,email"`
	ReceiptRef          *string             `json:"receiptRef,omitempty"`
}

// RejectPaymentRequest controls rejection side effects.
type RejectPaymentRequest struct {
	// RetainReceipt keeps the uploaded receipt reference on the due after
	// the declared-payment metadata is cleared.
	RetainReceipt bool `json:"retainReceipt"`
}

// ReconciliationResponse reports the outcome of a declared-payment submission.
type ReconciliationResponse struct {
	DueID          string                       `json:"dueID"`
	Classification domain.PaymentClassification `json:"classification"`
	PaidUSD        decimal.Decimal              `json:"paidUSD"`
	RemainderUSD   decimal.Decimal              `json:"remainderUSD"`
}

// ToReconciliationResponse converts a domain result to its API representation.
func ToReconciliationResponse(res *domain.ReconciliationResult) ReconciliationResponse {
	return ReconciliationResponse{
		DueID:          res.DueID,
		Classification: res.Classification,
		PaidUSD:        res.PaidUSD,
		RemainderUSD:   res.RemainderUSD,
	}
}

// BalanceResponse is an owner's derived balance plus the separately surfaced
// legacy credit.
type BalanceResponse struct {
	OwnerID          string          `json:"ownerID"`
	NetUSD           decimal.Decimal `json:"netUSD"`
	TotalPaidUSD     decimal.Decimal `json:"totalPaidUSD"`
	TotalExpectedUSD decimal.Decimal `json:"totalExpectedUSD"`
	PaidCount        int             `json:"paidCount"`
	LegacyCredit     decimal.Decimal `json:"legacyCredit"`
}

// ToBalanceResponse converts a domain balance summary to its API representation.
func ToBalanceResponse(s *domain.BalanceSummary) BalanceResponse {
	return BalanceResponse{
		OwnerID:          s.OwnerID,
		NetUSD:           s.NetUSD,
		TotalPaidUSD:     s.TotalPaidUSD,
		TotalExpectedUSD: s.TotalExpectedUSD,
		PaidCount:        s.PaidCount,
		LegacyCredit:     s.LegacyCredit,
	}
}
