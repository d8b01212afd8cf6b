package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DueStatus indicates the lifecycle state of a due record.
type DueStatus string

const (
	StatusPending  DueStatus = "PENDING"
	StatusInReview DueStatus = "IN_REVIEW"
	StatusPaid     DueStatus = "PAID"
	// StatusOverdue is never stored. It is derived at read time by
	// EffectiveStatus from a PENDING record whose due date has passed.
	StatusOverdue DueStatus = "OVERDUE"
)

// PaymentMethod indicates how a due is expected to be settled.
type PaymentMethod string

const (
	MethodTransfer     PaymentMethod = "TRANSFER"
	MethodMobile       PaymentMethod = "MOBILE"
	MethodCash         PaymentMethod = "CASH"
	MethodCompensation PaymentMethod = "COMPENSATION"
)

// TransferKind distinguishes the kind of bank operation an owner declared.
type TransferKind string

const (
	TransferSameBank  TransferKind = "SAME_BANK"
	TransferOtherBank TransferKind = "OTHER_BANK"
	TransferMobilePay TransferKind = "MOBILE_PAY"
)

// DeclaredPayment carries the metadata an owner submits when claiming a
// bank-transfer payment against a due. It lives on the due while the
// record is IN_REVIEW and is cleared on rejection.
type DeclaredPayment struct {
	OperationDate       *time.Time       `json:"operationDate,omitempty"`
	PayerTaxID          string           `json:"payerTaxID,omitempty"`
	TransferKind        TransferKind     `json:"transferKind,omitempty"`
	PayerEmail          string           `json:"payerEmail,omitempty"`
	DeclaredLocalAmount *decimal.Decimal `json:"declaredLocalAmount,omitempty"`
	RateUsed            *decimal.Decimal `json:"rateUsed,omitempty"`
	PaidUSD             *decimal.Decimal `json:"paidUSD,omitempty"`
}

// Due represents one billing obligation for one unit, denominated in USD.
type Due struct {
	DueID         string          `json:"dueID"`
	OwnerID       *string         `json:"ownerID,omitempty"` // nil for dues issued against unowned units
	UnitID        string          `json:"unitID"`
	AmountDue     decimal.Decimal `json:"amountDue"`
	DueDate       time.Time       `json:"dueDate"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	Status        DueStatus       `json:"status"`
	PaymentMethod *PaymentMethod  `json:"paymentMethod,omitempty"`
	Concept       string          `json:"concept"`
	ReceiptRef    *string         `json:"receiptRef,omitempty"`
	DeclaredPayment
	AuditFields
}

// BulkGenerateItem is the per-unit outcome of a bulk due generation. Items
// are committed independently; a failure mid-run never rolls back earlier ones.
type BulkGenerateItem struct {
	UnitID    string           `json:"unitID"`
	UnitLabel string           `json:"unitLabel"`
	DueID     string           `json:"dueID,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// EffectiveStatus is the single authoritative status function. Overdue is
// computed here from the due date, never persisted, so it can not go stale.
func (d *Due) EffectiveStatus(now time.Time) DueStatus {
	if d.Status == StatusPending && d.DueDate.Before(now) {
		return StatusOverdue
	}
	return d.Status
}

// IsPayable reports whether a declared payment may be submitted against the
// due: only PENDING records (including effectively overdue ones) qualify.
func (d *Due) IsPayable(now time.Time) bool {
	s := d.EffectiveStatus(now)
	return s == StatusPending || s == StatusOverdue
}

// HasPaymentHistory reports whether any declared-payment data references the
// due. Deleting such a record is a hard error.
func (d *Due) HasPaymentHistory() bool {
	if d.Status == StatusPaid || d.Status == StatusInReview {
		return true
	}
	return d.DeclaredLocalAmount != nil || d.PaidUSD != nil
}
