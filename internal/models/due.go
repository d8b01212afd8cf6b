package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Due is the database row for one billing obligation. Nullable columns map
// to pointers; money columns are NUMERIC scanned into decimals.
type Due struct {
	DueID         string          `db:"due_id"`
	OwnerID       *string         `db:"owner_id"`
	UnitID        string          `db:"unit_id"`
	AmountDue     decimal.Decimal `db:"amount_due"`
	DueDate       time.Time       `db:"due_date"`
	PaidDate      *time.Time      `db:"paid_date"`
	Status        string          `db:"status"`
	PaymentMethod *string         `db:"payment_method"`
	Concept       string          `db:"concept"`
	ReceiptRef    *string         `db:"receipt_ref"`

	OperationDate       *time.Time       `db:"operation_date"`
	PayerTaxID          *string          `db:"payer_tax_id"`
	TransferKind        *string          `db:"transfer_kind"`
	PayerEmail          *string          `db:"payer_email"`
	DeclaredLocalAmount *decimal.Decimal `db:"declared_local_amount"`
	RateUsed            *decimal.Decimal `db:"rate_used"`
	PaidUSD             *decimal.Decimal `db:"paid_usd"`

	AuditFields
}
