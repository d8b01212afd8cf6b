package dto

import (
	"time"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDueRequest defines the payload for creating a single due record.
type CreateDueRequest struct {
	OwnerID       *string               `json:"ownerID,omitempty"`
	UnitID        string                `json:"unitID" binding:"required"`
	AmountDue     decimal.Decimal       `json:"amountDue" binding:"required"`
	DueDate       time.Time             `json:"dueDate" binding:"required"`
	Concept       string                `json:"concept" binding:"required"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod,omitempty"`
}

// BulkGenerateDuesRequest defines the payload for generating one due per unit
// pro-rata by share fraction.
type BulkGenerateDuesRequest struct {
	TotalAmount   decimal.Decimal       `json:"totalAmount" binding:"required"`
	Concept       string                `json:"concept" binding:"required"`
	DueDate       time.Time             `json:"dueDate" binding:"required"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod,omitempty"`
}

// ListDuesRequest carries the optional filters for a due listing.
type ListDuesRequest struct {
	OwnerID *string           `form:"ownerID"`
	UnitID  *string           `form:"unitID"`
	Status  *domain.DueStatus `form:"status"`
	Month   *time.Time        `form:"month" time_format:"2006-01"`
}

// UpdateDueStatusRequest defines a manual status transition.
type UpdateDueStatusRequest struct {
	Status   domain.DueStatus `json:"status" binding:"required"`
	PaidDate *time.Time       `json:"paidDate,omitempty"`
}

// DueResponse defines the API representation of a due record. Status is the
// effective status, so an elapsed pending due reads as OVERDUE.
type DueResponse struct {
	DueID         string                `json:"dueID"`
	OwnerID       *string               `json:"ownerID,omitempty"`
	UnitID        string                `json:"unitID"`
	AmountDue     decimal.Decimal       `json:"amountDue"`
	DueDate       time.Time             `json:"dueDate"`
	PaidDate      *time.Time            `json:"paidDate,omitempty"`
	Status        domain.DueStatus      `json:"status"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod,omitempty"`
	Concept       string                `json:"concept"`
	ReceiptRef    *string               `json:"receiptRef,omitempty"`
	OperationDate *time.Time            `json:"operationDate,omitempty"`
	PayerTaxID    string                `json:"payerTaxID,omitempty"`
	TransferKind  domain.TransferKind   `json:"transferKind,omitempty"`
	PayerEmail    string                `json:"payerEmail,omitempty"`

	DeclaredLocalAmount *decimal.Decimal `json:"declaredLocalAmount,omitempty"`
	RateUsed            *decimal.Decimal `json:"rateUsed,omitempty"`
	PaidUSD             *decimal.Decimal `json:"paidUSD,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToDueResponse converts a domain.Due to its API representation as of now.
func ToDueResponse(due *domain.Due, now time.Time) DueResponse {
	return DueResponse{
		DueID:               due.DueID,
		OwnerID:             due.OwnerID,
		UnitID:              due.UnitID,
		AmountDue:           due.AmountDue,
		DueDate:             due.DueDate,
		PaidDate:            due.PaidDate,
		Status:              due.EffectiveStatus(now),
		PaymentMethod:       due.PaymentMethod,
		Concept:             due.Concept,
		ReceiptRef:          due.ReceiptRef,
		OperationDate:       due.OperationDate,
		PayerTaxID:          due.PayerTaxID,
		TransferKind:        due.TransferKind,
		PayerEmail:          due.PayerEmail,
		DeclaredLocalAmount: due.DeclaredLocalAmount,
		RateUsed:            due.RateUsed,
		PaidUSD:             due.PaidUSD,
		CreatedAt:           due.CreatedAt,
		CreatedBy:           due.CreatedBy,
	}
}

// ToListDueResponse converts a slice of dues to API representations.
func ToListDueResponse(dues []domain.Due, now time.Time) []DueResponse {
	responses := make([]DueResponse, len(dues))
	for i := range dues {
		responses[i] = ToDueResponse(&dues[i], now)
	}
	return responses
}
