package mapping

import (
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/jdvillegas/condo_mgmt_app/internal/models"
)

// ToModelDue converts a domain Due to its database row.
func ToModelDue(d domain.Due) models.Due {
	m := models.Due{
		DueID:               d.DueID,
		OwnerID:             d.OwnerID,
		UnitID:              d.UnitID,
		AmountDue:           d.AmountDue,
		DueDate:             d.DueDate,
		PaidDate:            d.PaidDate,
		Status:              string(d.Status),
		Concept:             d.Concept,
		ReceiptRef:          d.ReceiptRef,
		OperationDate:       d.OperationDate,
		DeclaredLocalAmount: d.DeclaredLocalAmount,
		RateUsed:            d.RateUsed,
		PaidUSD:             d.PaidUSD,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
	if d.PaymentMethod != nil {
		method := string(*d.PaymentMethod)
		m.PaymentMethod = &method
	}
	if d.PayerTaxID != "" {
		m.PayerTaxID = &d.PayerTaxID
	}
	if d.TransferKind != "" {
		kind := string(d.TransferKind)
		m.TransferKind = &kind
	}
	if d.PayerEmail != "" {
		m.PayerEmail = &d.PayerEmail
	}
	return m
}

// ToDomainDue converts a database row to a domain Due.
func ToDomainDue(m models.Due) domain.Due {
	d := domain.Due{
		DueID:      m.DueID,
		OwnerID:    m.OwnerID,
		UnitID:     m.UnitID,
		AmountDue:  m.AmountDue,
		DueDate:    m.DueDate,
		PaidDate:   m.PaidDate,
		Status:     domain.DueStatus(m.Status),
		Concept:    m.Concept,
		ReceiptRef: m.ReceiptRef,
		DeclaredPayment: domain.DeclaredPayment{
			OperationDate:       m.OperationDate,
			DeclaredLocalAmount: m.DeclaredLocalAmount,
			RateUsed:            m.RateUsed,
			PaidUSD:             m.PaidUSD,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.PaymentMethod != nil {
		method := domain.PaymentMethod(*m.PaymentMethod)
		d.PaymentMethod = &method
	}
	if m.PayerTaxID != nil {
		d.PayerTaxID = *m.PayerTaxID
	}
	if m.TransferKind != nil {
		d.TransferKind = domain.TransferKind(*m.TransferKind)
	}
	if m.PayerEmail != nil {
		d.PayerEmail = *m.PayerEmail
	}
	return d
}
