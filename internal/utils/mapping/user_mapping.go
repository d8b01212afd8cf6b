package mapping

import (
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/jdvillegas/condo_mgmt_app/internal/models"
)

// ToModelUser converts a domain User to its database row.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:        d.UserID,
		Name:          d.Name,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		Role:          string(d.Role),
		LegacyBalance: d.LegacyBalance,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.TaxID != "" {
		m.TaxID = &d.TaxID
	}
	if d.Phone != "" {
		m.Phone = &d.Phone
	}
	return m
}

// ToDomainUser converts a database row to a domain User.
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Role:          domain.UserRole(m.Role),
		LegacyBalance: m.LegacyBalance,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.TaxID != nil {
		d.TaxID = *m.TaxID
	}
	if m.Phone != nil {
		d.Phone = *m.Phone
	}
	return d
}
