package mapping

import (
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/jdvillegas/condo_mgmt_app/internal/models"
)

// ToModelUnit converts a domain Unit to its database row.
func ToModelUnit(d domain.Unit) models.Unit {
	return models.Unit{
		UnitID:        d.UnitID,
		Floor:         d.Floor,
		Number:        d.Number,
		ShareFraction: d.ShareFraction,
		OwnerID:       d.OwnerID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUnit converts a database row to a domain Unit.
func ToDomainUnit(m models.Unit) domain.Unit {
	return domain.Unit{
		UnitID:        m.UnitID,
		Floor:         m.Floor,
		Number:        m.Number,
		ShareFraction: m.ShareFraction,
		OwnerID:       m.OwnerID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
