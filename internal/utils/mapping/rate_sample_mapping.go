package mapping

import (
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/jdvillegas/condo_mgmt_app/internal/models"
)

// ToModelRateSample converts a domain RateSample to its database row.
func ToModelRateSample(d domain.RateSample) models.RateSample {
	return models.RateSample{
		SampleID:     d.SampleID,
		CurrencyCode: d.CurrencyCode,
		Value:        d.Value,
		SampledAt:    d.SampledAt,
		Source:       d.Source,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRateSample converts a database row to a domain RateSample.
func ToDomainRateSample(m models.RateSample) domain.RateSample {
	return domain.RateSample{
		SampleID:     m.SampleID,
		CurrencyCode: m.CurrencyCode,
		Value:        m.Value,
		SampledAt:    m.SampledAt,
		Source:       m.Source,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
