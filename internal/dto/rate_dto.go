package dto

import (
	"time"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordRateSampleRequest defines a manual exchange-rate sample. Value is
// local-currency units per 1 USD.
type RecordRateSampleRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Value        decimal.Decimal `json:"value" binding:"required"`
	Source       string          `json:"source" binding:"required"`
}

// RateSampleResponse defines the API representation of a rate sample.
type RateSampleResponse struct {
	SampleID     string          `json:"sampleID"`
	CurrencyCode string          `json:"currencyCode"`
	Value        decimal.Decimal `json:"value"`
	SampledAt    time.Time       `json:"sampledAt"`
	Source       string          `json:"source"`
}

// RateTrendResponse reports the movement between the two newest samples.
type RateTrendResponse struct {
	Direction     domain.TrendDirection `json:"direction"`
	PercentChange decimal.Decimal       `json:"percentChange"`
}

// ToRateSampleResponse converts a domain.RateSample to its API representation.
func ToRateSampleResponse(sample *domain.RateSample) RateSampleResponse {
	return RateSampleResponse{
		SampleID:     sample.SampleID,
		CurrencyCode: sample.CurrencyCode,
		Value:        sample.Value,
		SampledAt:    sample.SampledAt,
		Source:       sample.Source,
	}
}

// ToListRateSampleResponse converts a slice of samples, preserving order.
func ToListRateSampleResponse(samples []domain.RateSample) []RateSampleResponse {
	responses := make([]RateSampleResponse, len(samples))
	for i := range samples {
		responses[i] = ToRateSampleResponse(&samples[i])
	}
	return responses
}
