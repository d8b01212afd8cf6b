package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSample is one point of the exchange-rate time series: the local-currency
// value of 1 USD at a given instant, tagged with where it came from.
// Samples are immutable once recorded; corrections append a new sample.
type RateSample struct {
	SampleID     string          `json:"sampleID"`
	CurrencyCode string          `json:"currencyCode"` // e.g. "VES"
	Value        decimal.Decimal `json:"value"`        // local units per 1 USD
	SampledAt    time.Time       `json:"sampledAt"`
	Source       string          `json:"source"` // e.g. "bcv", "manual"
	AuditFields
}

// TrendDirection classifies the movement between two consecutive samples.
type TrendDirection string

const (
	TrendUp     TrendDirection = "UP"
	TrendDown   TrendDirection = "DOWN"
	TrendStable TrendDirection = "STABLE"
)

// RateTrend describes how the latest sample moved relative to the previous one.
type RateTrend struct {
	Direction     TrendDirection  `json:"direction"`
	PercentChange decimal.Decimal `json:"percentChange"`
}

var oneHundred = decimal.NewFromInt(100)

// TrendBetween computes the trend from the previous sample to the current one.
// Returns nil when the previous value is zero (nothing meaningful to report).
func TrendBetween(current, previous RateSample) *RateTrend {
	if previous.Value.IsZero() {
		return nil
	}
	change := current.Value.Sub(previous.Value).Div(previous.Value).Mul(oneHundred)
	direction := TrendStable
	switch current.Value.Cmp(previous.Value) {
	case 1:
		direction = TrendUp
	case -1:
		direction = TrendDown
	}
	return &RateTrend{Direction: direction, PercentChange: change}
}
