package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSample is the database row for one exchange-rate observation.
type RateSample struct {
	SampleID     string          `db:"sample_id"`
	CurrencyCode string          `db:"currency_code"`
	Value        decimal.Decimal `db:"value"`
	SampledAt    time.Time       `db:"sampled_at"`
	Source       string          `db:"source"`
	AuditFields
}
