package domain_test

import (
	"testing"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvertToUSD(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		rate     string
		want     string
	}{
		{"exact conversion", "14000.00", "140.00", "100"},
		{"partial conversion", "7000.00", "140.00", "50"},
		{"over conversion", "16800.00", "140.00", "120"},
		{"banker's rounding half to even", "100.125", "1", "100.12"},
		{"banker's rounding half up to even", "100.135", "1", "100.14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			declared := decimal.RequireFromString(tt.declared)
			rate := decimal.RequireFromString(tt.rate)
			got := domain.ConvertToUSD(declared, rate)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"want %s got %s", tt.want, got)
		})
	}
}

func TestClassifyPayment(t *testing.T) {
	due := decimal.NewFromInt(100)

	tests := []struct {
		name string
		paid string
		want domain.PaymentClassification
	}{
		{"exact", "100.00", domain.PaymentExact},
		{"exact within epsilon below", "99.99", domain.PaymentExact},
		{"exact within epsilon above", "100.01", domain.PaymentExact},
		{"partial", "50.00", domain.PaymentPartial},
		{"just below epsilon is partial", "99.98", domain.PaymentPartial},
		{"over", "120.00", domain.PaymentOver},
		{"just above epsilon is over", "100.02", domain.PaymentOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ClassifyPayment(decimal.RequireFromString(tt.paid), due)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrendBetween(t *testing.T) {
	sample := func(v string) domain.RateSample {
		return domain.RateSample{CurrencyCode: "VES", Value: decimal.RequireFromString(v)}
	}

	up := domain.TrendBetween(sample("110"), sample("100"))
	assert.NotNil(t, up)
	assert.Equal(t, domain.TrendUp, up.Direction)
	assert.True(t, decimal.NewFromInt(10).Equal(up.PercentChange), "got %s", up.PercentChange)

	down := domain.TrendBetween(sample("90"), sample("100"))
	assert.NotNil(t, down)
	assert.Equal(t, domain.TrendDown, down.Direction)
	assert.True(t, decimal.NewFromInt(-10).Equal(down.PercentChange))

	stable := domain.TrendBetween(sample("100"), sample("100"))
	assert.NotNil(t, stable)
	assert.Equal(t, domain.TrendStable, stable.Direction)
	assert.True(t, stable.PercentChange.IsZero())

	assert.Nil(t, domain.TrendBetween(sample("100"), sample("0")), "zero previous value has no trend")
}
