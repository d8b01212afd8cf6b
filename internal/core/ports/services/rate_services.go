package services

import (
	"context"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
	"github.com/shopspring/decimal"
)

// RateFetcher retrieves the current dollar rate from an external source.
// Implementations must bound the fetch with their own timeout and return
// apperrors.ErrUpstreamUnavailable on failure.
type RateFetcher interface {
	FetchDollarRate(ctx context.Context) (decimal.Decimal, error)
}

// RateReaderSvc defines read operations over the exchange-rate time series.
type RateReaderSvc interface {
	// Latest returns the most recent sample for the currency.
	Latest(ctx context.Context, currencyCode string) (*domain.RateSample, error)

	// History returns up to limit samples, most recent first.
	History(ctx context.Context, currencyCode string, limit int) ([]domain.RateSample, error)

	// Trend compares the two newest samples. Returns nil without error when
	// fewer than two samples exist or the previous value is zero.
	Trend(ctx context.Context, currencyCode string) (*domain.RateTrend, error)
}

// RateWriterSvc defines write operations over the exchange-rate time series.
type RateWriterSvc interface {
	// RecordSample appends a manual sample.
	RecordSample(ctx context.Context, req dto.RecordRateSampleRequest, creatorUserID string) (*domain.RateSample, error)

	// SyncNow fetches the current rate from the external source and records
	// it. On fetch failure it returns a sample carrying the configured
	// fallback value without recording it; sync never fails hard.
	SyncNow(ctx context.Context) (*domain.RateSample, error)
}

// RateSvcFacade combines all exchange-rate service interfaces.
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}
