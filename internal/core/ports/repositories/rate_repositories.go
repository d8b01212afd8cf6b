package repositories

import (
	"context"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
)

// RateSampleReader defines read operations over the exchange-rate time series.
type RateSampleReader interface {
	// FindLatestSample returns the sample with the greatest sampled_at for
	// the currency, or apperrors.ErrNotFound on an empty series.
	FindLatestSample(ctx context.Context, currencyCode string) (*domain.RateSample, error)

	// ListSamples returns up to limit samples for the currency, most
	// recent first.
	ListSamples(ctx context.Context, currencyCode string, limit int) ([]domain.RateSample, error)
}

// RateSampleWriter appends to the exchange-rate time series. Samples are
// never updated in place.
type RateSampleWriter interface {
	SaveSample(ctx context.Context, sample domain.RateSample) error
}

// RateRepositoryFacade combines all rate-sample repository interfaces.
type RateRepositoryFacade interface {
	RateSampleReader
	RateSampleWriter
}
