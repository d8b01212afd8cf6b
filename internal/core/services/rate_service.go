package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
	"github.com/jdvillegas/condo_mgmt_app/internal/middleware"
)

// syncUserID is the audit identity for samples recorded by the sync job.
const syncUserID = "rate-sync"

// rateService maintains the exchange-rate time series.
type rateService struct {
	rateRepo      portsrepo.RateRepositoryFacade
	fetcher       portssvc.RateFetcher
	localCurrency string
	// fallback is the documented last-known-good rate returned when the
	// upstream fetch fails. It is configured, never invented at call time.
	fallback decimal.Decimal
	clock    func() time.Time
}

// RateServiceOption configures a rateService.
type RateServiceOption func(*rateService)

// WithRateClock overrides the clock, for tests.
func WithRateClock(clock func() time.Time) RateServiceOption {
	return func(s *rateService) {
		s.clock = clock
	}
}

// NewRateService creates a new rate service.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, fetcher portssvc.RateFetcher, localCurrency string, fallback decimal.Decimal, opts ...RateServiceOption) portssvc.RateSvcFacade {
	s := &rateService{
		rateRepo:      rateRepo,
		fetcher:       fetcher,
		localCurrency: strings.ToUpper(localCurrency),
		fallback:      fallback,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// RecordSample appends a manual sample to the time series.
func (s *rateService) RecordSample(ctx context.Context, req dto.RecordRateSampleRequest, creatorUserID string) (*domain.RateSample, error) {
	if req.Value.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate sample value %s", apperrors.ErrInvalidAmount, req.Value)
	}

	now := s.clock()
	sample := domain.RateSample{
		SampleID:     uuid.NewString(),
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Value:        req.Value,
		SampledAt:    now,
		Source:       req.Source,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveSample(ctx, sample); err != nil {
		return nil, fmt.Errorf("failed to record rate sample: %w", err)
	}
	return &sample, nil
}

// Latest returns the most recent sample for the currency.
func (s *rateService) Latest(ctx context.Context, currencyCode string) (*domain.RateSample, error) {
	return s.rateRepo.FindLatestSample(ctx, currencyCode)
}

// History returns up to limit samples, most recent first.
func (s *rateService) History(ctx context.Context, currencyCode string, limit int) ([]domain.RateSample, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: history limit must be positive", apperrors.ErrValidation)
	}
	return s.rateRepo.ListSamples(ctx, currencyCode, limit)
}

// Trend compares the two newest samples. A series with fewer than two
// samples, or a zero previous value, has no trend and returns nil.
func (s *rateService) Trend(ctx context.Context, currencyCode string) (*domain.RateTrend, error) {
	samples, err := s.rateRepo.ListSamples(ctx, currencyCode, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to load samples for trend: %w", err)
	}
	if len(samples) < 2 {
		return nil, nil
	}
	return domain.TrendBetween(samples[0], samples[1]), nil
}

// SyncNow fetches the current dollar rate and appends it to the series. A
// failed fetch is recovered locally: the configured fallback value is
// returned (tagged, not persisted) and no error escapes to the caller.
func (s *rateService) SyncNow(ctx context.Context) (*domain.RateSample, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock()

	value, err := s.fetcher.FetchDollarRate(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUpstreamUnavailable) {
			return nil, fmt.Errorf("rate fetch failed unexpectedly: %w", err)
		}
		logger.Warn("Rate source unavailable, using fallback value",
			slog.String("currency", s.localCurrency),
			slog.String("fallback", s.fallback.String()),
			slog.String("error", err.Error()),
		)
		return &domain.RateSample{
			CurrencyCode: s.localCurrency,
			Value:        s.fallback,
			SampledAt:    now,
			Source:       "fallback",
		}, nil
	}

	sample := domain.RateSample{
		SampleID:     uuid.NewString(),
		CurrencyCode: s.localCurrency,
		Value:        value,
		SampledAt:    now,
		Source:       "bcv",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     syncUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: syncUserID,
		},
	}
	if err := s.rateRepo.SaveSample(ctx, sample); err != nil {
		return nil, fmt.Errorf("failed to persist synced rate sample: %w", err)
	}

	logger.Info("Rate sample synced",
		slog.String("currency", sample.CurrencyCode),
		slog.String("value", sample.Value.String()),
	)
	return &sample, nil
}
