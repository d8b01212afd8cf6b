package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	"github.com/jdvillegas/condo_mgmt_app/internal/models"
	"github.com/jdvillegas/condo_mgmt_app/internal/utils/mapping"
)

// PgxRateRepository implements the rate-sample repository ports using pgxpool.
// The table is append-only; there is deliberately no UPDATE path.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

// SaveSample appends a new rate sample.
func (r *PgxRateRepository) SaveSample(ctx context.Context, sample domain.RateSample) error {
	m := mapping.ToModelRateSample(sample)
	m.CurrencyCode = strings.ToUpper(m.CurrencyCode)
	query := `
		INSERT INTO rate_samples (
			sample_id, currency_code, value, sampled_at, source,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SampleID, m.CurrencyCode, m.Value, m.SampledAt, m.Source,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate sample: %w", err)
	}
	return nil
}

// FindLatestSample retrieves the newest sample for a currency.
func (r *PgxRateRepository) FindLatestSample(ctx context.Context, currencyCode string) (*domain.RateSample, error) {
	query := `
		SELECT sample_id, currency_code, value, sampled_at, source,
			created_at, created_by, last_updated_at, last_updated_by
		FROM rate_samples
		WHERE currency_code = $1
		ORDER BY sampled_at DESC
		LIMIT 1;
	`
	var m models.RateSample
	err := r.Pool.QueryRow(ctx, query, strings.ToUpper(currencyCode)).Scan(
		&m.SampleID, &m.CurrencyCode, &m.Value, &m.SampledAt, &m.Source,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no rate samples for %s", apperrors.ErrNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to find latest rate sample: %w", err)
	}
	sample := mapping.ToDomainRateSample(m)
	return &sample, nil
}

// ListSamples retrieves up to limit samples, most recent first.
func (r *PgxRateRepository) ListSamples(ctx context.Context, currencyCode string, limit int) ([]domain.RateSample, error) {
	query := `
		SELECT sample_id, currency_code, value, sampled_at, source,
			created_at, created_by, last_updated_at, last_updated_by
		FROM rate_samples
		WHERE currency_code = $1
		ORDER BY sampled_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, strings.ToUpper(currencyCode), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.RateSample
	for rows.Next() {
		var m models.RateSample
		err := rows.Scan(
			&m.SampleID, &m.CurrencyCode, &m.Value, &m.SampledAt, &m.Source,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate sample: %w", err)
		}
		samples = append(samples, mapping.ToDomainRateSample(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate samples: %w", err)
	}
	return samples, nil
}
