package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	"github.com/jdvillegas/condo_mgmt_app/internal/models"
	"github.com/jdvillegas/condo_mgmt_app/internal/utils/mapping"
)

// PgxUnitRepository implements the unit repository ports using pgxpool.
type PgxUnitRepository struct {
	BaseRepository
}

// NewPgxUnitRepository creates a new PgxUnitRepository.
func NewPgxUnitRepository(db *pgxpool.Pool) *PgxUnitRepository {
	return &PgxUnitRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.UnitRepositoryFacade = (*PgxUnitRepository)(nil)

// SaveUnit inserts a unit. A duplicate apartment number maps to ErrDuplicate.
func (r *PgxUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	m := mapping.ToModelUnit(unit)
	query := `
		INSERT INTO units (
			unit_id, floor, number, share_fraction, owner_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UnitID, m.Floor, m.Number, m.ShareFraction, m.OwnerID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: unit number %s", apperrors.ErrDuplicate, unit.Number)
		}
		return fmt.Errorf("failed to save unit: %w", err)
	}
	return nil
}

// FindUnitByID retrieves a unit by its ID.
func (r *PgxUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	query := `
		SELECT unit_id, floor, number, share_fraction, owner_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM units WHERE unit_id = $1;
	`
	var m models.Unit
	err := r.Pool.QueryRow(ctx, query, unitID).Scan(
		&m.UnitID, &m.Floor, &m.Number, &m.ShareFraction, &m.OwnerID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: unit %s", apperrors.ErrNotFound, unitID)
		}
		return nil, fmt.Errorf("failed to find unit: %w", err)
	}
	unit := mapping.ToDomainUnit(m)
	return &unit, nil
}

// ListUnits retrieves every unit ordered by floor and number.
func (r *PgxUnitRepository) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	query := `
		SELECT unit_id, floor, number, share_fraction, owner_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM units ORDER BY floor, number;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	var units []domain.Unit
	for rows.Next() {
		var m models.Unit
		err := rows.Scan(
			&m.UnitID, &m.Floor, &m.Number, &m.ShareFraction, &m.OwnerID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, mapping.ToDomainUnit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating units: %w", err)
	}
	return units, nil
}

// UpdateUnit persists the mutable unit columns.
func (r *PgxUnitRepository) UpdateUnit(ctx context.Context, unit domain.Unit) error {
	m := mapping.ToModelUnit(unit)
	query := `
		UPDATE units SET
			floor = $2, number = $3, share_fraction = $4, owner_id = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE unit_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.UnitID, m.Floor, m.Number, m.ShareFraction, m.OwnerID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: unit number %s", apperrors.ErrDuplicate, unit.Number)
		}
		return fmt.Errorf("failed to update unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: unit %s", apperrors.ErrNotFound, unit.UnitID)
	}
	return nil
}

// DeleteUnit removes a unit. Dues referencing it block the delete at the
// foreign key, surfaced as ErrHasDependents.
func (r *PgxUnitRepository) DeleteUnit(ctx context.Context, unitID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM units WHERE unit_id = $1`, unitID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: unit %s has dues", apperrors.ErrHasDependents, unitID)
		}
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: unit %s", apperrors.ErrNotFound, unitID)
	}
	return nil
}
