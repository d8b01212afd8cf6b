package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	"github.com/jdvillegas/condo_mgmt_app/internal/models"
	"github.com/jdvillegas/condo_mgmt_app/internal/utils/mapping"
)

const dueColumns = `
	due_id, owner_id, unit_id, amount_due, due_date, paid_date, status,
	payment_method, concept, receipt_ref, operation_date, payer_tax_id,
	transfer_kind, payer_email, declared_local_amount, rate_used, paid_usd,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxDueRepository implements the due-ledger repository ports using pgxpool.
type PgxDueRepository struct {
	BaseRepository
}

// NewPgxDueRepository creates a new PgxDueRepository.
func NewPgxDueRepository(db *pgxpool.Pool) *PgxDueRepository {
	return &PgxDueRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.DueRepositoryWithTx = (*PgxDueRepository)(nil)

func scanDue(row pgx.Row) (*models.Due, error) {
	var m models.Due
	err := row.Scan(
		&m.DueID, &m.OwnerID, &m.UnitID, &m.AmountDue, &m.DueDate, &m.PaidDate,
		&m.Status, &m.PaymentMethod, &m.Concept, &m.ReceiptRef, &m.OperationDate,
		&m.PayerTaxID, &m.TransferKind, &m.PayerEmail, &m.DeclaredLocalAmount,
		&m.RateUsed, &m.PaidUSD, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDue inserts a due record.
func (r *PgxDueRepository) SaveDue(ctx context.Context, due domain.Due) error {
	m := mapping.ToModelDue(due)
	query := `
		INSERT INTO dues (` + dueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DueID, m.OwnerID, m.UnitID, m.AmountDue, m.DueDate, m.PaidDate,
		m.Status, m.PaymentMethod, m.Concept, m.ReceiptRef, m.OperationDate,
		m.PayerTaxID, m.TransferKind, m.PayerEmail, m.DeclaredLocalAmount,
		m.RateUsed, m.PaidUSD, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save due: %w", err)
	}
	return nil
}

// FindDueByID retrieves a due record by its ID.
func (r *PgxDueRepository) FindDueByID(ctx context.Context, dueID string) (*domain.Due, error) {
	query := `SELECT ` + dueColumns + ` FROM dues WHERE due_id = $1;`
	m, err := scanDue(r.Pool.QueryRow(ctx, query, dueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: due %s", apperrors.ErrNotFound, dueID)
		}
		return nil, fmt.Errorf("failed to find due: %w", err)
	}
	due := mapping.ToDomainDue(*m)
	return &due, nil
}

// ListDues retrieves due records matching the filter, newest due date first.
func (r *PgxDueRepository) ListDues(ctx context.Context, filter portsrepo.DueFilter) ([]domain.Due, error) {
	query := `SELECT ` + dueColumns + ` FROM dues WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND owner_id = $%d", argNum)
		args = append(args, *filter.OwnerID)
		argNum++
	}
	if filter.UnitID != nil {
		query += fmt.Sprintf(" AND unit_id = $%d", argNum)
		args = append(args, *filter.UnitID)
		argNum++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(*filter.Status))
		argNum++
	}
	if filter.Month != nil {
		query += fmt.Sprintf(" AND date_trunc('month', due_date) = date_trunc('month', $%d::timestamptz)", argNum)
		args = append(args, *filter.Month)
		argNum++
	}

	query += " ORDER BY due_date DESC, due_id"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dues: %w", err)
	}
	defer rows.Close()

	var dues []domain.Due
	for rows.Next() {
		m, err := scanDue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan due: %w", err)
		}
		dues = append(dues, mapping.ToDomainDue(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dues: %w", err)
	}
	return dues, nil
}

// UpdateDueIfStatus persists the due row only when the stored status still
// matches one of expected. The conditional UPDATE is the single atomic
// primitive the state machine relies on: two racing transitions can not both
// succeed because only one sees its expected pre-state.
func (r *PgxDueRepository) UpdateDueIfStatus(ctx context.Context, due domain.Due, expected []domain.DueStatus) error {
	m := mapping.ToModelDue(due)
	expectedStrs := make([]string, len(expected))
	for i, s := range expected {
		expectedStrs[i] = string(s)
	}

	query := `
		UPDATE dues SET
			owner_id = $2, amount_due = $3, paid_date = $4, status = $5,
			payment_method = $6, receipt_ref = $7, operation_date = $8,
			payer_tax_id = $9, transfer_kind = $10, payer_email = $11,
			declared_local_amount = $12, rate_used = $13, paid_usd = $14,
			last_updated_at = $15, last_updated_by = $16
		WHERE due_id = $1 AND status = ANY($17);
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DueID, m.OwnerID, m.AmountDue, m.PaidDate, m.Status,
		m.PaymentMethod, m.ReceiptRef, m.OperationDate, m.PayerTaxID,
		m.TransferKind, m.PayerEmail, m.DeclaredLocalAmount, m.RateUsed,
		m.PaidUSD, m.LastUpdatedAt, m.LastUpdatedBy, expectedStrs,
	)
	if err != nil {
		return fmt.Errorf("failed to update due: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a lost status race.
		var exists bool
		err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM dues WHERE due_id = $1)`, m.DueID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check due existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: due %s", apperrors.ErrNotFound, m.DueID)
		}
		return fmt.Errorf("%w: due %s", apperrors.ErrInvalidState, m.DueID)
	}
	return nil
}

// DeleteDue removes a due record.
func (r *PgxDueRepository) DeleteDue(ctx context.Context, dueID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM dues WHERE due_id = $1`, dueID)
	if err != nil {
		return fmt.Errorf("failed to delete due: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: due %s", apperrors.ErrNotFound, dueID)
	}
	return nil
}
