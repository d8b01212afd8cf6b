package repositories

import (
	"context"
	"time"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
)

// DueFilter narrows a due listing. Nil fields are ignored. Month filters by
// the calendar month of the due date. Status matches the stored status;
// overdue filtering is applied by the service via EffectiveStatus.
type DueFilter struct {
	OwnerID *string
	UnitID  *string
	Status  *domain.DueStatus
	Month   *time.Time
}

// DueReader defines read operations for due records.
type DueReader interface {
	FindDueByID(ctx context.Context, dueID string) (*domain.Due, error)
	ListDues(ctx context.Context, filter DueFilter) ([]domain.Due, error)
}

// DueWriter defines write operations for due records.
type DueWriter interface {
	SaveDue(ctx context.Context, due domain.Due) error

	// UpdateDueIfStatus persists the full due row only if the stored status
	// still matches one of expected — a compare-and-swap over the status
	// column executed as a single conditional UPDATE. It returns
	// apperrors.ErrInvalidState when the row exists but the status moved,
	// and apperrors.ErrNotFound when the row does not exist.
	UpdateDueIfStatus(ctx context.Context, due domain.Due, expected []domain.DueStatus) error

	// DeleteDue removes a due record; the caller is responsible for the
	// payment-history guard.
	DeleteDue(ctx context.Context, dueID string) error
}

// DueRepositoryFacade combines all due-related repository interfaces.
type DueRepositoryFacade interface {
	DueReader
	DueWriter
}

// DueRepositoryWithTx extends DueRepositoryFacade with transaction capabilities.
type DueRepositoryWithTx interface {
	DueRepositoryFacade
	TransactionManager
}
