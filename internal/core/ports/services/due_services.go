package services

import (
	"context"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
)

// DueReaderSvc defines read operations over the due ledger.
type DueReaderSvc interface {
	// GetDue retrieves a single due record.
	GetDue(ctx context.Context, dueID string) (*domain.Due, error)

	// ListDues retrieves due records matching the filter. An OVERDUE status
	// filter is resolved against the effective (computed) status.
	ListDues(ctx context.Context, req dto.ListDuesRequest) ([]domain.Due, error)
}

// DueWriterSvc defines write operations over the due ledger.
type DueWriterSvc interface {
	// CreateDue issues a single billing obligation, status PENDING.
	CreateDue(ctx context.Context, req dto.CreateDueRequest, creatorUserID string) (*domain.Due, error)

	// BulkGenerateDues issues one due per unit pro-rata by share fraction.
	// Items are committed independently and reported per unit.
	BulkGenerateDues(ctx context.Context, req dto.BulkGenerateDuesRequest, creatorUserID string) ([]domain.BulkGenerateItem, error)

	// UpdateDueStatus applies a manual status transition under the ledger
	// state machine.
	UpdateDueStatus(ctx context.Context, dueID string, req dto.UpdateDueStatusRequest, updaterUserID string) (*domain.Due, error)

	// DeleteDue removes a due; fails with ErrHasDependents when payment
	// history references it.
	DeleteDue(ctx context.Context, dueID string) error
}

// DueSvcFacade combines all due-ledger service interfaces.
type DueSvcFacade interface {
	DueReaderSvc
	DueWriterSvc
}
