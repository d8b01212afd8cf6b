package repositories

import (
	"context"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
)

// UnitReader defines read operations for apartment units.
type UnitReader interface {
	FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]domain.Unit, error)
}

// UnitWriter defines write operations for apartment units.
type UnitWriter interface {
	SaveUnit(ctx context.Context, unit domain.Unit) error
	UpdateUnit(ctx context.Context, unit domain.Unit) error
	DeleteUnit(ctx context.Context, unitID string) error
}

// UnitRepositoryFacade combines all unit-related repository interfaces.
type UnitRepositoryFacade interface {
	UnitReader
	UnitWriter
}
