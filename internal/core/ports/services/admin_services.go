package services

import (
	"context"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
)

// UnitSvcFacade manages apartment units.
type UnitSvcFacade interface {
	CreateUnit(ctx context.Context, req dto.CreateUnitRequest, creatorUserID string) (*domain.Unit, error)
	GetUnit(ctx context.Context, unitID string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]domain.Unit, error)
	UpdateUnit(ctx context.Context, unitID string, req dto.UpdateUnitRequest, updaterUserID string) (*domain.Unit, error)
	DeleteUnit(ctx context.Context, unitID string) error
}

// UserSvcFacade manages administrators and apartment owners. Authentication
// itself is handled by an external collaborator; this service only administers
// the user records the ledger references.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
}
