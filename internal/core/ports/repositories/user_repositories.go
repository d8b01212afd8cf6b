package repositories

import (
	"context"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UserReader defines read operations for users.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error

	// AdjustLegacyBalance atomically adds delta to the stored legacy credit
	// balance (used when an over-payment is approved).
	AdjustLegacyBalance(ctx context.Context, userID string, delta decimal.Decimal) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
