package dto

import (
	"time"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest defines the payload for an administrator registering a
// new user (admin or apartment owner).
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	TaxID    string          `json:"taxID,omitempty"`
	Phone    string          `json:"phone,omitempty"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN OWNER"`
}

// UpdateUserRequest defines the mutable user fields.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	TaxID *string `json:"taxID,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// UserResponse defines the API representation of a user. The password hash
// never leaves the domain layer.
type UserResponse struct {
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	TaxID         string          `json:"taxID,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Role          domain.UserRole `json:"role"`
	LegacyBalance decimal.Decimal `json:"legacyBalance"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its API representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		TaxID:         user.TaxID,
		Phone:         user.Phone,
		Role:          user.Role,
		LegacyBalance: user.LegacyBalance,
		CreatedAt:     user.CreatedAt,
	}
}

// ToListUserResponse converts a slice of users to API representations.
func ToListUserResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
