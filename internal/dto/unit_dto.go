package dto

import (
	"time"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUnitRequest defines the payload for registering an apartment.
type CreateUnitRequest struct {
	Floor         string          `json:"floor" binding:"required"`
	Number        string          `json:"number" binding:"required"`
	ShareFraction decimal.Decimal `json:"shareFraction" binding:"required"`
	OwnerID       *string         `json:"ownerID,omitempty"`
}

// UpdateUnitRequest defines the mutable unit fields. Changing the share
// fraction only affects future bulk generations.
type UpdateUnitRequest struct {
	Floor         *string          `json:"floor,omitempty"`
	Number        *string          `json:"number,omitempty"`
	ShareFraction *decimal.Decimal `json:"shareFraction,omitempty"`
	OwnerID       *string          `json:"ownerID,omitempty"`
}

// UnitResponse defines the API representation of a unit.
type UnitResponse struct {
	UnitID        string          `json:"unitID"`
	Floor         string          `json:"floor"`
	Number        string          `json:"number"`
	ShareFraction decimal.Decimal `json:"shareFraction"`
	OwnerID       *string         `json:"ownerID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToUnitResponse converts a domain.Unit to its API representation.
func ToUnitResponse(unit *domain.Unit) UnitResponse {
	return UnitResponse{
		UnitID:        unit.UnitID,
		Floor:         unit.Floor,
		Number:        unit.Number,
		ShareFraction: unit.ShareFraction,
		OwnerID:       unit.OwnerID,
		CreatedAt:     unit.CreatedAt,
	}
}

// ToListUnitResponse converts a slice of units to API representations.
func ToListUnitResponse(units []domain.Unit) []UnitResponse {
	responses := make([]UnitResponse, len(units))
	for i := range units {
		responses[i] = ToUnitResponse(&units[i])
	}
	return responses
}
