package domain

import "github.com/shopspring/decimal"

// Unit represents one apartment in the building. ShareFraction is the unit's
// percentage of building-wide expenses (the "alicuota") and is consulted only
// at bulk due generation time; changing it never rewrites already-issued dues.
type Unit struct {
	UnitID        string          `json:"unitID"`
	Floor         string          `json:"floor"`
	Number        string          `json:"number"` // unique within the building
	ShareFraction decimal.Decimal `json:"shareFraction"`
	OwnerID       *string         `json:"ownerID,omitempty"`
	AuditFields
}
