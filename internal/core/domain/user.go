package domain

import "github.com/shopspring/decimal"

// UserRole distinguishes administrators from apartment owners.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleOwner UserRole = "OWNER"
)

// User represents an administrator or an apartment owner.
// LegacyBalance is a stored credit carried over from before balances were
// derived from the ledger. It is reported alongside the computed balance,
// never merged into it.
type User struct {
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	PasswordHash  string          `json:"-"`
	TaxID         string          `json:"taxID,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Role          UserRole        `json:"role"`
	LegacyBalance decimal.Decimal `json:"legacyBalance"`
	AuditFields
}
