package models

import "github.com/shopspring/decimal"

// User is the database row for an administrator or apartment owner.
type User struct {
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	PasswordHash  string          `db:"password_hash"`
	TaxID         *string         `db:"tax_id"`
	Phone         *string         `db:"phone"`
	Role          string          `db:"role"`
	LegacyBalance decimal.Decimal `db:"legacy_balance"`
	AuditFields
}
