package models

import "github.com/shopspring/decimal"

// Unit is the database row for one apartment.
type Unit struct {
	UnitID        string          `db:"unit_id"`
	Floor         string          `db:"floor"`
	Number        string          `db:"number"`
	ShareFraction decimal.Decimal `db:"share_fraction"`
	OwnerID       *string         `db:"owner_id"`
	AuditFields
}
