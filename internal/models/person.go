package models

import "github.com/shopspring/decimal"

// Person is a row of the people table.
type Person struct {
	PersonID        string `db:"person_id"`
	AnashIdentifier string `db:"anash_identifier"`
	FirstName       string `db:"first_name"`
	LastName        string `db:"last_name"`
	IsActive        bool   `db:"is_active"`
}

// Campaign is a row of the campaigns table.
type Campaign struct {
	CampainName                 string          `db:"campain_name"`
	MinimumAmountForMemorialDay decimal.Decimal `db:"minimum_amount_for_memorial_day"`
}
