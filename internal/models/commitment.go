package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commitment is a row of the commitments table. Memorial days live in their own table.
type Commitment struct {
	CommitmentID         string          `db:"commitment_id"`
	AnashIdentifier      string          `db:"anash_identifier"`
	PersonID             string          `db:"person_id"`
	FirstName            string          `db:"first_name"`
	LastName             string          `db:"last_name"`
	CampainName          string          `db:"campain_name"`
	CommitmentAmount     decimal.Decimal `db:"commitment_amount"`
	AmountPaid           decimal.Decimal `db:"amount_paid"`
	AmountRemaining      decimal.Decimal `db:"amount_remaining"`
	NumberOfPayments     int             `db:"number_of_payments"`
	PaymentsMade         int             `db:"payments_made"`
	PaymentsRemaining    int             `db:"payments_remaining"`
	Fundraiser           string          `db:"fundraiser"`
	PaymentMethod        string          `db:"payment_method"`
	Notes                string          `db:"notes"`
	ResponseToFundraiser string          `db:"response_to_fundraiser"`
	AuditFields
}

// MemorialDay is a row of the memorial_days table. MemorialDate is a DATE column.
type MemorialDay struct {
	CommitmentID string    `db:"commitment_id"`
	CampainName  string    `db:"campain_name"`
	MemorialDate time.Time `db:"memorial_date"`
	Note         string    `db:"note"`
}
