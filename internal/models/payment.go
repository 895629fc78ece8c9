package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table.
type Payment struct {
	PaymentID       string          `db:"payment_id"`
	AnashIdentifier string          `db:"anash_identifier"`
	FirstName       string          `db:"first_name"`
	LastName        string          `db:"last_name"`
	CommitmentID    string          `db:"commitment_id"`
	Amount          decimal.Decimal `db:"amount"`
	PaymentMethod   string          `db:"payment_method"`
	CampainName     string          `db:"campain_name"`
	PaymentDate     time.Time       `db:"payment_date"`
	AuditFields
}

// CashBoxEntry is a row of the cash_box table. PaymentID is nullable.
type CashBoxEntry struct {
	EntryID                  string          `db:"entry_id"`
	FullNameOrReasonForIssue string          `db:"full_name_or_reason"`
	AnashIdentifier          string          `db:"anash_identifier"`
	TransactionType          string          `db:"transaction_type"`
	Amount                   decimal.Decimal `db:"amount"`
	TransactionDate          time.Time       `db:"transaction_date"`
	PaymentID                *string         `db:"payment_id"`
}

// AuditRecord is a row of the audit_records table. The JSON columns are nullable JSONB.
type AuditRecord struct {
	RecordID        string    `db:"record_id"`
	AnashIdentifier string    `db:"anash_identifier"`
	Category        string    `db:"category"`
	OperationType   string    `db:"operation_type"`
	Description     string    `db:"description"`
	Data            []byte    `db:"data"`
	OldValues       []byte    `db:"old_values"`
	NewValues       []byte    `db:"new_values"`
	Actor           string    `db:"actor"`
	RecordedAt      time.Time `db:"recorded_at"`
}
