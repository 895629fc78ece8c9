package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBoxTransactionType is the direction of a petty-cash movement.
type CashBoxTransactionType string

const (
	CashBoxIncome  CashBoxTransactionType = "income"
	CashBoxExpense CashBoxTransactionType = "expense"
)

// CashBoxEntry is a row in the petty-cash side ledger. Entries created by the
// ledger are linked 1:1 to a cash payment through PaymentID.
type CashBoxEntry struct {
	EntryID                  string                 `json:"_id"`
	FullNameOrReasonForIssue string                 `json:"FullNameOrReasonForIssue"`
	AnashIdentifier          string                 `json:"AnashIdentifier"`
	TransactionType          CashBoxTransactionType `json:"TransactionType"`
	Amount                   decimal.Decimal        `json:"Amount"`
	TransactionDate          time.Time              `json:"TransactionDate"`
	PaymentID                *string                `json:"PaymentId,omitempty"`
}

// NewCashIncomeEntry builds the income entry mirroring a positive cash payment.
func NewCashIncomeEntry(entryID string, payment Payment, commitment Commitment) CashBoxEntry {
	paymentID := payment.PaymentID
	return CashBoxEntry{
		EntryID:                  entryID,
		FullNameOrReasonForIssue: joinName(commitment.FirstName, commitment.LastName),
		AnashIdentifier:          payment.AnashIdentifier,
		TransactionType:          CashBoxIncome,
		Amount:                   payment.Amount,
		TransactionDate:          payment.Date,
		PaymentID:                &paymentID,
	}
}
