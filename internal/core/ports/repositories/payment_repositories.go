package repositories

import (
	"context"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPaymentByID returns apperrors.ErrNotFound when absent.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	ListPaymentsByCommitment(ctx context.Context, commitmentID string) ([]domain.Payment, error)

	CountPaymentsByCommitment(ctx context.Context, commitmentID string) (int, error)
}

// PaymentWriter defines write operations for payments. Payments are never updated in place.
type PaymentWriter interface {
	InsertPayments(ctx context.Context, payments []domain.Payment) error
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// CashBoxRepository is the slice of the petty-cash ledger the payment engine writes through.
type CashBoxRepository interface {
	InsertCashBoxEntries(ctx context.Context, entries []domain.CashBoxEntry) error

	// FindCashIncomeEntry finds an income entry of the donor with exactly the given amount.
	// Returns apperrors.ErrNotFound when there is none.
	FindCashIncomeEntry(ctx context.Context, anashIdentifier string, amount decimal.Decimal) (*domain.CashBoxEntry, error)

	DeleteCashBoxEntry(ctx context.Context, entryID string) error

	// DeleteCashBoxEntryByPaymentID removes the entry linked to a payment. A missing entry is not an error.
	DeleteCashBoxEntryByPaymentID(ctx context.Context, paymentID string) error
}

// AuditRepository stores the donor's bounded operation history.
type AuditRepository interface {
	// AppendAuditRecords appends records and keeps only the newest domain.AuditHistoryLimit
	// per donor and category.
	AppendAuditRecords(ctx context.Context, records ...domain.AuditRecord) error

	// ListAuditRecords returns a donor's history in a category, oldest first.
	ListAuditRecords(ctx context.Context, anashIdentifier string, category domain.OperationCategory) ([]domain.AuditRecord, error)
}
