package repositories

import (
	"context"
)

// TxFunc is the body of a transaction. Every read and write inside it must go through store.
type TxFunc func(ctx context.Context, store Store) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// RunInTx runs fn atomically. fn's writes are committed only when it returns nil;
	// any error rolls everything back and is returned unchanged.
	RunInTx(ctx context.Context, fn TxFunc) error
}

// Store is the full set of ledger repositories, usable inside and outside a transaction.
type Store interface {
	PersonReader
	CampaignReader
	CommitmentRepositoryFacade
	PaymentRepositoryFacade
	CashBoxRepository
	AuditRepository
}

// StoreWithTx is a Store that can also open transactions.
type StoreWithTx interface {
	Store
	TransactionManager
}
