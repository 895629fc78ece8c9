package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL ledger store. Outside RunInTx every call runs on its own pooled connection.
type Store struct {
	BaseRepository
	Pool *pgxpool.Pool
}

var _ portsrepo.StoreWithTx = (*Store)(nil)

// NewStore creates a store over pool. loc decides which calendar day a memorial date is stored as.
func NewStore(pool *pgxpool.Pool, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		BaseRepository: BaseRepository{db: pool, loc: loc},
		Pool:           pool,
	}
}

// RunInTx implements portsrepo.TransactionManager with a single pgx transaction.
func (s *Store) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Ignored once the transaction is committed
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			loggerFrom(ctx).Error("Failed to roll back transaction", "error", rbErr.Error())
		}
	}()

	if err := fn(ctx, &BaseRepository{db: tx, loc: s.loc}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}
