package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the ledger translates.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"

	memorialDayUniqueIndex = "memorial_days_campaign_date_key"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// scanner is a pgx.Row or pgx.Rows positioned on a row.
type scanner interface {
	Scan(dest ...any) error
}

// BaseRepository implements every ledger repository on top of a pool or an open transaction.
type BaseRepository struct {
	db  querier
	loc *time.Location
}

var _ portsrepo.Store = (*BaseRepository)(nil)

// translateError maps constraint violations to application errors and wraps everything else.
func translateError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if pgErr.ConstraintName == memorialDayUniqueIndex {
				return fmt.Errorf("%w: %s", domain.ErrMemorialDayAllocated, what)
			}
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s references a missing %s", apperrors.ErrNotFound, what, pgErr.TableName)
		case checkViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, what, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

// notFound maps pgx.ErrNoRows to apperrors.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return translateError(err, "find "+what)
}

// sendBatch runs b and reports the first failure.
func (r *BaseRepository) sendBatch(ctx context.Context, b *pgx.Batch, what string) error {
	if b.Len() == 0 {
		return nil
	}
	if err := r.db.SendBatch(ctx, b).Close(); err != nil {
		return translateError(err, what)
	}
	return nil
}
