package pgsql

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/middleware"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, loc *time.Location) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Store: NewStore(dbPool, loc),
	}
}

func loggerFrom(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}
