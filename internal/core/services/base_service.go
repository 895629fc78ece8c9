package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/middleware"
	"github.com/SscSPs/campaign_ledger/internal/observability"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics  *observability.LedgerMetrics
	Location *time.Location
	Clock    func() time.Time
	IDs      func() string
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func (s *BaseService) newID() string {
	if s.IDs != nil {
		return s.IDs()
	}
	return uuid.NewString()
}

func (s *BaseService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// finish records the operation metric and logs failures. Domain errors pass through unchanged;
// anything else is reported as a failed transaction.
func (s *BaseService) finish(ctx context.Context, operation string, started time.Time, err error) error {
	if err != nil && !isDomainError(err) {
		s.LogError(ctx, err, "Ledger operation failed", slog.String("operation", operation))
		err = apperrors.NewAppError(500, "Transaction failed", err)
	} else if err != nil {
		s.LogDebug(ctx, "Ledger operation rejected", slog.String("operation", operation), slog.String("reason", err.Error()))
	}
	s.Metrics.ObserveOperation(operation, started, err)
	return err
}

func isDomainError(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrInvariant)
}

// Option configures the shared BaseService of every ledger service.
type Option func(*BaseService)

// WithMetrics records operation metrics on m.
func WithMetrics(m *observability.LedgerMetrics) Option {
	return func(b *BaseService) {
		b.Metrics = m
	}
}

// WithLocation sets the timezone memorial dates are compared in.
func WithLocation(loc *time.Location) Option {
	return func(b *BaseService) {
		b.Location = loc
	}
}

// WithClock replaces time.Now for created and updated timestamps.
func WithClock(clock func() time.Time) Option {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

// WithIDGenerator replaces uuid.NewString for new record ids.
func WithIDGenerator(ids func() string) Option {
	return func(b *BaseService) {
		b.IDs = ids
	}
}

func newBaseService(options ...Option) BaseService {
	var b BaseService
	for _, option := range options {
		option(&b)
	}
	return b
}
