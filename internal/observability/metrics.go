// Package observability exports ledger metrics to Prometheus.
package observability

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	promclient "github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeConflict  = "conflict"
	OutcomeNotFound  = "not_found"
	OutcomeFailed    = "failed"
	verdictValid     = "valid"
	verdictInvalid   = "invalid"
	defaultNamespace = "campaign_ledger"
)

// LedgerMetrics records operation latency and outcomes. A nil *LedgerMetrics records nothing.
type LedgerMetrics struct {
	duration      *promclient.HistogramVec
	operations    *promclient.CounterVec
	reviewRecords *promclient.CounterVec
}

// NewLedgerMetrics registers the ledger collectors on reg, reusing collectors that are already registered.
func NewLedgerMetrics(namespace string, reg promclient.Registerer) (*LedgerMetrics, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}
	m := &LedgerMetrics{
		duration: promclient.NewHistogramVec(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of ledger operations.",
			Buckets:   promclient.DefBuckets,
		}, []string{"operation"}),
		operations: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by outcome.",
		}, []string{"operation", "outcome"}),
		reviewRecords: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "review_records_total",
			Help:      "Records screened by the review pipeline.",
		}, []string{"kind", "verdict"}),
	}

	var err error
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, fmt.Errorf("register operation histogram: %w", err)
	}
	if m.operations, err = register(reg, m.operations); err != nil {
		return nil, fmt.Errorf("register operation counter: %w", err)
	}
	if m.reviewRecords, err = register(reg, m.reviewRecords); err != nil {
		return nil, fmt.Errorf("register review counter: %w", err)
	}
	return m, nil
}

func register[C promclient.Collector](reg promclient.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are promclient.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveOperation records how long an operation took and how it ended.
func (m *LedgerMetrics) ObserveOperation(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	m.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

// ObserveReview counts the valid and invalid records of one review call.
func (m *LedgerMetrics) ObserveReview(kind string, valid, invalid int) {
	if m == nil {
		return
	}
	m.reviewRecords.WithLabelValues(kind, verdictValid).Add(float64(valid))
	m.reviewRecords.WithLabelValues(kind, verdictInvalid).Add(float64(invalid))
}

// Outcome classifies an operation error into a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return OutcomeConflict
	case errors.Is(err, apperrors.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvariant):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}
