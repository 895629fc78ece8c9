package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/campaign_ledger/internal/core/ports/services"
	"github.com/SscSPs/campaign_ledger/internal/core/review"
	"github.com/SscSPs/campaign_ledger/internal/dto"
)

const (
	opCreatePayment  = "create_payment"
	opUploadPayments = "upload_payments"
	opDeletePayment  = "delete_payment"
)

// ErrCashEntryNotFound is returned when a cash refund has no matching cash-box income to reverse.
var ErrCashEntryNotFound = fmt.Errorf("%w: payment not found in cash box", apperrors.ErrNotFound)

// paymentService implements portssvc.PaymentSvcFacade.
type paymentService struct {
	BaseService
	store  portsrepo.StoreWithTx
	review referenceLoader
}

// NewPaymentService creates a payment service. campaigns serves review lookups; nil uses store.
func NewPaymentService(store portsrepo.StoreWithTx, campaigns portsrepo.CampaignReader, options ...Option) portssvc.PaymentSvcFacade {
	if campaigns == nil {
		campaigns = store
	}
	return &paymentService{
		BaseService: newBaseService(options...),
		store:       store,
		review:      referenceLoader{people: store, campaigns: campaigns, commitments: store},
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// ReviewPayments implements portssvc.PaymentReviewSvc
func (s *paymentService) ReviewPayments(ctx context.Context, records []review.PaymentRecord, campainName string) (review.Partition[review.PaymentRecord], error) {
	ref, err := s.review.load(ctx, review.CampaignNames(campainName, paymentCampaigns(records)...))
	if err != nil {
		s.LogError(ctx, err, "Failed to load reference data for payment review")
		return review.Partition[review.PaymentRecord]{}, apperrors.NewAppError(500, "failed to load reference data", err)
	}
	result := review.Payments(records, campainName, ref)
	s.Metrics.ObserveReview("payments", len(result.Valid), len(result.Invalid))
	s.LogInfo(ctx, "Reviewed payments",
		slog.Int("valid", len(result.Valid)),
		slog.Int("invalid", len(result.Invalid)))
	return result, nil
}

// CreatePayment implements portssvc.PaymentWriterSvc
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actor string) (created *domain.Payment, err error) {
	started := time.Now()
	defer func() { err = s.finish(ctx, opCreatePayment, started, err) }()

	if req.Amount == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, review.ReasonMissingAmount)
	}
	if !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, review.ReasonInvalidPaymentMethod, req.PaymentMethod)
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		if err := requireActiveDonor(ctx, tx, req.AnashIdentifier); err != nil {
			return err
		}
		c, err := tx.LockCommitmentByKey(ctx, domain.CommitmentKey{AnashIdentifier: req.AnashIdentifier, CampainName: req.CampainName})
		if err != nil {
			return err
		}
		if err := domain.ValidatePaymentFields(*req.Amount, *c); err != nil {
			return err
		}

		now := s.now()
		p := s.newPayment(*c, *req.Amount, req.PaymentMethod, req.Date, actor, now)
		if err := tx.InsertPayments(ctx, []domain.Payment{p}); err != nil {
			return err
		}

		c.ApplyPayment(p.Amount)
		c.Touch(actor, now)
		if err := tx.UpdateCommitment(ctx, *c); err != nil {
			return err
		}

		if p.PaymentMethod == domain.MethodCash {
			if err := s.mirrorCash(ctx, tx, p, *c); err != nil {
				return err
			}
		}

		created = &p
		return tx.AppendAuditRecords(ctx, s.auditRecord(paymentAuditEntry(p, paymentOperation(p)), actor))
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment created",
		slog.String("payment_id", created.PaymentID),
		slog.String("commitment_id", created.CommitmentID),
		slog.String("amount", created.Amount.String()))
	return created, nil
}

// mirrorCash keeps the cash box in step with a cash payment: income is recorded for payments,
// and a refund reverses an earlier income of the same donor and magnitude.
func (s *paymentService) mirrorCash(ctx context.Context, tx portsrepo.Store, p domain.Payment, c domain.Commitment) error {
	if p.IsCashIncome() {
		return tx.InsertCashBoxEntries(ctx, []domain.CashBoxEntry{domain.NewCashIncomeEntry(s.newID(), p, c)})
	}
	entry, err := tx.FindCashIncomeEntry(ctx, p.AnashIdentifier, p.Amount.Abs())
	if errors.Is(err, apperrors.ErrNotFound) {
		return ErrCashEntryNotFound
	}
	if err != nil {
		return err
	}
	return tx.DeleteCashBoxEntry(ctx, entry.EntryID)
}

// UploadPayments implements portssvc.PaymentWriterSvc
func (s *paymentService) UploadPayments(ctx context.Context, records []review.PaymentRecord, actor string) (created []domain.Payment, err error) {
	started := time.Now()
	defer func() { err = s.finish(ctx, opUploadPayments, started, err) }()

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no payments to upload", apperrors.ErrValidation)
	}
	ids := make([]string, 0, len(records))
	for i, r := range records {
		if r.CommitmentID == "" {
			return nil, fmt.Errorf("%w: payment %d has no commitment id", apperrors.ErrValidation, i+1)
		}
		ids = append(ids, r.CommitmentID)
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		locked, err := tx.LockCommitmentsByIDs(ctx, ids)
		if err != nil {
			return err
		}

		running := make(map[string]*domain.Commitment, len(locked))
		deltas := make(map[string]domain.LedgerDelta, len(locked))
		donors := make(map[string]error)
		now := s.now()

		created = make([]domain.Payment, 0, len(records))
		var cash []domain.CashBoxEntry
		audits := make([]domain.AuditRecord, 0, len(records))

		for i, r := range records {
			original, ok := locked[r.CommitmentID]
			if !ok {
				return fmt.Errorf("%w: payment %d references unknown commitment %s", apperrors.ErrNotFound, i+1, r.CommitmentID)
			}
			if err := s.checkBatchRecord(i, r, original); err != nil {
				return err
			}
			anash := string(r.AnashIdentifier)
			if _, checked := donors[anash]; !checked {
				donors[anash] = requireActiveDonor(ctx, tx, anash)
			}
			if err := donors[anash]; err != nil {
				return err
			}

			state, ok := running[r.CommitmentID]
			if !ok {
				clone := original.Clone()
				state = &clone
				running[r.CommitmentID] = state
			}
			if err := domain.ValidatePaymentFields(*r.Amount, *state); err != nil {
				return fmt.Errorf("payment %d: %w", i+1, err)
			}
			state.ApplyPayment(*r.Amount)
			deltas[r.CommitmentID] = deltas[r.CommitmentID].Add(domain.PaymentDelta(*r.Amount))

			p := s.newPayment(original, *r.Amount, r.PaymentMethod, r.Date, actor, now)
			created = append(created, p)
			if p.IsCashIncome() {
				cash = append(cash, domain.NewCashIncomeEntry(s.newID(), p, original))
			}
			audits = append(audits, s.auditRecord(paymentAuditEntry(p, paymentOperation(p)), actor))
		}

		if err := tx.InsertPayments(ctx, created); err != nil {
			return err
		}

		touched := make([]string, 0, len(deltas))
		for id := range deltas {
			touched = append(touched, id)
		}
		sort.Strings(touched)
		for _, id := range touched {
			c := locked[id]
			c.ApplyDelta(deltas[id])
			c.Touch(actor, now)
			if err := tx.UpdateCommitment(ctx, c); err != nil {
				return err
			}
		}

		if len(cash) > 0 {
			if err := tx.InsertCashBoxEntries(ctx, cash); err != nil {
				return err
			}
		}
		return tx.AppendAuditRecords(ctx, audits...)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payments uploaded", slog.Int("count", len(created)), slog.String("actor", actor))
	return created, nil
}

// checkBatchRecord applies the structural checks a batch payment must pass against its commitment.
func (s *paymentService) checkBatchRecord(i int, r review.PaymentRecord, c domain.Commitment) error {
	switch {
	case string(r.AnashIdentifier) != c.AnashIdentifier:
		return fmt.Errorf("%w: payment %d donor does not match commitment %s", apperrors.ErrValidation, i+1, c.CommitmentID)
	case r.CampainName != "" && r.CampainName != c.CampainName:
		return fmt.Errorf("%w: payment %d campaign does not match commitment %s", apperrors.ErrValidation, i+1, c.CommitmentID)
	case r.Amount == nil:
		return fmt.Errorf("%w: payment %d: %s", apperrors.ErrValidation, i+1, review.ReasonMissingAmount)
	case !r.PaymentMethod.IsValid():
		return fmt.Errorf("%w: payment %d: %s %q", apperrors.ErrValidation, i+1, review.ReasonInvalidPaymentMethod, r.PaymentMethod)
	case r.PaymentMethod == domain.MethodCash && r.Amount.IsNegative():
		return fmt.Errorf("%w: payment %d: %s", apperrors.ErrValidation, i+1, review.ReasonCashRefundInBatch)
	}
	return nil
}

// DeletePayment implements portssvc.PaymentWriterSvc
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, actor string) (deleted *domain.Payment, err error) {
	started := time.Now()
	defer func() { err = s.finish(ctx, opDeletePayment, started, err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		p, err := tx.FindPaymentByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := requireActiveDonor(ctx, tx, p.AnashIdentifier); err != nil {
			return err
		}
		c, err := tx.LockCommitmentByID(ctx, p.CommitmentID)
		if err != nil {
			return err
		}
		if err := domain.ValidateDeletePaymentFields(p.Amount, *c); err != nil {
			return err
		}

		if err := tx.DeletePayment(ctx, paymentID); err != nil {
			return err
		}
		c.RevertPayment(p.Amount)
		c.Touch(actor, s.now())
		if err := tx.UpdateCommitment(ctx, *c); err != nil {
			return err
		}
		if p.PaymentMethod == domain.MethodCash {
			if err := tx.DeleteCashBoxEntryByPaymentID(ctx, paymentID); err != nil {
				return err
			}
		}

		deleted = p
		return tx.AppendAuditRecords(ctx, s.auditRecord(paymentAuditEntry(*p, domain.OperationDelete), actor))
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID), slog.String("actor", actor))
	return deleted, nil
}

func (s *paymentService) newPayment(c domain.Commitment, amount decimal.Decimal, method domain.PaymentMethod, date *time.Time, actor string, now time.Time) domain.Payment {
	paidAt := now
	if date != nil && !date.IsZero() {
		paidAt = *date
	}
	return domain.Payment{
		PaymentID:       s.newID(),
		AnashIdentifier: c.AnashIdentifier,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		CommitmentID:    c.CommitmentID,
		Amount:          amount,
		PaymentMethod:   method,
		CampainName:     c.CampainName,
		Date:            paidAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
}
