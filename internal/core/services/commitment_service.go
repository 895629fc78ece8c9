package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/campaign_ledger/internal/core/ports/services"
	"github.com/SscSPs/campaign_ledger/internal/core/review"
	"github.com/SscSPs/campaign_ledger/internal/dto"
)

const (
	opUploadCommitments = "upload_commitments"
	opUpdateCommitment  = "update_commitment"
	opDeleteCommitment  = "delete_commitment"
)

// commitmentService implements portssvc.CommitmentSvcFacade.
type commitmentService struct {
	BaseService
	store  portsrepo.StoreWithTx
	review referenceLoader
}

// NewCommitmentService creates a commitment service. campaigns serves review lookups and may be a
// cache in front of store; nil uses store directly.
func NewCommitmentService(store portsrepo.StoreWithTx, campaigns portsrepo.CampaignReader, options ...Option) portssvc.CommitmentSvcFacade {
	if campaigns == nil {
		campaigns = store
	}
	return &commitmentService{
		BaseService: newBaseService(options...),
		store:       store,
		review:      referenceLoader{people: store, campaigns: campaigns, commitments: store},
	}
}

var _ portssvc.CommitmentSvcFacade = (*commitmentService)(nil)

// GetCommitment implements portssvc.CommitmentReaderSvc
func (s *commitmentService) GetCommitment(ctx context.Context, commitmentID string) (*dto.CommitmentDetailsResponse, error) {
	commitment, err := s.store.FindCommitmentByID(ctx, commitmentID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByCommitment(ctx, commitmentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments of commitment", slog.String("commitment_id", commitmentID))
		return nil, apperrors.NewAppError(500, "failed to list payments", err)
	}
	return &dto.CommitmentDetailsResponse{Commitment: *commitment, Payments: payments}, nil
}

// ListCommitments implements portssvc.CommitmentReaderSvc
func (s *commitmentService) ListCommitments(ctx context.Context, params dto.ListCommitmentsParams) ([]domain.Commitment, error) {
	commitments, err := s.store.ListCommitments(ctx, params.Filter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list commitments", slog.String("campaign", params.CampainName))
		return nil, apperrors.NewAppError(500, "failed to list commitments", err)
	}
	return commitments, nil
}

// ReviewCommitments implements portssvc.CommitmentIntakeSvc
func (s *commitmentService) ReviewCommitments(ctx context.Context, records []review.CommitmentRecord, campainName string) (review.Partition[review.CommitmentRecord], error) {
	ref, err := s.review.load(ctx, review.CampaignNames(campainName, commitmentCampaigns(records)...))
	if err != nil {
		s.LogError(ctx, err, "Failed to load reference data for commitment review")
		return review.Partition[review.CommitmentRecord]{}, apperrors.NewAppError(500, "failed to load reference data", err)
	}
	result := review.Commitments(records, campainName, ref)
	s.Metrics.ObserveReview("commitments", len(result.Valid), len(result.Invalid))
	s.LogInfo(ctx, "Reviewed commitments",
		slog.Int("valid", len(result.Valid)),
		slog.Int("invalid", len(result.Invalid)))
	return result, nil
}

// UploadCommitments implements portssvc.CommitmentIntakeSvc
func (s *commitmentService) UploadCommitments(ctx context.Context, records []review.CommitmentRecord, actor string) (created []domain.Commitment, err error) {
	started := time.Now()
	defer func() { err = s.finish(ctx, opUploadCommitments, started, err) }()

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no commitments to upload", apperrors.ErrValidation)
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		loader := referenceLoader{people: tx, campaigns: tx, commitments: tx, limit: 1}
		ref, err := loader.load(ctx, review.CampaignNames("", commitmentCampaigns(records)...))
		if err != nil {
			return err
		}

		result := review.Commitments(records, "", ref)
		if len(result.Invalid) > 0 {
			first := result.Invalid[0]
			return fmt.Errorf("%w: %d of %d commitments failed review, first (%s): %s",
				apperrors.ErrValidation, len(result.Invalid), len(records), first.Record.AnashIdentifier, first.Reason)
		}

		now := s.now()
		created = make([]domain.Commitment, 0, len(result.Valid))
		audits := make([]domain.AuditRecord, 0, len(result.Valid))
		for _, r := range result.Valid {
			balances, err := domain.ValidateCommitmentFields(r.Fields())
			if err != nil {
				return err
			}
			c := r.ToCommitment(s.newID(), balances)
			c.CreatedAt, c.CreatedBy = now, actor
			c.Touch(actor, now)
			created = append(created, c)
			audits = append(audits, s.auditRecord(auditEntry{
				anash:       c.AnashIdentifier,
				category:    domain.CategoryCommitments,
				operation:   domain.OperationAdd,
				description: "commitment of " + c.CommitmentAmount.String() + " to campaign " + c.CampainName,
				data:        domain.Snapshot(c),
			}, actor))
		}

		if err := tx.InsertCommitments(ctx, created); err != nil {
			return err
		}
		return tx.AppendAuditRecords(ctx, audits...)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Commitments uploaded", slog.Int("count", len(created)), slog.String("actor", actor))
	return created, nil
}

// UpdateCommitment implements portssvc.CommitmentWriterSvc.
// The balance fields are replaced as a whole: an omitted AmountPaid or PaymentsMade is validated as 0,
// so callers editing the pledge must resend the current paid amount and payment count.
func (s *commitmentService) UpdateCommitment(ctx context.Context, commitmentID string, req dto.UpdateCommitmentRequest, actor string) (updated *domain.Commitment, err error) {
	started := time.Now()
	defer func() { err = s.finish(ctx, opUpdateCommitment, started, err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		c, err := tx.LockCommitmentByID(ctx, commitmentID)
		if err != nil {
			return err
		}
		if req.AnashIdentifier != nil && *req.AnashIdentifier != c.AnashIdentifier {
			return fmt.Errorf("%w: the donor of a commitment cannot be changed", apperrors.ErrValidation)
		}
		if req.CampainName != nil && *req.CampainName != c.CampainName {
			return fmt.Errorf("%w: the campaign of a commitment cannot be changed", apperrors.ErrValidation)
		}

		if err := requireActiveDonor(ctx, tx, c.AnashIdentifier); err != nil {
			return err
		}
		if req.CommitmentAmount == nil || !req.CommitmentAmount.IsPositive() {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, review.ReasonInvalidCommitmentAmount)
		}
		campaign, err := tx.FindCampaignByName(ctx, c.CampainName)
		if err != nil {
			return err
		}
		if !domain.MemorialDaysCovered(*req.CommitmentAmount, len(c.MemorialDays), *campaign) {
			return fmt.Errorf("%w: commitment amount does not cover the %d memorial days already allocated",
				apperrors.ErrValidation, len(c.MemorialDays))
		}

		balances, err := domain.ValidateCommitmentFields(req.Fields())
		if err != nil {
			return err
		}

		before := c.Clone()
		c.SetBalances(balances)
		if req.Fundraiser != nil {
			c.Fundraiser = *req.Fundraiser
		}
		if req.PaymentMethod != nil {
			c.PaymentMethod = *req.PaymentMethod
		}
		if req.Notes != nil {
			c.Notes = *req.Notes
		}
		if req.ResponseToFundraiser != nil {
			c.ResponseToFundraiser = *req.ResponseToFundraiser
		}
		c.Touch(actor, s.now())

		if err := tx.UpdateCommitment(ctx, *c); err != nil {
			return err
		}
		updated = c
		return tx.AppendAuditRecords(ctx, s.auditRecord(auditEntry{
			anash:       c.AnashIdentifier,
			category:    domain.CategoryCommitments,
			operation:   domain.OperationEdit,
			description: "commitment to campaign " + c.CampainName + " edited",
			oldValues:   domain.Snapshot(before),
			newValues:   domain.Snapshot(c),
		}, actor))
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Commitment updated", slog.String("commitment_id", commitmentID), slog.String("actor", actor))
	return updated, nil
}

// DeleteCommitment implements portssvc.CommitmentWriterSvc
func (s *commitmentService) DeleteCommitment(ctx context.Context, commitmentID string, actor string) (deleted *domain.Commitment, err error) {
	started := time.Now()
	defer func() { err = s.finish(ctx, opDeleteCommitment, started, err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		c, err := tx.LockCommitmentByID(ctx, commitmentID)
		if err != nil {
			return err
		}
		payments, err := tx.CountPaymentsByCommitment(ctx, commitmentID)
		if err != nil {
			return err
		}
		if payments > 0 {
			return fmt.Errorf("%w: commitment has %d payments and cannot be deleted", apperrors.ErrConflict, payments)
		}
		if err := tx.DeleteCommitment(ctx, commitmentID); err != nil {
			return err
		}
		deleted = c
		return tx.AppendAuditRecords(ctx, s.auditRecord(auditEntry{
			anash:       c.AnashIdentifier,
			category:    domain.CategoryCommitments,
			operation:   domain.OperationDelete,
			description: "commitment to campaign " + c.CampainName + " deleted",
			data:        domain.Snapshot(c),
		}, actor))
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Commitment deleted", slog.String("commitment_id", commitmentID), slog.String("actor", actor))
	return deleted, nil
}

// requireActiveDonor fails with ErrNotFound for unknown donors and ErrValidation for inactive ones.
func requireActiveDonor(ctx context.Context, people portsrepo.PersonReader, anashIdentifier string) error {
	person, err := people.FindPersonByAnashIdentifier(ctx, anashIdentifier)
	if err != nil {
		return err
	}
	if !person.IsActive {
		return fmt.Errorf("%w: donor %s is not active", apperrors.ErrValidation, anashIdentifier)
	}
	return nil
}
