package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/campaign_ledger/internal/core/ports/services"
	"github.com/SscSPs/campaign_ledger/internal/dto"
)

const (
	opAssignMemorialDay = "assign_memorial_day"
	opRemoveMemorialDay = "remove_memorial_day"
)

type memorialDayService struct {
	BaseService
	store portsrepo.StoreWithTx
}

// NewMemorialDayService creates the memorial-day allocator.
func NewMemorialDayService(store portsrepo.StoreWithTx, options ...Option) portssvc.MemorialDaySvcFacade {
	return &memorialDayService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.MemorialDaySvcFacade = (*memorialDayService)(nil)

// AssignMemorialDay implements portssvc.MemorialDaySvcFacade
func (s *memorialDayService) AssignMemorialDay(ctx context.Context, req dto.AssignMemorialDayRequest, actor string) (updated *domain.Commitment, err error) {
	started := time.Now()
	defer func() { err = s.finish(ctx, opAssignMemorialDay, started, err) }()

	loc := s.location()
	date, err := dto.ParseCalendarDate(req.Date, loc)
	if err != nil {
		return nil, err
	}
	day := domain.MemorialDay{Date: date, Note: req.Note}

	var commitmentID string
	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		c, err := tx.LockCommitmentByKey(ctx, domain.CommitmentKey{AnashIdentifier: req.AnashIdentifier, CampainName: req.CampainName})
		if err != nil {
			return err
		}
		commitmentID = c.CommitmentID
		campaign, err := tx.FindCampaignByName(ctx, req.CampainName)
		if err != nil {
			return err
		}
		others, err := tx.ListCommitmentsByCampaign(ctx, req.CampainName)
		if err != nil {
			return err
		}
		if holder, taken := domain.FindMemorialDayHolder(others, date, c.CommitmentID, loc); taken {
			return &domain.MemorialDayTakenError{Date: date, Holder: holder}
		}

		before := c.Clone()
		if err := domain.AssignMemorialDay(c, *campaign, day, loc); err != nil {
			return err
		}
		c.Touch(actor, s.now())
		if err := tx.UpdateCommitment(ctx, *c); err != nil {
			return err
		}
		updated = c
		return tx.AppendAuditRecords(ctx, s.memorialAudit(before, *c, "memorial day "+date.Format(time.DateOnly)+" assigned", actor))
	})
	if errors.Is(err, domain.ErrMemorialDayAllocated) {
		err = s.nameHolder(ctx, req.CampainName, date, commitmentID, err)
	}
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Memorial day assigned",
		slog.String("commitment_id", updated.CommitmentID),
		slog.String("date", date.Format(time.DateOnly)))
	return updated, nil
}

// RemoveMemorialDay implements portssvc.MemorialDaySvcFacade
func (s *memorialDayService) RemoveMemorialDay(ctx context.Context, params dto.RemoveMemorialDayParams, actor string) (updated *domain.Commitment, err error) {
	started := time.Now()
	defer func() { err = s.finish(ctx, opRemoveMemorialDay, started, err) }()

	loc := s.location()
	date, err := dto.ParseCalendarDate(params.Date, loc)
	if err != nil {
		return nil, err
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		c, err := tx.LockCommitmentByKey(ctx, domain.CommitmentKey{AnashIdentifier: params.AnashIdentifier, CampainName: params.CampainName})
		if err != nil {
			return err
		}
		before := c.Clone()
		if err := domain.RemoveMemorialDay(c, date, loc); err != nil {
			return err
		}
		c.Touch(actor, s.now())
		if err := tx.UpdateCommitment(ctx, *c); err != nil {
			return err
		}
		updated = c
		return tx.AppendAuditRecords(ctx, s.memorialAudit(before, *c, "memorial day "+date.Format(time.DateOnly)+" removed", actor))
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Memorial day removed",
		slog.String("commitment_id", updated.CommitmentID),
		slog.String("date", date.Format(time.DateOnly)))
	return updated, nil
}

// nameHolder turns a storage-level date conflict into a MemorialDayTakenError.
// A date committed by a concurrent allocation is only visible once the losing transaction has ended.
func (s *memorialDayService) nameHolder(ctx context.Context, campainName string, date time.Time, exceptID string, cause error) error {
	commitments, err := s.store.ListCommitmentsByCampaign(ctx, campainName)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up memorial day holder", slog.String("campaign", campainName))
		return cause
	}
	if holder, taken := domain.FindMemorialDayHolder(commitments, date, exceptID, s.location()); taken {
		return &domain.MemorialDayTakenError{Date: date, Holder: holder}
	}
	return cause
}

func (s *memorialDayService) memorialAudit(before, after domain.Commitment, description, actor string) domain.AuditRecord {
	return s.auditRecord(auditEntry{
		anash:       after.AnashIdentifier,
		category:    domain.CategoryCommitments,
		operation:   domain.OperationEdit,
		description: description,
		oldValues:   domain.Snapshot(before.MemorialDays),
		newValues:   domain.Snapshot(after.MemorialDays),
	}, actor)
}

// ListEligibleDonors implements portssvc.MemorialDaySvcFacade
func (s *memorialDayService) ListEligibleDonors(ctx context.Context, campainName string) ([]domain.MemorialDayEligibility, error) {
	campaign, err := s.store.FindCampaignByName(ctx, campainName)
	if err != nil {
		return nil, err
	}
	commitments, err := s.store.ListCommitmentsByCampaign(ctx, campainName)
	if err != nil {
		s.LogError(ctx, err, "Failed to list commitments of campaign", slog.String("campaign", campainName))
		return nil, apperrors.NewAppError(500, "failed to list commitments", err)
	}
	if len(commitments) == 0 {
		return nil, fmt.Errorf("%w: no commitments in campaign %s", apperrors.ErrNotFound, campainName)
	}
	people, err := s.store.ListPeople(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active donors")
		return nil, apperrors.NewAppError(500, "failed to list donors", err)
	}
	active := make(map[string]domain.Person, len(people))
	for _, p := range people {
		active[p.AnashIdentifier] = p
	}

	eligible := make([]domain.MemorialDayEligibility, 0)
	for _, c := range commitments {
		person, ok := active[c.AnashIdentifier]
		if !ok {
			continue
		}
		remaining := domain.MemorialDayCapacity(c, *campaign)
		if remaining <= 0 {
			continue
		}
		eligible = append(eligible, domain.MemorialDayEligibility{
			AnashIdentifier:  c.AnashIdentifier,
			FirstName:        person.FirstName,
			LastName:         person.LastName,
			CommitmentID:     c.CommitmentID,
			CommitmentAmount: c.CommitmentAmount,
			MemorialDays:     c.MemorialDays,
			RemainingDays:    remaining,
		})
	}
	return eligible, nil
}
