package services

import (
	"context"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/dto"
)

// MemorialDaySvcFacade defines memorial-day allocation
type MemorialDaySvcFacade interface {
	// AssignMemorialDay allocates a date that no other commitment of the campaign holds.
	AssignMemorialDay(ctx context.Context, req dto.AssignMemorialDayRequest, actor string) (*domain.Commitment, error)

	// RemoveMemorialDay drops the date from the donor's commitment.
	RemoveMemorialDay(ctx context.Context, params dto.RemoveMemorialDayParams, actor string) (*domain.Commitment, error)

	// ListEligibleDonors lists active donors whose commitment to the campaign unlocks more memorial days.
	// It fails with apperrors.ErrNotFound when the campaign is unknown or has no commitments.
	ListEligibleDonors(ctx context.Context, campainName string) ([]domain.MemorialDayEligibility, error)
}
