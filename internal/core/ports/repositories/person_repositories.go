package repositories

import (
	"context"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
)

// PersonReader defines the donor lookups the ledger needs.
type PersonReader interface {
	// FindPersonByAnashIdentifier returns apperrors.ErrNotFound when no donor has the identifier.
	FindPersonByAnashIdentifier(ctx context.Context, anashIdentifier string) (*domain.Person, error)

	// ListPeople returns donors, optionally only the active ones.
	ListPeople(ctx context.Context, activeOnly bool) ([]domain.Person, error)
}

// CampaignReader defines campaign lookups.
type CampaignReader interface {
	// FindCampaignByName returns apperrors.ErrNotFound when the campaign does not exist.
	FindCampaignByName(ctx context.Context, campainName string) (*domain.Campaign, error)

	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
}
