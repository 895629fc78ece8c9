package repositories

import (
	"context"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
)

// CommitmentReader defines read operations for commitments. Reads take no locks.
type CommitmentReader interface {
	// FindCommitmentByID returns apperrors.ErrNotFound when absent.
	FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error)

	// FindCommitmentByKey returns the donor's commitment to a campaign, or apperrors.ErrNotFound.
	FindCommitmentByKey(ctx context.Context, key domain.CommitmentKey) (*domain.Commitment, error)

	// ListCommitmentsByCampaign returns every commitment of a campaign with its memorial days.
	ListCommitmentsByCampaign(ctx context.Context, campainName string) ([]domain.Commitment, error)

	// ListCommitments applies the filter. IsActive refers to the donor.
	ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.Commitment, error)
}

// CommitmentLocker reads commitments for modification. Inside a transaction the returned rows stay
// locked until commit or rollback, so read-check-write on one commitment never interleaves.
type CommitmentLocker interface {
	LockCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error)
	LockCommitmentByKey(ctx context.Context, key domain.CommitmentKey) (*domain.Commitment, error)

	// LockCommitmentsByIDs locks in id order to avoid deadlocks. Missing ids are absent from the map.
	LockCommitmentsByIDs(ctx context.Context, commitmentIDs []string) (map[string]domain.Commitment, error)
}

// CommitmentWriter defines write operations for commitments.
type CommitmentWriter interface {
	// InsertCommitments fails with apperrors.ErrDuplicate when a (donor, campaign) pair already exists.
	InsertCommitments(ctx context.Context, commitments []domain.Commitment) error

	// UpdateCommitment replaces the stored commitment, memorial days included.
	// A memorial date already held in the campaign fails with apperrors.ErrConflict.
	UpdateCommitment(ctx context.Context, commitment domain.Commitment) error

	DeleteCommitment(ctx context.Context, commitmentID string) error
}

// CommitmentRepositoryFacade combines all commitment-related repository interfaces
type CommitmentRepositoryFacade interface {
	CommitmentReader
	CommitmentLocker
	CommitmentWriter
}
