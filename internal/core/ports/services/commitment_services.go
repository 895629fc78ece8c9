package services

import (
	"context"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/core/review"
	"github.com/SscSPs/campaign_ledger/internal/dto"
)

// CommitmentReaderSvc defines read operations for commitments
type CommitmentReaderSvc interface {
	// GetCommitment returns a commitment with its payments.
	GetCommitment(ctx context.Context, commitmentID string) (*dto.CommitmentDetailsResponse, error)

	// ListCommitments lists commitments, optionally filtered by campaign and donor status.
	ListCommitments(ctx context.Context, params dto.ListCommitmentsParams) ([]domain.Commitment, error)
}

// CommitmentIntakeSvc defines bulk intake of commitments
type CommitmentIntakeSvc interface {
	// ReviewCommitments partitions candidates into valid and invalid without writing anything.
	ReviewCommitments(ctx context.Context, records []review.CommitmentRecord, campainName string) (review.Partition[review.CommitmentRecord], error)

	// UploadCommitments re-reviews and inserts the records atomically. Any invalid record fails the whole upload.
	UploadCommitments(ctx context.Context, records []review.CommitmentRecord, actor string) ([]domain.Commitment, error)
}

// CommitmentWriterSvc defines direct edits of commitments
type CommitmentWriterSvc interface {
	// UpdateCommitment replaces the balance fields of a commitment after validating them.
	// The edit is wholesale: omitted AmountPaid and PaymentsMade default to 0 rather than to the stored values.
	UpdateCommitment(ctx context.Context, commitmentID string, req dto.UpdateCommitmentRequest, actor string) (*domain.Commitment, error)

	// DeleteCommitment removes a commitment that has no payments.
	DeleteCommitment(ctx context.Context, commitmentID string, actor string) (*domain.Commitment, error)
}

// CommitmentSvcFacade combines all commitment-related service interfaces
type CommitmentSvcFacade interface {
	CommitmentReaderSvc
	CommitmentIntakeSvc
	CommitmentWriterSvc
}
