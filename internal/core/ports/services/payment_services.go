package services

import (
	"context"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/core/review"
	"github.com/SscSPs/campaign_ledger/internal/dto"
)

// PaymentReviewSvc screens bulk payment files
type PaymentReviewSvc interface {
	ReviewPayments(ctx context.Context, records []review.PaymentRecord, campainName string) (review.Partition[review.PaymentRecord], error)
}

// PaymentWriterSvc defines the atomic payment operations
type PaymentWriterSvc interface {
	// CreatePayment records one payment against the donor's commitment to the campaign.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actor string) (*domain.Payment, error)

	// UploadPayments records a batch of payments, each with an explicit commitment reference.
	// Either every payment is recorded or none is.
	UploadPayments(ctx context.Context, records []review.PaymentRecord, actor string) ([]domain.Payment, error)

	// DeletePayment removes a payment and reverses its effect on the commitment.
	DeletePayment(ctx context.Context, paymentID string, actor string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReviewSvc
	PaymentWriterSvc
}
