package dto

import (
	"time"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines a single payment against the donor's commitment to a campaign.
// A negative cash amount reverses an earlier cash income of the same magnitude.
type CreatePaymentRequest struct {
	AnashIdentifier string               `json:"AnashIdentifier" binding:"required"`
	CampainName     string               `json:"CampainName" binding:"required"`
	Amount          *decimal.Decimal     `json:"Amount" binding:"required"`
	PaymentMethod   domain.PaymentMethod `json:"PaymentMethod" binding:"required,payment_method"`
	Date            *time.Time           `json:"Date"`
}

// ReviewPaymentsRequest carries one payment record or an array of them.
type ReviewPaymentsRequest struct {
	Data        OneOrMany[PaymentRecord] `json:"data"`
	CampainName string                   `json:"campainName"`
}

// PaymentResponse wraps a created or deleted payment.
type PaymentResponse struct {
	Status  string         `json:"status"`
	Payment domain.Payment `json:"payment"`
}

// UploadPaymentsResponse wraps the payments created by a batch upload.
type UploadPaymentsResponse struct {
	Status   string           `json:"status"`
	Payments []domain.Payment `json:"payments"`
}
