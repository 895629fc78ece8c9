package dto

import (
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateCommitmentRequest defines a direct edit of a commitment.
// Using pointers to differentiate between omitted fields and zero-value fields.
// Donor and campaign cannot change; when supplied they must match the stored commitment.
type UpdateCommitmentRequest struct {
	AnashIdentifier      *string               `json:"AnashIdentifier"`
	CampainName          *string               `json:"CampainName"`
	CommitmentAmount     *decimal.Decimal      `json:"CommitmentAmount" binding:"required"`
	AmountPaid           *decimal.Decimal      `json:"AmountPaid"`
	AmountRemaining      *decimal.Decimal      `json:"AmountRemaining"`
	NumberOfPayments     *int                  `json:"NumberOfPayments"`
	PaymentsMade         *int                  `json:"PaymentsMade"`
	PaymentsRemaining    *int                  `json:"PaymentsRemaining"`
	Fundraiser           *string               `json:"Fundraiser"`
	PaymentMethod        *domain.PaymentMethod `json:"PaymentMethod" binding:"omitempty,payment_method"`
	Notes                *string               `json:"Notes"`
	ResponseToFundraiser *string               `json:"ResponseToFundraiser"`
}

// Fields returns the numeric part for the commitment-state validator.
func (r UpdateCommitmentRequest) Fields() domain.CommitmentFields {
	return domain.CommitmentFields{
		CommitmentAmount:  r.CommitmentAmount,
		AmountPaid:        r.AmountPaid,
		AmountRemaining:   r.AmountRemaining,
		NumberOfPayments:  r.NumberOfPayments,
		PaymentsMade:      r.PaymentsMade,
		PaymentsRemaining: r.PaymentsRemaining,
	}
}

// ListCommitmentsParams defines query parameters for listing commitments.
// IsActive is kept as text so that "true", "false" and absent can be told apart.
type ListCommitmentsParams struct {
	CampainName string `form:"campainName"`
	IsActive    string `form:"isActive" binding:"omitempty,oneof=true false"`
}

// Filter converts the query parameters.
func (p ListCommitmentsParams) Filter() domain.CommitmentFilter {
	var f domain.CommitmentFilter
	if p.CampainName != "" {
		name := p.CampainName
		f.CampainName = &name
	}
	if p.IsActive != "" {
		active := p.IsActive == "true"
		f.IsActive = &active
	}
	return f
}

// CommitmentDetailsResponse is a commitment together with the payments made against it.
type CommitmentDetailsResponse struct {
	Commitment domain.Commitment `json:"commitment"`
	Payments   []domain.Payment  `json:"payments"`
}

// ListCommitmentsResponse wraps the list of commitments.
type ListCommitmentsResponse struct {
	Status      string              `json:"status"`
	Commitments []domain.Commitment `json:"commitments"`
}

// UploadCommitmentsResponse wraps the inserted commitments.
type UploadCommitmentsResponse struct {
	Status              string              `json:"status"`
	UploadedCommitments []domain.Commitment `json:"uploadedCommitments"`
}
