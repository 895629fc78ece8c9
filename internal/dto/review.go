package dto

import (
	"bytes"
	"encoding/json"

	"github.com/SscSPs/campaign_ledger/internal/core/review"
)

type (
	CommitmentRecord = review.CommitmentRecord
	PaymentRecord    = review.PaymentRecord
)

// OneOrMany decodes either a single JSON object or an array of them.
type OneOrMany[T any] []T

func (o *OneOrMany[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = nil
		return nil
	}
	if b[0] == '[' {
		var many []T
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}
	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*o = OneOrMany[T]{one}
	return nil
}

// ReviewResponse is the partition returned by the review endpoints.
type ReviewResponse[T any] struct {
	Status         string                `json:"status"`
	ValidRecords   []T                   `json:"validRecords"`
	InvalidRecords []review.Rejection[T] `json:"invalidRecords"`
}

// ToReviewResponse converts a review partition.
func ToReviewResponse[T any](p review.Partition[T]) ReviewResponse[T] {
	return ReviewResponse[T]{
		Status:         "success",
		ValidRecords:   p.Valid,
		InvalidRecords: p.Invalid,
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}
