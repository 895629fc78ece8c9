package review

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Identifier is a donor identifier that spreadsheets export either as a number or as a string.
type Identifier string

func (id *Identifier) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = Identifier(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = Identifier(n.String())
	return nil
}

// CommitmentRecord is a commitment candidate as submitted for intake.
type CommitmentRecord struct {
	AnashIdentifier      Identifier           `json:"AnashIdentifier"`
	PersonID             string               `json:"PersonID,omitempty"`
	FirstName            string               `json:"FirstName,omitempty"`
	LastName             string               `json:"LastName,omitempty"`
	CampainName          string               `json:"CampainName,omitempty"`
	CommitmentAmount     *decimal.Decimal     `json:"CommitmentAmount,omitempty"`
	AmountPaid           *decimal.Decimal     `json:"AmountPaid,omitempty"`
	AmountRemaining      *decimal.Decimal     `json:"AmountRemaining,omitempty"`
	NumberOfPayments     *int                 `json:"NumberOfPayments,omitempty"`
	PaymentsMade         *int                 `json:"PaymentsMade,omitempty"`
	PaymentsRemaining    *int                 `json:"PaymentsRemaining,omitempty"`
	Fundraiser           string               `json:"Fundraiser,omitempty"`
	PaymentMethod        domain.PaymentMethod `json:"PaymentMethod,omitempty"`
	Notes                string               `json:"Notes,omitempty"`
	ResponseToFundraiser string               `json:"ResponseToFundraiser,omitempty"`
}

// Fields returns the numeric part for the commitment-state validator.
func (r CommitmentRecord) Fields() domain.CommitmentFields {
	return domain.CommitmentFields{
		CommitmentAmount:  r.CommitmentAmount,
		AmountPaid:        r.AmountPaid,
		AmountRemaining:   r.AmountRemaining,
		NumberOfPayments:  r.NumberOfPayments,
		PaymentsMade:      r.PaymentsMade,
		PaymentsRemaining: r.PaymentsRemaining,
	}
}

// ToCommitment builds the commitment to insert from an accepted record and its normalized balances.
func (r CommitmentRecord) ToCommitment(id string, b domain.CommitmentBalances) domain.Commitment {
	c := domain.Commitment{
		CommitmentID:         id,
		AnashIdentifier:      string(r.AnashIdentifier),
		PersonID:             r.PersonID,
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		CampainName:          r.CampainName,
		Fundraiser:           r.Fundraiser,
		PaymentMethod:        r.PaymentMethod,
		Notes:                r.Notes,
		ResponseToFundraiser: r.ResponseToFundraiser,
		MemorialDays:         []domain.MemorialDay{},
	}
	c.SetBalances(b)
	return c
}

// PaymentRecord is a payment candidate as submitted for review or batch upload.
type PaymentRecord struct {
	AnashIdentifier Identifier           `json:"AnashIdentifier"`
	FirstName       string               `json:"FirstName,omitempty"`
	LastName        string               `json:"LastName,omitempty"`
	CampainName     string               `json:"CampainName,omitempty"`
	CommitmentID    string               `json:"CommitmentId,omitempty"`
	Amount          *decimal.Decimal     `json:"Amount,omitempty"`
	PaymentMethod   domain.PaymentMethod `json:"PaymentMethod,omitempty"`
	Date            *time.Time           `json:"Date,omitempty"`
}

// Rejection is a record the pipeline refused, with the reason shown to the operator.
type Rejection[T any] struct {
	Record T
	Reason string
}

// MarshalJSON flattens the record and adds a reason field next to its own fields.
func (r Rejection[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.Record)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	reason, err := json.Marshal(r.Reason)
	if err != nil {
		return nil, err
	}
	fields["reason"] = reason
	return json.Marshal(fields)
}

// Partition is the outcome of a review: accepted records in input order and rejected ones with reasons.
type Partition[T any] struct {
	Valid   []T
	Invalid []Rejection[T]
}

func (p *Partition[T]) accept(r T) {
	p.Valid = append(p.Valid, r)
}

func (p *Partition[T]) reject(r T, reason string) {
	p.Invalid = append(p.Invalid, Rejection[T]{Record: r, Reason: reason})
}

// newPartition keeps both lists non-nil so they encode as empty arrays.
func newPartition[T any](capacity int) Partition[T] {
	return Partition[T]{Valid: make([]T, 0, capacity), Invalid: []Rejection[T]{}}
}
