package domain

import (
	"github.com/shopspring/decimal"
)

// Commitment is a donor's pledge to a campaign with a target amount and an optional payment-count plan.
// NumberOfPayments == 0 means the commitment is not tracked by count.
type Commitment struct {
	CommitmentID         string          `json:"_id"`
	AnashIdentifier      string          `json:"AnashIdentifier"`
	PersonID             string          `json:"PersonID"`
	FirstName            string          `json:"FirstName"`
	LastName             string          `json:"LastName"`
	CampainName          string          `json:"CampainName"`
	CommitmentAmount     decimal.Decimal `json:"CommitmentAmount"`
	AmountPaid           decimal.Decimal `json:"AmountPaid"`
	AmountRemaining      decimal.Decimal `json:"AmountRemaining"`
	NumberOfPayments     int             `json:"NumberOfPayments"`
	PaymentsMade         int             `json:"PaymentsMade"`
	PaymentsRemaining    int             `json:"PaymentsRemaining"`
	Fundraiser           string          `json:"Fundraiser"`
	PaymentMethod        PaymentMethod   `json:"PaymentMethod"`
	Notes                string          `json:"Notes"`
	ResponseToFundraiser string          `json:"ResponseToFundraiser"`
	MemorialDays         []MemorialDay   `json:"MemorialDays"`
	AuditFields
}

// TracksPaymentCount reports whether the payment-count fields take part in the invariants.
func (c Commitment) TracksPaymentCount() bool {
	return c.NumberOfPayments > 0
}

// Key identifies the (donor, campaign) pair a commitment is unique on.
func (c Commitment) Key() CommitmentKey {
	return CommitmentKey{AnashIdentifier: c.AnashIdentifier, CampainName: c.CampainName}
}

// Clone returns a copy that shares no slices with c.
func (c Commitment) Clone() Commitment {
	out := c
	if c.MemorialDays != nil {
		out.MemorialDays = make([]MemorialDay, len(c.MemorialDays))
		copy(out.MemorialDays, c.MemorialDays)
	}
	return out
}

// Balances returns the balance and count fields only.
func (c Commitment) Balances() CommitmentBalances {
	return CommitmentBalances{
		CommitmentAmount:  c.CommitmentAmount,
		AmountPaid:        c.AmountPaid,
		AmountRemaining:   c.AmountRemaining,
		NumberOfPayments:  c.NumberOfPayments,
		PaymentsMade:      c.PaymentsMade,
		PaymentsRemaining: c.PaymentsRemaining,
	}
}

// SetBalances replaces the balance and count fields wholesale.
func (c *Commitment) SetBalances(b CommitmentBalances) {
	c.CommitmentAmount = b.CommitmentAmount
	c.AmountPaid = b.AmountPaid
	c.AmountRemaining = b.AmountRemaining
	c.NumberOfPayments = b.NumberOfPayments
	c.PaymentsMade = b.PaymentsMade
	c.PaymentsRemaining = b.PaymentsRemaining
}

// CommitmentBalances is the numeric part of a commitment that the invariants constrain.
type CommitmentBalances struct {
	CommitmentAmount  decimal.Decimal
	AmountPaid        decimal.Decimal
	AmountRemaining   decimal.Decimal
	NumberOfPayments  int
	PaymentsMade      int
	PaymentsRemaining int
}

// CommitmentKey is the (donor, campaign) pair. At most one commitment exists per key.
type CommitmentKey struct {
	AnashIdentifier string
	CampainName     string
}

func (k CommitmentKey) String() string {
	return k.AnashIdentifier + "-" + k.CampainName
}

// CommitmentFilter narrows commitment listings. Nil fields are not applied.
type CommitmentFilter struct {
	CampainName *string
	IsActive    *bool
}
