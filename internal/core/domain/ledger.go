package domain

import "github.com/shopspring/decimal"

// LedgerDelta is the effect of one or more payments on a commitment's balance fields.
// Count is the net number of payments (+1 per payment, -1 per refund).
type LedgerDelta struct {
	Amount decimal.Decimal
	Count  int
}

// PaymentDelta is the delta a single signed payment amount applies.
func PaymentDelta(amount decimal.Decimal) LedgerDelta {
	count := -1
	if amount.IsPositive() {
		count = 1
	}
	return LedgerDelta{Amount: amount, Count: count}
}

// Add accumulates another delta. Applying the sum equals applying both in sequence.
func (d LedgerDelta) Add(other LedgerDelta) LedgerDelta {
	return LedgerDelta{Amount: d.Amount.Add(other.Amount), Count: d.Count + other.Count}
}

// Inverse is the delta that exactly undoes d.
func (d LedgerDelta) Inverse() LedgerDelta {
	return LedgerDelta{Amount: d.Amount.Neg(), Count: -d.Count}
}

// ApplyDelta mutates the balance fields. PaymentsRemaining only moves when the count is tracked.
// Callers validate the prospective state first.
func (c *Commitment) ApplyDelta(d LedgerDelta) {
	c.AmountPaid = c.AmountPaid.Add(d.Amount)
	c.AmountRemaining = c.AmountRemaining.Sub(d.Amount)
	c.PaymentsMade += d.Count
	if c.TracksPaymentCount() {
		c.PaymentsRemaining -= d.Count
	}
}

// ApplyPayment records a payment of the given signed amount.
func (c *Commitment) ApplyPayment(amount decimal.Decimal) {
	c.ApplyDelta(PaymentDelta(amount))
}

// RevertPayment undoes ApplyPayment for the same amount.
func (c *Commitment) RevertPayment(amount decimal.Decimal) {
	c.ApplyDelta(PaymentDelta(amount).Inverse())
}

// Prospective returns the balances c would have after d, leaving c untouched.
func (c Commitment) Prospective(d LedgerDelta) CommitmentBalances {
	next := c
	next.ApplyDelta(d)
	return next.Balances()
}
