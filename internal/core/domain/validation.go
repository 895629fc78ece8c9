package domain

import (
	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ViolationCode names the invariant a rejected state would break.
type ViolationCode string

const (
	InvalidCommitmentAmount      ViolationCode = "invalid_commitment_amount"
	InvalidNumberOfPayments      ViolationCode = "invalid_number_of_payments"
	NegativeAmountRemaining      ViolationCode = "negative_amount_remaining"
	AmountRemainingExceedsPledge ViolationCode = "amount_remaining_exceeds_pledge"
	NegativePaymentsRemaining    ViolationCode = "negative_payments_remaining"
	PaymentsRemainingExceedTotal ViolationCode = "payments_remaining_exceed_total"
	AmountPaidExceedsPledge      ViolationCode = "amount_paid_exceeds_pledge"
	PaymentsMadeExceedTotal      ViolationCode = "payments_made_exceed_total"
	AmountRemainingMismatch      ViolationCode = "amount_remaining_mismatch"
	PaymentsRemainingMismatch    ViolationCode = "payments_remaining_mismatch"
	ZeroPaymentAmount            ViolationCode = "zero_payment_amount"
)

var violationMessages = map[ViolationCode]string{
	InvalidCommitmentAmount:      "commitment amount is invalid",
	InvalidNumberOfPayments:      "number of payments is invalid",
	NegativeAmountRemaining:      "amount remaining cannot be negative",
	AmountRemainingExceedsPledge: "amount remaining cannot exceed the pledge amount",
	NegativePaymentsRemaining:    "payments remaining cannot be negative",
	PaymentsRemainingExceedTotal: "payments remaining cannot exceed the number of payments",
	AmountPaidExceedsPledge:      "amount paid exceeds pledge amount",
	PaymentsMadeExceedTotal:      "payments made cannot exceed the number of payments",
	AmountRemainingMismatch:      "amount remaining does not match the pledge amount minus the amount paid",
	PaymentsRemainingMismatch:    "payments remaining does not match the number of payments minus the payments made",
	ZeroPaymentAmount:            "payment amount cannot be 0",
}

// FieldError reports the first invariant a proposed commitment state violates.
type FieldError struct {
	Code    ViolationCode `json:"code"`
	Message string        `json:"message"`
}

func newFieldError(code ViolationCode) *FieldError {
	return &FieldError{Code: code, Message: violationMessages[code]}
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return apperrors.ErrInvariant
}

// CommitmentFields is a proposed commitment state as submitted. Nil means the field was absent.
type CommitmentFields struct {
	CommitmentAmount  *decimal.Decimal
	AmountPaid        *decimal.Decimal
	AmountRemaining   *decimal.Decimal
	NumberOfPayments  *int
	PaymentsMade      *int
	PaymentsRemaining *int
}

// FieldsOf exposes an existing commitment as fully populated CommitmentFields.
func FieldsOf(b CommitmentBalances) CommitmentFields {
	return CommitmentFields{
		CommitmentAmount:  &b.CommitmentAmount,
		AmountPaid:        &b.AmountPaid,
		AmountRemaining:   &b.AmountRemaining,
		NumberOfPayments:  &b.NumberOfPayments,
		PaymentsMade:      &b.PaymentsMade,
		PaymentsRemaining: &b.PaymentsRemaining,
	}
}

// ValidateCommitmentFields normalizes a proposed commitment state and checks it against the
// commitment invariants, returning the first violation.
//
// Missing AmountPaid and PaymentsMade default to zero. Missing AmountRemaining and
// PaymentsRemaining default to the pledge totals. Defaults apply only when a field is absent,
// for both intake and edits, so an explicit zero is always kept.
func ValidateCommitmentFields(f CommitmentFields) (CommitmentBalances, error) {
	b := CommitmentBalances{
		CommitmentAmount: derefDecimal(f.CommitmentAmount, decimal.Zero),
		AmountPaid:       derefDecimal(f.AmountPaid, decimal.Zero),
		NumberOfPayments: derefInt(f.NumberOfPayments, 0),
		PaymentsMade:     derefInt(f.PaymentsMade, 0),
	}
	b.AmountRemaining = derefDecimal(f.AmountRemaining, b.CommitmentAmount)
	b.PaymentsRemaining = derefInt(f.PaymentsRemaining, b.NumberOfPayments)
	tracked := b.NumberOfPayments != 0

	switch {
	case !b.CommitmentAmount.IsPositive():
		return b, newFieldError(InvalidCommitmentAmount)
	case tracked && b.NumberOfPayments < 0:
		return b, newFieldError(InvalidNumberOfPayments)
	case b.AmountRemaining.IsNegative():
		return b, newFieldError(NegativeAmountRemaining)
	case b.AmountRemaining.GreaterThan(b.CommitmentAmount):
		return b, newFieldError(AmountRemainingExceedsPledge)
	case tracked && b.PaymentsRemaining < 0:
		return b, newFieldError(NegativePaymentsRemaining)
	case tracked && b.PaymentsRemaining > b.NumberOfPayments:
		return b, newFieldError(PaymentsRemainingExceedTotal)
	case b.CommitmentAmount.LessThan(b.AmountPaid):
		return b, newFieldError(AmountPaidExceedsPledge)
	case tracked && b.NumberOfPayments < b.PaymentsMade:
		return b, newFieldError(PaymentsMadeExceedTotal)
	case !b.CommitmentAmount.Sub(b.AmountPaid).Equal(b.AmountRemaining):
		return b, newFieldError(AmountRemainingMismatch)
	case tracked && b.NumberOfPayments-b.PaymentsMade != b.PaymentsRemaining:
		return b, newFieldError(PaymentsRemainingMismatch)
	}
	return b, nil
}

// ValidatePaymentFields checks the state the commitment would reach after applying a payment
// of the given signed amount.
func ValidatePaymentFields(amount decimal.Decimal, c Commitment) error {
	if amount.IsZero() {
		return newFieldError(ZeroPaymentAmount)
	}
	return validateProspective(c, PaymentDelta(amount))
}

// ValidateDeletePaymentFields checks the state the commitment would reach after removing a
// previously applied payment of the given signed amount.
func ValidateDeletePaymentFields(amount decimal.Decimal, c Commitment) error {
	if amount.IsZero() {
		return newFieldError(ZeroPaymentAmount)
	}
	return validateProspective(c, PaymentDelta(amount).Inverse())
}

func validateProspective(c Commitment, d LedgerDelta) error {
	next := c.Prospective(d)
	switch {
	case next.AmountPaid.GreaterThan(next.CommitmentAmount):
		return newFieldError(AmountPaidExceedsPledge)
	case next.AmountRemaining.IsNegative():
		return newFieldError(NegativeAmountRemaining)
	case next.AmountRemaining.GreaterThan(next.CommitmentAmount):
		return newFieldError(AmountRemainingExceedsPledge)
	}
	if !c.TracksPaymentCount() {
		return nil
	}
	switch {
	case next.PaymentsMade > next.NumberOfPayments:
		return newFieldError(PaymentsMadeExceedTotal)
	case next.PaymentsRemaining < 0:
		return newFieldError(NegativePaymentsRemaining)
	case next.PaymentsRemaining > next.NumberOfPayments:
		return newFieldError(PaymentsRemainingExceedTotal)
	}
	return nil
}

func derefDecimal(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}

func derefInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
