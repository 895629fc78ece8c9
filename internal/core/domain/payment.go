package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates the accepted ways a payment can be made.
type PaymentMethod string

const (
	MethodCash                PaymentMethod = "cash"
	MethodWireTransfer        PaymentMethod = "wire-transfer"
	MethodPromise             PaymentMethod = "promise/pledge"
	MethodCombined            PaymentMethod = "combined"
	MethodCreditCard          PaymentMethod = "credit-card"
	MethodChecks              PaymentMethod = "checks"
	MethodNotSupplied         PaymentMethod = "not supplied"
	MethodStandingOrder       PaymentMethod = "standing-order"
	MethodStandingOrderCredit PaymentMethod = "standing-order-credit"
	MethodOffset              PaymentMethod = "offset"
	MethodPaymentRefund       PaymentMethod = "payment-refund"
)

// PaymentMethods lists every valid method. It backs request binding, review and the DB CHECK constraint.
var PaymentMethods = []PaymentMethod{
	MethodCash,
	MethodWireTransfer,
	MethodPromise,
	MethodCombined,
	MethodCreditCard,
	MethodChecks,
	MethodNotSupplied,
	MethodStandingOrder,
	MethodStandingOrderCredit,
	MethodOffset,
	MethodPaymentRefund,
}

var paymentMethodSet = func() map[PaymentMethod]struct{} {
	set := make(map[PaymentMethod]struct{}, len(PaymentMethods))
	for _, m := range PaymentMethods {
		set[m] = struct{}{}
	}
	return set
}()

// IsValid reports whether m is one of PaymentMethods.
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodSet[m]
	return ok
}

// Payment is a single signed monetary movement against exactly one commitment.
// Positive amounts are payments, negative amounts are refunds or reversals.
type Payment struct {
	PaymentID       string          `json:"_id"`
	AnashIdentifier string          `json:"AnashIdentifier"`
	FirstName       string          `json:"FirstName"`
	LastName        string          `json:"LastName"`
	CommitmentID    string          `json:"CommitmentId"`
	Amount          decimal.Decimal `json:"Amount"`
	PaymentMethod   PaymentMethod   `json:"PaymentMethod"`
	CampainName     string          `json:"CampainName"`
	Date            time.Time       `json:"Date"`
	AuditFields
}

// IsCashIncome reports whether the payment must be mirrored as a cash-box income entry.
func (p Payment) IsCashIncome() bool {
	return p.PaymentMethod == MethodCash && p.Amount.IsPositive()
}
