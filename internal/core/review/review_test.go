package review_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/core/review"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func count(v int) *int {
	return &v
}

func referenceData() review.ReferenceData {
	return review.ReferenceData{
		People: map[string]domain.Person{
			"1001": {PersonID: "p1", AnashIdentifier: "1001", FirstName: "Dana", LastName: "Levi", IsActive: true},
			"1002": {PersonID: "p2", AnashIdentifier: "1002", FirstName: "Avi", LastName: "Cohen", IsActive: true},
			"1003": {PersonID: "p3", AnashIdentifier: "1003", FirstName: "Old", LastName: "Donor", IsActive: false},
		},
		Campaigns: map[string]domain.Campaign{
			"Winter": {CampainName: "Winter", MinimumAmountForMemorialDay: decimal.NewFromInt(360)},
			"Summer": {CampainName: "Summer", MinimumAmountForMemorialDay: decimal.NewFromInt(360)},
		},
		Commitments: map[domain.CommitmentKey]domain.Commitment{
			{AnashIdentifier: "1002", CampainName: "Summer"}: {
				CommitmentID:      "c-summer",
				AnashIdentifier:   "1002",
				CampainName:       "Summer",
				CommitmentAmount:  decimal.NewFromInt(1000),
				AmountPaid:        decimal.Zero,
				AmountRemaining:   decimal.NewFromInt(1000),
				NumberOfPayments:  10,
				PaymentsRemaining: 10,
			},
		},
	}
}

func TestCommitments_Stages(t *testing.T) {
	records := []review.CommitmentRecord{
		{CampainName: "Winter", CommitmentAmount: amount(100), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "9999", CampainName: "Winter", CommitmentAmount: amount(100), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1003", CampainName: "Winter", CommitmentAmount: amount(100), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1001", CampainName: "Summer", CommitmentAmount: amount(100), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1001", CommitmentAmount: amount(0), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1001", CommitmentAmount: amount(100), PaymentMethod: "bitcoin"},
		{AnashIdentifier: "1001", CommitmentAmount: amount(100), PaymentMethod: domain.MethodCash, AmountPaid: amount(200), AmountRemaining: amount(0)},
		{AnashIdentifier: "1001", CommitmentAmount: amount(1000), NumberOfPayments: count(10), PaymentMethod: domain.MethodChecks},
	}

	got := review.Commitments(records, "Winter", referenceData())

	require.Len(t, got.Valid, 1)
	valid := got.Valid[0]
	assert.Equal(t, "Winter", valid.CampainName)
	assert.Equal(t, "Dana", valid.FirstName)
	assert.Equal(t, "p1", valid.PersonID)

	reasons := make([]string, 0, len(got.Invalid))
	for _, r := range got.Invalid {
		reasons = append(reasons, r.Reason)
	}
	assert.Equal(t, []string{
		review.ReasonMissingIdentifier,
		review.ReasonUnknownDonor,
		review.ReasonUnknownDonor,
		review.ReasonCampaignMismatch,
		review.ReasonInvalidCommitmentAmount,
		review.ReasonInvalidPaymentMethod,
		"amount paid exceeds pledge amount",
	}, reasons)
}

func TestCommitments_CrossReference(t *testing.T) {
	records := []review.CommitmentRecord{
		{AnashIdentifier: "1002", CampainName: "Summer", CommitmentAmount: amount(100), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1002", CampainName: "Spring", CommitmentAmount: amount(100), PaymentMethod: domain.MethodCash},
	}

	got := review.Commitments(records, "", referenceData())

	assert.Empty(t, got.Valid)
	require.Len(t, got.Invalid, 2)
	assert.Equal(t, review.ReasonCommitmentExists, got.Invalid[0].Reason)
	assert.Equal(t, review.ReasonUnknownCampaign, got.Invalid[1].Reason)
}

func TestCommitments_DuplicateInBatch(t *testing.T) {
	records := []review.CommitmentRecord{
		{AnashIdentifier: "1001", CampainName: "Winter", CommitmentAmount: amount(500), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1001", CampainName: "Winter", CommitmentAmount: amount(700), PaymentMethod: domain.MethodChecks},
	}

	got := review.Commitments(records, "", referenceData())

	require.Len(t, got.Valid, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(*got.Valid[0].CommitmentAmount))
	require.Len(t, got.Invalid, 1)
	assert.Equal(t, review.ReasonDuplicateCommitment, got.Invalid[0].Reason)
}

func TestCommitments_FirstValidOccurrenceWins(t *testing.T) {
	records := []review.CommitmentRecord{
		{AnashIdentifier: "1001", CampainName: "Winter", CommitmentAmount: amount(500), AmountPaid: amount(900), AmountRemaining: amount(0), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1001", CampainName: "Winter", CommitmentAmount: amount(700), PaymentMethod: domain.MethodChecks},
	}

	got := review.Commitments(records, "", referenceData())

	require.Len(t, got.Valid, 1)
	assert.True(t, decimal.NewFromInt(700).Equal(*got.Valid[0].CommitmentAmount))
}

func TestPayments_Stages(t *testing.T) {
	records := []review.PaymentRecord{
		{AnashIdentifier: "1002", Amount: amount(100), PaymentMethod: domain.MethodChecks},
		{AnashIdentifier: "1002"},
		{AnashIdentifier: "1002", Amount: amount(0), PaymentMethod: domain.MethodChecks},
		{AnashIdentifier: "1002", Amount: amount(-10), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1002", Amount: amount(10), PaymentMethod: "paypal"},
		{AnashIdentifier: "1001", Amount: amount(10), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "1002", CampainName: "Winter", Amount: amount(10), PaymentMethod: domain.MethodCash},
	}

	got := review.Payments(records, "Summer", referenceData())

	require.Len(t, got.Valid, 1)
	assert.Equal(t, "c-summer", got.Valid[0].CommitmentID)
	assert.Equal(t, "Avi", got.Valid[0].FirstName)
	assert.Equal(t, "Summer", got.Valid[0].CampainName)

	reasons := make([]string, 0, len(got.Invalid))
	for _, r := range got.Invalid {
		reasons = append(reasons, r.Reason)
	}
	assert.Equal(t, []string{
		review.ReasonMissingAmount,
		review.ReasonZeroAmount,
		review.ReasonCashRefundInBatch,
		review.ReasonInvalidPaymentMethod,
		review.ReasonCommitmentNotFound,
		review.ReasonCampaignMismatch,
	}, reasons)
}

func TestPayments_CumulativeAgainstRunningState(t *testing.T) {
	records := []review.PaymentRecord{
		{AnashIdentifier: "1002", Amount: amount(600), PaymentMethod: domain.MethodChecks},
		{AnashIdentifier: "1002", Amount: amount(600), PaymentMethod: domain.MethodChecks},
		{AnashIdentifier: "1002", Amount: amount(400), PaymentMethod: domain.MethodChecks},
	}
	ref := referenceData()

	got := review.Payments(records, "Summer", ref)

	require.Len(t, got.Valid, 2)
	require.Len(t, got.Invalid, 1)
	assert.Equal(t, "amount paid exceeds pledge amount", got.Invalid[0].Reason)
	// reference data is never mutated
	assert.True(t, ref.Commitments[domain.CommitmentKey{AnashIdentifier: "1002", CampainName: "Summer"}].AmountPaid.IsZero())
}

func TestRejection_MarshalJSONAddsReason(t *testing.T) {
	rej := review.Rejection[review.PaymentRecord]{
		Record: review.PaymentRecord{AnashIdentifier: "1002", Amount: amount(5)},
		Reason: review.ReasonInvalidPaymentMethod,
	}

	b, err := json.Marshal(rej)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "1002", decoded["AnashIdentifier"])
	assert.Equal(t, "5", decoded["Amount"])
	assert.Equal(t, review.ReasonInvalidPaymentMethod, decoded["reason"])
}

func TestIdentifier_AcceptsNumbersAndStrings(t *testing.T) {
	var records []review.CommitmentRecord
	require.NoError(t, json.Unmarshal([]byte(`[{"AnashIdentifier":1001},{"AnashIdentifier":" 1002 "},{"AnashIdentifier":null}]`), &records))

	assert.Equal(t, review.Identifier("1001"), records[0].AnashIdentifier)
	assert.Equal(t, review.Identifier("1002"), records[1].AnashIdentifier)
	assert.Equal(t, review.Identifier(""), records[2].AnashIdentifier)
}

func TestCampaignNames(t *testing.T) {
	assert.Equal(t, []string{"Winter", "Summer"}, review.CampaignNames("Winter", "", "Summer", "Winter"))
	assert.Nil(t, review.CampaignNames(""))
}
