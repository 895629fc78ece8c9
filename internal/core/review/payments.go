package review

import (
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
)

// Payments screens payment candidates. Payments are checked cumulatively: each accepted payment
// moves the prospective state of its commitment, so two payments that only overflow the pledge
// together are caught. Accepted records carry the resolved CommitmentID.
func Payments(records []PaymentRecord, contextCampaign string, ref ReferenceData) Partition[PaymentRecord] {
	out := newPartition[PaymentRecord](len(records))
	running := make(map[string]domain.Commitment)

	for _, r := range records {
		r, reason := screenPayment(r, contextCampaign, ref)
		if reason != "" {
			out.reject(r, reason)
			continue
		}

		key := domain.CommitmentKey{AnashIdentifier: string(r.AnashIdentifier), CampainName: r.CampainName}
		commitment, ok := ref.Commitments[key]
		if !ok {
			out.reject(r, ReasonCommitmentNotFound)
			continue
		}
		if state, seen := running[commitment.CommitmentID]; seen {
			commitment = state
		}

		if err := domain.ValidatePaymentFields(*r.Amount, commitment); err != nil {
			out.reject(r, err.Error())
			continue
		}
		commitment.ApplyPayment(*r.Amount)
		running[commitment.CommitmentID] = commitment

		r.CommitmentID = commitment.CommitmentID
		out.accept(r)
	}
	return out
}

func screenPayment(r PaymentRecord, contextCampaign string, ref ReferenceData) (PaymentRecord, string) {
	if r.AnashIdentifier == "" {
		return r, ReasonMissingIdentifier
	}
	person, ok := ref.activePerson(r.AnashIdentifier)
	if !ok {
		return r, ReasonUnknownDonor
	}

	campaign, reason := resolveCampaign(r.CampainName, contextCampaign)
	r.CampainName = campaign
	if reason != "" {
		return r, reason
	}
	if r.Amount == nil {
		return r, ReasonMissingAmount
	}
	if r.Amount.IsZero() {
		return r, ReasonZeroAmount
	}
	if !r.PaymentMethod.IsValid() {
		return r, ReasonInvalidPaymentMethod
	}
	if r.PaymentMethod == domain.MethodCash && r.Amount.IsNegative() {
		return r, ReasonCashRefundInBatch
	}
	r.FirstName = firstNonEmpty(person.FirstName, r.FirstName)
	r.LastName = firstNonEmpty(person.LastName, r.LastName)

	if _, ok := ref.Campaigns[r.CampainName]; !ok {
		return r, ReasonUnknownCampaign
	}
	return r, ""
}
