package review

import (
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
)

// Commitments screens commitment candidates for intake. contextCampaign is the campaign page the
// batch was submitted from and may be empty.
//
// Per record the stages run in order: donor enrichment, structural checks, cross-reference
// against existing campaigns and commitments, in-batch duplicate detection and the
// commitment-state validator. The first accepted record for a (donor, campaign) pair wins.
func Commitments(records []CommitmentRecord, contextCampaign string, ref ReferenceData) Partition[CommitmentRecord] {
	out := newPartition[CommitmentRecord](len(records))
	seen := make(map[domain.CommitmentKey]struct{}, len(records))

	for _, r := range records {
		r, reason := screenCommitment(r, contextCampaign, ref)
		if reason != "" {
			out.reject(r, reason)
			continue
		}

		key := domain.CommitmentKey{AnashIdentifier: string(r.AnashIdentifier), CampainName: r.CampainName}
		if _, dup := seen[key]; dup {
			out.reject(r, ReasonDuplicateCommitment)
			continue
		}

		if _, err := domain.ValidateCommitmentFields(r.Fields()); err != nil {
			out.reject(r, err.Error())
			continue
		}

		seen[key] = struct{}{}
		out.accept(r)
	}
	return out
}

func screenCommitment(r CommitmentRecord, contextCampaign string, ref ReferenceData) (CommitmentRecord, string) {
	if r.AnashIdentifier == "" {
		return r, ReasonMissingIdentifier
	}
	person, ok := ref.activePerson(r.AnashIdentifier)
	if !ok {
		return r, ReasonUnknownDonor
	}
	r.FirstName = firstNonEmpty(person.FirstName, r.FirstName)
	r.LastName = firstNonEmpty(person.LastName, r.LastName)
	r.PersonID = firstNonEmpty(person.PersonID, r.PersonID)

	campaign, reason := resolveCampaign(r.CampainName, contextCampaign)
	r.CampainName = campaign
	if reason != "" {
		return r, reason
	}
	if r.CommitmentAmount == nil || !r.CommitmentAmount.IsPositive() {
		return r, ReasonInvalidCommitmentAmount
	}
	if !r.PaymentMethod.IsValid() {
		return r, ReasonInvalidPaymentMethod
	}

	if _, ok := ref.Campaigns[r.CampainName]; !ok {
		return r, ReasonUnknownCampaign
	}
	key := domain.CommitmentKey{AnashIdentifier: string(r.AnashIdentifier), CampainName: r.CampainName}
	if _, exists := ref.Commitments[key]; exists {
		return r, ReasonCommitmentExists
	}
	return r, ""
}
