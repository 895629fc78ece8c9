// Package review screens bulk intake records before anything is written.
// Every function here is pure: reference data comes in, a partition comes out.
package review

import (
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
)

// Rejection reasons.
const (
	ReasonMissingIdentifier       = "donor identifier not supplied"
	ReasonUnknownDonor            = "donor identifier does not exist or is not active"
	ReasonMissingCampaign         = "campaign name not supplied"
	ReasonCampaignMismatch        = "campaign name does not match the campaign page"
	ReasonInvalidCommitmentAmount = "invalid commitment amount"
	ReasonInvalidPaymentMethod    = "invalid payment method"
	ReasonUnknownCampaign         = "campaign does not exist"
	ReasonCommitmentExists        = "commitment already exists"
	ReasonDuplicateCommitment     = "duplicate commitment for the same donor and campaign"
	ReasonMissingAmount           = "payment amount not supplied"
	ReasonZeroAmount              = "payment amount cannot be 0"
	ReasonCashRefundInBatch       = "cash refunds cannot be uploaded in bulk, record them manually"
	ReasonCommitmentNotFound      = "commitment does not exist"
)

// ReferenceData is the read-only state a review checks records against.
type ReferenceData struct {
	// People holds donors by AnashIdentifier. Inactive donors may be present and are rejected.
	People      map[string]domain.Person
	Campaigns   map[string]domain.Campaign
	Commitments map[domain.CommitmentKey]domain.Commitment
}

func (ref ReferenceData) activePerson(id Identifier) (domain.Person, bool) {
	p, ok := ref.People[string(id)]
	if !ok || !p.IsActive {
		return domain.Person{}, false
	}
	return p, true
}

// resolveCampaign applies the contextual campaign and reports a rejection reason, if any.
func resolveCampaign(recordCampaign, contextCampaign string) (string, string) {
	switch {
	case recordCampaign == "" && contextCampaign == "":
		return "", ReasonMissingCampaign
	case recordCampaign != "" && contextCampaign != "" && recordCampaign != contextCampaign:
		return recordCampaign, ReasonCampaignMismatch
	case recordCampaign == "":
		return contextCampaign, ""
	default:
		return recordCampaign, ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CampaignNames lists the distinct campaigns a batch refers to, in first-seen order.
func CampaignNames(contextCampaign string, recordCampaigns ...string) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(n string) {
		if n == "" {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	add(contextCampaign)
	for _, n := range recordCampaigns {
		add(n)
	}
	return names
}
