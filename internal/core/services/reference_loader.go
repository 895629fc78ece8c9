package services

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/campaign_ledger/internal/core/review"
)

// referenceLoader gathers the reference data a review checks records against.
type referenceLoader struct {
	people      portsrepo.PersonReader
	campaigns   portsrepo.CampaignReader
	commitments portsrepo.CommitmentReader
	// limit bounds concurrent reads. Readers bound to a single connection need 1.
	limit int
}

// load reads every donor plus, for each named campaign that exists, the campaign and its commitments.
// Unknown campaigns are simply absent so the review can reject the records that name them.
func (l referenceLoader) load(ctx context.Context, campaignNames []string) (review.ReferenceData, error) {
	ref := review.ReferenceData{
		People:      map[string]domain.Person{},
		Campaigns:   map[string]domain.Campaign{},
		Commitments: map[domain.CommitmentKey]domain.Commitment{},
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if l.limit > 0 {
		g.SetLimit(l.limit)
	}

	g.Go(func() error {
		people, err := l.people.ListPeople(gctx, false)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, p := range people {
			ref.People[p.AnashIdentifier] = p
		}
		return nil
	})

	for _, name := range campaignNames {
		g.Go(func() error {
			campaign, err := l.campaigns.FindCampaignByName(gctx, name)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			commitments, err := l.commitments.ListCommitmentsByCampaign(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			ref.Campaigns[name] = *campaign
			for _, c := range commitments {
				ref.Commitments[c.Key()] = c
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return review.ReferenceData{}, err
	}
	return ref, nil
}

func commitmentCampaigns(records []review.CommitmentRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.CampainName)
	}
	return names
}

func paymentCampaigns(records []review.PaymentRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.CampainName)
	}
	return names
}
