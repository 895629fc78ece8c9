package services

import (
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/campaign_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// campaigns is the reader reviews use for campaign lookups, typically a cache in front of the store.
func NewServiceContainer(repos portsrepo.RepositoryProvider, campaigns portsrepo.CampaignReader, options ...Option) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Commitment:  NewCommitmentService(repos.Store, campaigns, options...),
		Payment:     NewPaymentService(repos.Store, campaigns, options...),
		MemorialDay: NewMemorialDayService(repos.Store, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CommitmentSvcFacade  = (*commitmentService)(nil)
	_ portssvc.PaymentSvcFacade     = (*paymentService)(nil)
	_ portssvc.MemorialDaySvcFacade = (*memorialDayService)(nil)
)
