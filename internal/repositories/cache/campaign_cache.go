// Package cache holds read-through caches in front of ledger repositories.
package cache

import (
	"context"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultCampaignCacheSize = 128
	defaultCampaignCacheTTL  = time.Minute
)

type campaignEntry struct {
	campaign domain.Campaign
	storedAt time.Time
}

// CampaignCache serves campaign lookups for reviews from an LRU with a TTL.
// Campaigns change rarely and a review never writes, so a short stale window is acceptable.
// Transactions read campaigns from their own store, never from this cache.
type CampaignCache struct {
	delegate portsrepo.CampaignReader
	cache    *lru.Cache[string, campaignEntry]
	ttl      time.Duration
	now      func() time.Time
}

var _ portsrepo.CampaignReader = (*CampaignCache)(nil)

// NewCampaignCache wraps delegate. Non-positive size or ttl fall back to defaults.
func NewCampaignCache(delegate portsrepo.CampaignReader, size int, ttl time.Duration) *CampaignCache {
	if size <= 0 {
		size = defaultCampaignCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCampaignCacheTTL
	}
	// lru.New only errors on non-positive size which we guard above.
	c, _ := lru.New[string, campaignEntry](size)
	return &CampaignCache{delegate: delegate, cache: c, ttl: ttl, now: time.Now}
}

// FindCampaignByName returns a cached campaign or loads it. Misses are not cached.
func (c *CampaignCache) FindCampaignByName(ctx context.Context, campainName string) (*domain.Campaign, error) {
	if entry, ok := c.cache.Get(campainName); ok {
		if c.now().Sub(entry.storedAt) < c.ttl {
			campaign := entry.campaign
			return &campaign, nil
		}
		c.cache.Remove(campainName)
	}

	campaign, err := c.delegate.FindCampaignByName(ctx, campainName)
	if err != nil {
		return nil, err
	}
	c.cache.Add(campainName, campaignEntry{campaign: *campaign, storedAt: c.now()})
	return campaign, nil
}

// ListCampaigns always reads through and refreshes the cache with the result.
func (c *CampaignCache) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := c.delegate.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	now := c.now()
	for _, campaign := range campaigns {
		c.cache.Add(campaign.CampainName, campaignEntry{campaign: campaign, storedAt: now})
	}
	return campaigns, nil
}

// Invalidate drops a campaign so the next lookup reloads it.
func (c *CampaignCache) Invalidate(campainName string) {
	c.cache.Remove(campainName)
}
