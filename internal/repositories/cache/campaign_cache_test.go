package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCampaignReader struct {
	mock.Mock
}

func (m *MockCampaignReader) FindCampaignByName(ctx context.Context, campainName string) (*domain.Campaign, error) {
	args := m.Called(ctx, campainName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignReader) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func TestCampaignCache_HitsUntilTTL(t *testing.T) {
	ctx := context.Background()
	reader := new(MockCampaignReader)
	winter := &domain.Campaign{CampainName: "Winter", MinimumAmountForMemorialDay: decimal.NewFromInt(360)}
	reader.On("FindCampaignByName", ctx, "Winter").Return(winter, nil).Twice()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCampaignCache(reader, 4, time.Minute)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		got, err := c.FindCampaignByName(ctx, "Winter")
		require.NoError(t, err)
		assert.Equal(t, "Winter", got.CampainName)
	}

	now = now.Add(2 * time.Minute)
	_, err := c.FindCampaignByName(ctx, "Winter")
	require.NoError(t, err)

	reader.AssertExpectations(t)
}

func TestCampaignCache_MissesAreNotCached(t *testing.T) {
	ctx := context.Background()
	reader := new(MockCampaignReader)
	reader.On("FindCampaignByName", ctx, "Spring").Return(nil, fmt.Errorf("%w: campaign Spring", apperrors.ErrNotFound)).Twice()

	c := NewCampaignCache(reader, 0, 0)
	for i := 0; i < 2; i++ {
		_, err := c.FindCampaignByName(ctx, "Spring")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}
	reader.AssertExpectations(t)
}

func TestCampaignCache_ListWarmsCache(t *testing.T) {
	ctx := context.Background()
	reader := new(MockCampaignReader)
	reader.On("ListCampaigns", ctx).Return([]domain.Campaign{{CampainName: "Winter"}}, nil).Once()

	c := NewCampaignCache(reader, 4, time.Minute)
	_, err := c.ListCampaigns(ctx)
	require.NoError(t, err)

	got, err := c.FindCampaignByName(ctx, "Winter")
	require.NoError(t, err)
	assert.Equal(t, "Winter", got.CampainName)
	reader.AssertExpectations(t)

	c.Invalidate("Winter")
	reader.On("FindCampaignByName", ctx, "Winter").Return(&domain.Campaign{CampainName: "Winter"}, nil).Once()
	_, err = c.FindCampaignByName(ctx, "Winter")
	require.NoError(t, err)
	reader.AssertExpectations(t)
}
