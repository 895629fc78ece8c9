package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneOrMany_Unmarshal(t *testing.T) {
	var single dto.OneOrMany[dto.PaymentRecord]
	require.NoError(t, json.Unmarshal([]byte(`{"AnashIdentifier":"1","Amount":10}`), &single))
	require.Len(t, single, 1)
	assert.Equal(t, "10", single[0].Amount.String())

	var many dto.OneOrMany[dto.PaymentRecord]
	require.NoError(t, json.Unmarshal([]byte(`[{"AnashIdentifier":"1"},{"AnashIdentifier":2}]`), &many))
	require.Len(t, many, 2)
	assert.Equal(t, "2", string(many[1].AnashIdentifier))

	var none dto.OneOrMany[dto.PaymentRecord]
	require.NoError(t, json.Unmarshal([]byte(`null`), &none))
	assert.Empty(t, none)
}

func TestListCommitmentsParams_Filter(t *testing.T) {
	f := dto.ListCommitmentsParams{CampainName: "Winter", IsActive: "false"}.Filter()
	require.NotNil(t, f.CampainName)
	require.NotNil(t, f.IsActive)
	assert.Equal(t, "Winter", *f.CampainName)
	assert.False(t, *f.IsActive)

	f = dto.ListCommitmentsParams{}.Filter()
	assert.Nil(t, f.CampainName)
	assert.Nil(t, f.IsActive)
}

func TestParseCalendarDate(t *testing.T) {
	loc := time.FixedZone("IST", 2*60*60)

	got, err := dto.ParseCalendarDate("2025-03-04", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 4, got.Day())

	got, err = dto.ParseCalendarDate("2025-03-04T22:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, 22, got.Hour())

	_, err = dto.ParseCalendarDate("04/03/2025", loc)
	assert.Error(t, err)
}
