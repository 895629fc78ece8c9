package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
)

// AssignMemorialDayRequest allocates a calendar date to the donor's commitment in a campaign.
type AssignMemorialDayRequest struct {
	AnashIdentifier string `json:"AnashIdentifier" binding:"required"`
	CampainName     string `json:"CampainName" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Note            string `json:"note"`
}

// RemoveMemorialDayParams identifies the memorial day to drop.
type RemoveMemorialDayParams struct {
	AnashIdentifier string `form:"AnashIdentifier" binding:"required"`
	CampainName     string `form:"CampainName" binding:"required"`
	Date            string `form:"date" binding:"required"`
}

// EligibleDonorsResponse wraps the donors that can still receive memorial days.
type EligibleDonorsResponse struct {
	Status string                          `json:"status"`
	People []domain.MemorialDayEligibility `json:"people"`
}

// ParseCalendarDate accepts YYYY-MM-DD, interpreted in loc, or a full RFC 3339 timestamp.
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, s)
	}
	return t, nil
}
