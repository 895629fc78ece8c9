package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MemorialDay is a calendar date allocated to a commitment. Only the date part of Date is significant.
type MemorialDay struct {
	Date time.Time `json:"date"`
	Note string    `json:"note,omitempty"`
}

// SameCalendarDate compares year, month and day of a and b in loc, ignoring time of day.
// A nil loc means UTC.
func SameCalendarDate(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// MemorialDayCapacity is how many more memorial days the commitment's pledge unlocks in the campaign.
// Campaigns without a positive per-day minimum unlock none.
func MemorialDayCapacity(c Commitment, campaign Campaign) int {
	if !campaign.MinimumAmountForMemorialDay.IsPositive() {
		return 0
	}
	slots := c.CommitmentAmount.Div(campaign.MinimumAmountForMemorialDay).Floor().IntPart()
	return int(slots) - len(c.MemorialDays)
}

// MemorialDaysCovered reports whether a pledge of amount still pays for every allocated day.
func MemorialDaysCovered(amount decimal.Decimal, days int, campaign Campaign) bool {
	if days == 0 {
		return true
	}
	return amount.GreaterThanOrEqual(campaign.MinimumAmountForMemorialDay.Mul(decimal.NewFromInt(int64(days))))
}

// FindMemorialDayHolder returns the commitment, other than exceptID, that already holds date.
func FindMemorialDayHolder(commitments []Commitment, date time.Time, exceptID string, loc *time.Location) (Commitment, bool) {
	for _, c := range commitments {
		if c.CommitmentID == exceptID {
			continue
		}
		for _, d := range c.MemorialDays {
			if SameCalendarDate(d.Date, date, loc) {
				return c, true
			}
		}
	}
	return Commitment{}, false
}

// AssignMemorialDay allocates day to c. A date c already holds is overwritten in place and
// consumes no capacity. Campaign-wide exclusivity is checked by the caller.
func AssignMemorialDay(c *Commitment, campaign Campaign, day MemorialDay, loc *time.Location) error {
	for i, d := range c.MemorialDays {
		if SameCalendarDate(d.Date, day.Date, loc) {
			c.MemorialDays[i] = day
			return nil
		}
	}
	if MemorialDayCapacity(*c, campaign) <= 0 {
		return fmt.Errorf("%w: commitment %s has no memorial days left to allocate", apperrors.ErrValidation, c.CommitmentID)
	}
	c.MemorialDays = append(c.MemorialDays, day)
	return nil
}

// RemoveMemorialDay drops every entry on date and fails when none matched.
func RemoveMemorialDay(c *Commitment, date time.Time, loc *time.Location) error {
	kept := make([]MemorialDay, 0, len(c.MemorialDays))
	for _, d := range c.MemorialDays {
		if !SameCalendarDate(d.Date, date, loc) {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(c.MemorialDays) {
		return fmt.Errorf("%w: memorial day %s not found", apperrors.ErrNotFound, date.Format(time.DateOnly))
	}
	c.MemorialDays = kept
	return nil
}

// ErrMemorialDayAllocated reports a date held in the campaign by a commitment the caller has not identified.
var ErrMemorialDayAllocated = fmt.Errorf("%w: memorial day already allocated in campaign", apperrors.ErrConflict)

// MemorialDayTakenError names the commitment that already holds a date.
type MemorialDayTakenError struct {
	Date   time.Time
	Holder Commitment
}

func (e *MemorialDayTakenError) Error() string {
	return fmt.Sprintf("memorial day %s is already allocated to %s", e.Date.Format(time.DateOnly), joinName(e.Holder.FirstName, e.Holder.LastName))
}

func (e *MemorialDayTakenError) Unwrap() error {
	return apperrors.ErrConflict
}

// MemorialDayEligibility describes a donor who can still be allocated memorial days in a campaign.
type MemorialDayEligibility struct {
	AnashIdentifier  string          `json:"AnashIdentifier"`
	FirstName        string          `json:"FirstName"`
	LastName         string          `json:"LastName"`
	CommitmentID     string          `json:"CommitmentId"`
	CommitmentAmount decimal.Decimal `json:"CommitmentAmount"`
	MemorialDays     []MemorialDay   `json:"MemorialDays"`
	RemainingDays    int             `json:"remainingDays"`
}
