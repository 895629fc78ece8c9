package mapping

import (
	"time"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/models"
)

// ToDomainPerson converts a model Person to a domain Person
func ToDomainPerson(m models.Person) domain.Person {
	return domain.Person{
		PersonID:        m.PersonID,
		AnashIdentifier: m.AnashIdentifier,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		IsActive:        m.IsActive,
	}
}

// ToDomainCampaign converts a model Campaign to a domain Campaign
func ToDomainCampaign(m models.Campaign) domain.Campaign {
	return domain.Campaign{
		CampainName:                 m.CampainName,
		MinimumAmountForMemorialDay: m.MinimumAmountForMemorialDay,
	}
}

// ToModelCommitment converts a domain Commitment to a model Commitment
func ToModelCommitment(d domain.Commitment) models.Commitment {
	return models.Commitment{
		CommitmentID:         d.CommitmentID,
		AnashIdentifier:      d.AnashIdentifier,
		PersonID:             d.PersonID,
		FirstName:            d.FirstName,
		LastName:             d.LastName,
		CampainName:          d.CampainName,
		CommitmentAmount:     d.CommitmentAmount,
		AmountPaid:           d.AmountPaid,
		AmountRemaining:      d.AmountRemaining,
		NumberOfPayments:     d.NumberOfPayments,
		PaymentsMade:         d.PaymentsMade,
		PaymentsRemaining:    d.PaymentsRemaining,
		Fundraiser:           d.Fundraiser,
		PaymentMethod:        string(d.PaymentMethod),
		Notes:                d.Notes,
		ResponseToFundraiser: d.ResponseToFundraiser,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCommitment converts a model Commitment and its memorial-day rows to a domain Commitment
func ToDomainCommitment(m models.Commitment, days []models.MemorialDay, loc *time.Location) domain.Commitment {
	c := domain.Commitment{
		CommitmentID:         m.CommitmentID,
		AnashIdentifier:      m.AnashIdentifier,
		PersonID:             m.PersonID,
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		CampainName:          m.CampainName,
		CommitmentAmount:     m.CommitmentAmount,
		AmountPaid:           m.AmountPaid,
		AmountRemaining:      m.AmountRemaining,
		NumberOfPayments:     m.NumberOfPayments,
		PaymentsMade:         m.PaymentsMade,
		PaymentsRemaining:    m.PaymentsRemaining,
		Fundraiser:           m.Fundraiser,
		PaymentMethod:        domain.PaymentMethod(m.PaymentMethod),
		Notes:                m.Notes,
		ResponseToFundraiser: m.ResponseToFundraiser,
		MemorialDays:         make([]domain.MemorialDay, 0, len(days)),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
	for _, d := range days {
		c.MemorialDays = append(c.MemorialDays, domain.MemorialDay{
			Date: FromCalendarDate(d.MemorialDate, loc),
			Note: d.Note,
		})
	}
	return c
}

// ToModelMemorialDays converts the memorial days of a commitment to rows.
func ToModelMemorialDays(d domain.Commitment, loc *time.Location) []models.MemorialDay {
	rows := make([]models.MemorialDay, 0, len(d.MemorialDays))
	for _, day := range d.MemorialDays {
		rows = append(rows, models.MemorialDay{
			CommitmentID: d.CommitmentID,
			CampainName:  d.CampainName,
			MemorialDate: ToCalendarDate(day.Date, loc),
			Note:         day.Note,
		})
	}
	return rows
}

// ToCalendarDate reduces t to the calendar day it falls on in loc, as midnight UTC for a DATE column.
func ToCalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FromCalendarDate turns a DATE column value back into midnight of that day in loc.
func FromCalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
