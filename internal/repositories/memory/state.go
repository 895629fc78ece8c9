package memory

import (
	"sort"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
)

type auditKey struct {
	anashIdentifier string
	category        domain.OperationCategory
}

// state is one immutable-once-published version of the data. Transactions work on a clone.
type state struct {
	loc         *time.Location
	people      map[string]domain.Person
	campaigns   map[string]domain.Campaign
	commitments map[string]domain.Commitment
	payments    map[string]domain.Payment
	cashBox     map[string]domain.CashBoxEntry
	audit       map[auditKey][]domain.AuditRecord
}

func newState(loc *time.Location) *state {
	return &state{
		loc:         loc,
		people:      map[string]domain.Person{},
		campaigns:   map[string]domain.Campaign{},
		commitments: map[string]domain.Commitment{},
		payments:    map[string]domain.Payment{},
		cashBox:     map[string]domain.CashBoxEntry{},
		audit:       map[auditKey][]domain.AuditRecord{},
	}
}

func (s *state) clone() *state {
	out := &state{
		loc:         s.loc,
		people:      make(map[string]domain.Person, len(s.people)),
		campaigns:   make(map[string]domain.Campaign, len(s.campaigns)),
		commitments: make(map[string]domain.Commitment, len(s.commitments)),
		payments:    make(map[string]domain.Payment, len(s.payments)),
		cashBox:     make(map[string]domain.CashBoxEntry, len(s.cashBox)),
		audit:       make(map[auditKey][]domain.AuditRecord, len(s.audit)),
	}
	for k, v := range s.people {
		out.people[k] = v
	}
	for k, v := range s.campaigns {
		out.campaigns[k] = v
	}
	for k, v := range s.commitments {
		out.commitments[k] = v.Clone()
	}
	for k, v := range s.payments {
		out.payments[k] = v
	}
	for k, v := range s.cashBox {
		out.cashBox[k] = v
	}
	for k, v := range s.audit {
		out.audit[k] = append([]domain.AuditRecord(nil), v...)
	}
	return out
}

func sortCommitments(cs []domain.Commitment) {
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.Before(cs[j].CreatedAt)
		}
		return cs[i].CommitmentID < cs[j].CommitmentID
	})
}

func sortPayments(ps []domain.Payment) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].Date.Equal(ps[j].Date) {
			return ps[i].Date.Before(ps[j].Date)
		}
		return ps[i].PaymentID < ps[j].PaymentID
	})
}
