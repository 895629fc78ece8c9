package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// txStore is the view handed to a transaction body. It reads and writes one private state.
type txStore struct {
	st *state
}

var _ portsrepo.Store = (*txStore)(nil)

func (t *txStore) FindPersonByAnashIdentifier(_ context.Context, anashIdentifier string) (*domain.Person, error) {
	p, ok := t.st.people[anashIdentifier]
	if !ok {
		return nil, fmt.Errorf("%w: person %s", apperrors.ErrNotFound, anashIdentifier)
	}
	return &p, nil
}

func (t *txStore) ListPeople(_ context.Context, activeOnly bool) ([]domain.Person, error) {
	out := make([]domain.Person, 0, len(t.st.people))
	for _, p := range t.st.people {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnashIdentifier < out[j].AnashIdentifier })
	return out, nil
}

func (t *txStore) FindCampaignByName(_ context.Context, campainName string) (*domain.Campaign, error) {
	c, ok := t.st.campaigns[campainName]
	if !ok {
		return nil, fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, campainName)
	}
	return &c, nil
}

func (t *txStore) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	out := make([]domain.Campaign, 0, len(t.st.campaigns))
	for _, c := range t.st.campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CampainName < out[j].CampainName })
	return out, nil
}

func (t *txStore) FindCommitmentByID(_ context.Context, commitmentID string) (*domain.Commitment, error) {
	c, ok := t.st.commitments[commitmentID]
	if !ok {
		return nil, fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
	}
	c = c.Clone()
	return &c, nil
}

func (t *txStore) FindCommitmentByKey(_ context.Context, key domain.CommitmentKey) (*domain.Commitment, error) {
	for _, c := range t.st.commitments {
		if c.Key() == key {
			c = c.Clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, key)
}

func (t *txStore) ListCommitmentsByCampaign(_ context.Context, campainName string) ([]domain.Commitment, error) {
	var out []domain.Commitment
	for _, c := range t.st.commitments {
		if c.CampainName == campainName {
			out = append(out, c.Clone())
		}
	}
	sortCommitments(out)
	return out, nil
}

func (t *txStore) ListCommitments(_ context.Context, filter domain.CommitmentFilter) ([]domain.Commitment, error) {
	out := []domain.Commitment{}
	for _, c := range t.st.commitments {
		if filter.CampainName != nil && c.CampainName != *filter.CampainName {
			continue
		}
		if filter.IsActive != nil {
			p, ok := t.st.people[c.AnashIdentifier]
			if !ok || p.IsActive != *filter.IsActive {
				continue
			}
		}
		out = append(out, c.Clone())
	}
	sortCommitments(out)
	return out, nil
}

// The whole state is already exclusive to this transaction, so locking is a plain read.

func (t *txStore) LockCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	return t.FindCommitmentByID(ctx, commitmentID)
}

func (t *txStore) LockCommitmentByKey(ctx context.Context, key domain.CommitmentKey) (*domain.Commitment, error) {
	return t.FindCommitmentByKey(ctx, key)
}

func (t *txStore) LockCommitmentsByIDs(_ context.Context, commitmentIDs []string) (map[string]domain.Commitment, error) {
	out := make(map[string]domain.Commitment, len(commitmentIDs))
	for _, id := range commitmentIDs {
		if c, ok := t.st.commitments[id]; ok {
			out[id] = c.Clone()
		}
	}
	return out, nil
}

func (t *txStore) InsertCommitments(_ context.Context, commitments []domain.Commitment) error {
	for _, c := range commitments {
		if _, exists := t.st.commitments[c.CommitmentID]; exists {
			return fmt.Errorf("%w: commitment %s", apperrors.ErrDuplicate, c.CommitmentID)
		}
		for _, existing := range t.st.commitments {
			if existing.Key() == c.Key() {
				return fmt.Errorf("%w: commitment for %s", apperrors.ErrDuplicate, c.Key())
			}
		}
		if err := t.checkMemorialDays(c); err != nil {
			return err
		}
		t.st.commitments[c.CommitmentID] = c.Clone()
	}
	return nil
}

func (t *txStore) UpdateCommitment(_ context.Context, commitment domain.Commitment) error {
	if _, ok := t.st.commitments[commitment.CommitmentID]; !ok {
		return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitment.CommitmentID)
	}
	if err := t.checkMemorialDays(commitment); err != nil {
		return err
	}
	t.st.commitments[commitment.CommitmentID] = commitment.Clone()
	return nil
}

// checkMemorialDays mirrors the unique (campaign, date) index of the SQL schema.
func (t *txStore) checkMemorialDays(c domain.Commitment) error {
	if len(c.MemorialDays) == 0 {
		return nil
	}
	others := make([]domain.Commitment, 0)
	for _, other := range t.st.commitments {
		if other.CampainName == c.CampainName {
			others = append(others, other)
		}
	}
	for i, d := range c.MemorialDays {
		for _, prev := range c.MemorialDays[:i] {
			if domain.SameCalendarDate(prev.Date, d.Date, t.st.loc) {
				return fmt.Errorf("%w: memorial day listed twice", apperrors.ErrConflict)
			}
		}
		if holder, taken := domain.FindMemorialDayHolder(others, d.Date, c.CommitmentID, t.st.loc); taken {
			return &domain.MemorialDayTakenError{Date: d.Date, Holder: holder}
		}
	}
	return nil
}

func (t *txStore) DeleteCommitment(_ context.Context, commitmentID string) error {
	if _, ok := t.st.commitments[commitmentID]; !ok {
		return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
	}
	delete(t.st.commitments, commitmentID)
	return nil
}

func (t *txStore) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	p, ok := t.st.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	return &p, nil
}

func (t *txStore) ListPaymentsByCommitment(_ context.Context, commitmentID string) ([]domain.Payment, error) {
	out := []domain.Payment{}
	for _, p := range t.st.payments {
		if p.CommitmentID == commitmentID {
			out = append(out, p)
		}
	}
	sortPayments(out)
	return out, nil
}

func (t *txStore) CountPaymentsByCommitment(_ context.Context, commitmentID string) (int, error) {
	n := 0
	for _, p := range t.st.payments {
		if p.CommitmentID == commitmentID {
			n++
		}
	}
	return n, nil
}

func (t *txStore) InsertPayments(_ context.Context, payments []domain.Payment) error {
	for _, p := range payments {
		if _, exists := t.st.payments[p.PaymentID]; exists {
			return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, p.PaymentID)
		}
		if _, ok := t.st.commitments[p.CommitmentID]; !ok {
			return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, p.CommitmentID)
		}
		t.st.payments[p.PaymentID] = p
	}
	return nil
}

func (t *txStore) DeletePayment(_ context.Context, paymentID string) error {
	if _, ok := t.st.payments[paymentID]; !ok {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	delete(t.st.payments, paymentID)
	return nil
}

func (t *txStore) InsertCashBoxEntries(_ context.Context, entries []domain.CashBoxEntry) error {
	for _, e := range entries {
		if _, exists := t.st.cashBox[e.EntryID]; exists {
			return fmt.Errorf("%w: cash box entry %s", apperrors.ErrDuplicate, e.EntryID)
		}
		t.st.cashBox[e.EntryID] = e
	}
	return nil
}

func (t *txStore) FindCashIncomeEntry(_ context.Context, anashIdentifier string, amount decimal.Decimal) (*domain.CashBoxEntry, error) {
	var found *domain.CashBoxEntry
	for _, e := range t.st.cashBox {
		if e.AnashIdentifier != anashIdentifier || e.TransactionType != domain.CashBoxIncome || !e.Amount.Equal(amount) {
			continue
		}
		if found == nil || e.TransactionDate.Before(found.TransactionDate) ||
			(e.TransactionDate.Equal(found.TransactionDate) && e.EntryID < found.EntryID) {
			e := e
			found = &e
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: cash income of %s for %s", apperrors.ErrNotFound, amount, anashIdentifier)
	}
	return found, nil
}

func (t *txStore) DeleteCashBoxEntry(_ context.Context, entryID string) error {
	if _, ok := t.st.cashBox[entryID]; !ok {
		return fmt.Errorf("%w: cash box entry %s", apperrors.ErrNotFound, entryID)
	}
	delete(t.st.cashBox, entryID)
	return nil
}

func (t *txStore) DeleteCashBoxEntryByPaymentID(_ context.Context, paymentID string) error {
	for id, e := range t.st.cashBox {
		if e.PaymentID != nil && *e.PaymentID == paymentID {
			delete(t.st.cashBox, id)
		}
	}
	return nil
}

func (t *txStore) AppendAuditRecords(_ context.Context, records ...domain.AuditRecord) error {
	for _, r := range records {
		key := auditKey{anashIdentifier: r.AnashIdentifier, category: r.Category}
		trail := domain.NewAuditTrail(domain.AuditHistoryLimit, t.st.audit[key]...)
		trail.Append(r)
		t.st.audit[key] = trail.Records()
	}
	return nil
}

func (t *txStore) ListAuditRecords(_ context.Context, anashIdentifier string, category domain.OperationCategory) ([]domain.AuditRecord, error) {
	records := t.st.audit[auditKey{anashIdentifier: anashIdentifier, category: category}]
	return append([]domain.AuditRecord{}, records...), nil
}
