// Package memory is a process-local ledger store for development runs and tests.
//
// Published state is never mutated. A transaction holds the writer lock, works on a private
// clone and publishes it only when its body succeeds, so readers never see partial writes.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu  sync.Mutex
	cur atomic.Pointer[state]
}

var _ portsrepo.StoreWithTx = (*Store)(nil)

// New returns an empty store. loc decides which calendar day a memorial date falls on; nil means UTC.
func New(loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	s := &Store{}
	s.cur.Store(newState(loc))
	return s
}

// NewRepositoryProvider wraps a memory store for the service container.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{Store: s}
}

// RunInTx implements portsrepo.TransactionManager.
func (s *Store) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.cur.Load().clone()
	if err := fn(ctx, &txStore{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cur.Store(work)
	return nil
}

func (s *Store) view() *txStore {
	return &txStore{st: s.cur.Load()}
}

// Seed adds or replaces people and campaigns, which this service reads but does not own.
func (s *Store) Seed(people []domain.Person, campaigns []domain.Campaign) {
	_ = s.RunInTx(context.Background(), func(_ context.Context, store portsrepo.Store) error {
		st := store.(*txStore).st
		for _, p := range people {
			st.people[p.AnashIdentifier] = p
		}
		for _, c := range campaigns {
			st.campaigns[c.CampainName] = c
		}
		return nil
	})
}

type seedFile struct {
	People    []domain.Person   `json:"people"`
	Campaigns []domain.Campaign `json:"campaigns"`
}

// LoadSeedFile seeds people and campaigns from a JSON file with "people" and "campaigns" arrays.
func (s *Store) LoadSeedFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(b, &seed); err != nil {
		return fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	s.Seed(seed.People, seed.Campaigns)
	return nil
}

func (s *Store) FindPersonByAnashIdentifier(ctx context.Context, anashIdentifier string) (*domain.Person, error) {
	return s.view().FindPersonByAnashIdentifier(ctx, anashIdentifier)
}

func (s *Store) ListPeople(ctx context.Context, activeOnly bool) ([]domain.Person, error) {
	return s.view().ListPeople(ctx, activeOnly)
}

func (s *Store) FindCampaignByName(ctx context.Context, campainName string) (*domain.Campaign, error) {
	return s.view().FindCampaignByName(ctx, campainName)
}

func (s *Store) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.view().ListCampaigns(ctx)
}

func (s *Store) FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	return s.view().FindCommitmentByID(ctx, commitmentID)
}

func (s *Store) FindCommitmentByKey(ctx context.Context, key domain.CommitmentKey) (*domain.Commitment, error) {
	return s.view().FindCommitmentByKey(ctx, key)
}

func (s *Store) ListCommitmentsByCampaign(ctx context.Context, campainName string) ([]domain.Commitment, error) {
	return s.view().ListCommitmentsByCampaign(ctx, campainName)
}

func (s *Store) ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.Commitment, error) {
	return s.view().ListCommitments(ctx, filter)
}

// Outside a transaction a lock is only a read.

func (s *Store) LockCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	return s.view().LockCommitmentByID(ctx, commitmentID)
}

func (s *Store) LockCommitmentByKey(ctx context.Context, key domain.CommitmentKey) (*domain.Commitment, error) {
	return s.view().LockCommitmentByKey(ctx, key)
}

func (s *Store) LockCommitmentsByIDs(ctx context.Context, commitmentIDs []string) (map[string]domain.Commitment, error) {
	return s.view().LockCommitmentsByIDs(ctx, commitmentIDs)
}

func (s *Store) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.view().FindPaymentByID(ctx, paymentID)
}

func (s *Store) ListPaymentsByCommitment(ctx context.Context, commitmentID string) ([]domain.Payment, error) {
	return s.view().ListPaymentsByCommitment(ctx, commitmentID)
}

func (s *Store) CountPaymentsByCommitment(ctx context.Context, commitmentID string) (int, error) {
	return s.view().CountPaymentsByCommitment(ctx, commitmentID)
}

func (s *Store) FindCashIncomeEntry(ctx context.Context, anashIdentifier string, amount decimal.Decimal) (*domain.CashBoxEntry, error) {
	return s.view().FindCashIncomeEntry(ctx, anashIdentifier, amount)
}

func (s *Store) ListAuditRecords(ctx context.Context, anashIdentifier string, category domain.OperationCategory) ([]domain.AuditRecord, error) {
	return s.view().ListAuditRecords(ctx, anashIdentifier, category)
}

// Writes outside a transaction run in one of their own.

func (s *Store) InsertCommitments(ctx context.Context, commitments []domain.Commitment) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.InsertCommitments(ctx, commitments)
	})
}

func (s *Store) UpdateCommitment(ctx context.Context, commitment domain.Commitment) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.UpdateCommitment(ctx, commitment)
	})
}

func (s *Store) DeleteCommitment(ctx context.Context, commitmentID string) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.DeleteCommitment(ctx, commitmentID)
	})
}

func (s *Store) InsertPayments(ctx context.Context, payments []domain.Payment) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.InsertPayments(ctx, payments)
	})
}

func (s *Store) DeletePayment(ctx context.Context, paymentID string) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.DeletePayment(ctx, paymentID)
	})
}

func (s *Store) InsertCashBoxEntries(ctx context.Context, entries []domain.CashBoxEntry) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.InsertCashBoxEntries(ctx, entries)
	})
}

func (s *Store) DeleteCashBoxEntry(ctx context.Context, entryID string) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.DeleteCashBoxEntry(ctx, entryID)
	})
}

func (s *Store) DeleteCashBoxEntryByPaymentID(ctx context.Context, paymentID string) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.DeleteCashBoxEntryByPaymentID(ctx, paymentID)
	})
}

func (s *Store) AppendAuditRecords(ctx context.Context, records ...domain.AuditRecord) error {
	return s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return tx.AppendAuditRecords(ctx, records...)
	})
}
