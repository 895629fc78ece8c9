package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/campaign_ledger/internal/core/ports/services"
	"github.com/SscSPs/campaign_ledger/internal/core/review"
	"github.com/SscSPs/campaign_ledger/internal/core/services"
	"github.com/SscSPs/campaign_ledger/internal/dto"
	"github.com/SscSPs/campaign_ledger/internal/observability"
	"github.com/SscSPs/campaign_ledger/internal/repositories/cache"
	"github.com/SscSPs/campaign_ledger/internal/repositories/memory"
)

const actor = "Rivka Tester"

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func newSeededStore() *memory.Store {
	store := memory.New(time.UTC)
	store.Seed(
		[]domain.Person{
			{PersonID: "p-100", AnashIdentifier: "100", FirstName: "Moshe", LastName: "Cohen", IsActive: true},
			{PersonID: "p-200", AnashIdentifier: "200", FirstName: "Dina", LastName: "Katz", IsActive: false},
			{PersonID: "p-300", AnashIdentifier: "300", FirstName: "Avi", LastName: "Levi", IsActive: true},
		},
		[]domain.Campaign{
			{CampainName: "Building", MinimumAmountForMemorialDay: decimal.NewFromInt(500)},
			{CampainName: "General"},
		},
	)
	return store
}

type LedgerServicesTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	reg   *promclient.Registry
	svc   *portssvc.ServiceContainer
}

func (s *LedgerServicesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newSeededStore()
	s.reg = promclient.NewRegistry()
	metrics, err := observability.NewLedgerMetrics("test", s.reg)
	s.Require().NoError(err)
	s.svc = services.NewServiceContainer(
		memory.NewRepositoryProvider(s.store),
		cache.NewCampaignCache(s.store, 16, time.Minute),
		services.WithMetrics(metrics),
		services.WithLocation(time.UTC),
	)
}

func TestLedgerServicesTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServicesTestSuite))
}

func (s *LedgerServicesTestSuite) commit(anash, campaign string, amount int64, payments int) domain.Commitment {
	created, err := s.svc.Commitment.UploadCommitments(s.ctx, []review.CommitmentRecord{{
		AnashIdentifier:  review.Identifier(anash),
		CampainName:      campaign,
		CommitmentAmount: dec(amount),
		NumberOfPayments: intPtr(payments),
		PaymentMethod:    domain.MethodCash,
	}}, actor)
	s.Require().NoError(err)
	s.Require().Len(created, 1)
	return created[0]
}

func (s *LedgerServicesTestSuite) pay(anash, campaign string, amount int64, method domain.PaymentMethod) (*domain.Payment, error) {
	return s.svc.Payment.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		AnashIdentifier: anash,
		CampainName:     campaign,
		Amount:          dec(amount),
		PaymentMethod:   method,
	}, actor)
}

func (s *LedgerServicesTestSuite) requireBalances(commitmentID string, paid, remaining int64, made, left int) domain.Commitment {
	details, err := s.svc.Commitment.GetCommitment(s.ctx, commitmentID)
	s.Require().NoError(err)
	c := details.Commitment
	s.True(c.AmountPaid.Equal(decimal.NewFromInt(paid)), "AmountPaid = %s, want %d", c.AmountPaid, paid)
	s.True(c.AmountRemaining.Equal(decimal.NewFromInt(remaining)), "AmountRemaining = %s, want %d", c.AmountRemaining, remaining)
	s.Equal(made, c.PaymentsMade, "PaymentsMade")
	s.Equal(left, c.PaymentsRemaining, "PaymentsRemaining")
	return c
}

func (s *LedgerServicesTestSuite) TestCreatePayment_WorkedExample() {
	c := s.commit("100", "Building", 1000, 10)
	s.requireBalances(c.CommitmentID, 0, 1000, 0, 10)

	_, err := s.pay("100", "Building", 100, domain.MethodWireTransfer)
	s.Require().NoError(err)
	s.requireBalances(c.CommitmentID, 100, 900, 1, 9)

	refund, err := s.pay("100", "Building", -50, domain.MethodWireTransfer)
	s.Require().NoError(err)
	s.Equal(c.CommitmentID, refund.CommitmentID)
	s.requireBalances(c.CommitmentID, 50, 950, 0, 10)

	_, err = s.pay("100", "Building", 1500, domain.MethodWireTransfer)
	var fieldErr *domain.FieldError
	s.Require().ErrorAs(err, &fieldErr)
	s.Equal(domain.AmountPaidExceedsPledge, fieldErr.Code)
	s.ErrorIs(err, apperrors.ErrInvariant)

	details := s.requireBalances(c.CommitmentID, 50, 950, 0, 10)
	s.Equal(c.CommitmentID, details.CommitmentID)
	payments, err := s.store.ListPaymentsByCommitment(s.ctx, c.CommitmentID)
	s.Require().NoError(err)
	s.Len(payments, 2)

	count, err := testutil.GatherAndCount(s.reg, "test_operations_total")
	s.Require().NoError(err)
	s.Positive(count)
}

func (s *LedgerServicesTestSuite) TestCreatePayment_Rejections() {
	s.commit("100", "Building", 1000, 10)

	_, err := s.pay("200", "Building", 100, domain.MethodCash)
	s.ErrorIs(err, apperrors.ErrValidation, "inactive donor")

	_, err = s.pay("999", "Building", 100, domain.MethodCash)
	s.ErrorIs(err, apperrors.ErrNotFound, "unknown donor")

	_, err = s.pay("300", "Building", 100, domain.MethodCash)
	s.ErrorIs(err, apperrors.ErrNotFound, "donor without commitment")

	_, err = s.pay("100", "Building", 100, domain.PaymentMethod("barter"))
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.pay("100", "Building", 0, domain.MethodCash)
	var fieldErr *domain.FieldError
	s.Require().ErrorAs(err, &fieldErr)
	s.Equal(domain.ZeroPaymentAmount, fieldErr.Code)
}

func (s *LedgerServicesTestSuite) TestCreatePayment_TracksCountOnlyWhenPlanned() {
	c := s.commit("100", "General", 1000, 0)

	_, err := s.pay("100", "General", 400, domain.MethodChecks)
	s.Require().NoError(err)
	s.requireBalances(c.CommitmentID, 400, 600, 1, 0)
}

func (s *LedgerServicesTestSuite) TestCreatePayment_ConcurrentPaymentsOnOneCommitment() {
	c := s.commit("100", "Building", 1000, 10)

	const attempts = 25
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.pay("100", "Building", 100, domain.MethodWireTransfer)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, apperrors.ErrInvariant)
	}
	s.Equal(10, succeeded, "only the payments that fit the pledge are recorded")
	s.requireBalances(c.CommitmentID, 1000, 0, 10, 0)

	payments, err := s.store.ListPaymentsByCommitment(s.ctx, c.CommitmentID)
	s.Require().NoError(err)
	s.Len(payments, 10)
}

func (s *LedgerServicesTestSuite) TestCreatePayment_ConcurrentPaymentsOnSeparateCommitments() {
	first := s.commit("100", "Building", 1000, 10)
	second := s.commit("300", "Building", 1000, 10)

	donors := []string{"100", "300"}
	const perDonor = 10
	errs := make([]error, len(donors)*perDonor)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.pay(donors[i%len(donors)], "Building", 100, domain.MethodWireTransfer)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.NoError(err)
	}
	s.requireBalances(first.CommitmentID, 1000, 0, 10, 0)
	s.requireBalances(second.CommitmentID, 1000, 0, 10, 0)
}

func (s *LedgerServicesTestSuite) TestCreatePayment_RefundAndDeletesRestoreCommitment() {
	c := s.commit("100", "Building", 1000, 10)

	income, err := s.pay("100", "Building", 100, domain.MethodWireTransfer)
	s.Require().NoError(err)
	refund, err := s.pay("100", "Building", -50, domain.MethodWireTransfer)
	s.Require().NoError(err)
	s.requireBalances(c.CommitmentID, 50, 950, 0, 10)

	_, err = s.svc.Payment.DeletePayment(s.ctx, refund.PaymentID, actor)
	s.Require().NoError(err)
	s.requireBalances(c.CommitmentID, 100, 900, 1, 9)
	_, err = s.svc.Payment.DeletePayment(s.ctx, income.PaymentID, actor)
	s.Require().NoError(err)
	s.requireBalances(c.CommitmentID, 0, 1000, 0, 10)
}

func (s *LedgerServicesTestSuite) TestCashPayment_CreateThenDeleteRestoresState() {
	c := s.commit("100", "Building", 1000, 10)

	p, err := s.pay("100", "Building", 300, domain.MethodCash)
	s.Require().NoError(err)
	entry, err := s.store.FindCashIncomeEntry(s.ctx, "100", decimal.NewFromInt(300))
	s.Require().NoError(err)
	s.Require().NotNil(entry.PaymentID)
	s.Equal(p.PaymentID, *entry.PaymentID)
	s.Equal("Moshe Cohen", entry.FullNameOrReasonForIssue)

	deleted, err := s.svc.Payment.DeletePayment(s.ctx, p.PaymentID, actor)
	s.Require().NoError(err)
	s.Equal(p.PaymentID, deleted.PaymentID)
	s.requireBalances(c.CommitmentID, 0, 1000, 0, 10)

	_, err = s.store.FindCashIncomeEntry(s.ctx, "100", decimal.NewFromInt(300))
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Payment.DeletePayment(s.ctx, p.PaymentID, actor)
	s.ErrorIs(err, apperrors.ErrNotFound)

	history, err := s.store.ListAuditRecords(s.ctx, "100", domain.CategoryPayments)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(domain.OperationAdd, history[0].OperationType)
	s.Equal(domain.OperationDelete, history[1].OperationType)
	s.Equal(actor, history[1].Actor)
}

func (s *LedgerServicesTestSuite) TestCashRefund_ReversesMatchingIncome() {
	c := s.commit("100", "Building", 1000, 10)

	_, err := s.pay("100", "Building", 300, domain.MethodCash)
	s.Require().NoError(err)
	_, err = s.pay("100", "Building", -300, domain.MethodCash)
	s.Require().NoError(err)

	s.requireBalances(c.CommitmentID, 0, 1000, 0, 10)
	_, err = s.store.FindCashIncomeEntry(s.ctx, "100", decimal.NewFromInt(300))
	s.ErrorIs(err, apperrors.ErrNotFound)

	history, err := s.store.ListAuditRecords(s.ctx, "100", domain.CategoryPayments)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(domain.OperationRefund, history[1].OperationType)
}

func (s *LedgerServicesTestSuite) TestCashRefund_WithoutMatchingIncomeRollsBack() {
	c := s.commit("100", "Building", 1000, 10)

	_, err := s.pay("100", "Building", 300, domain.MethodCash)
	s.Require().NoError(err)

	_, err = s.pay("100", "Building", -100, domain.MethodCash)
	s.ErrorIs(err, services.ErrCashEntryNotFound)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Contains(err.Error(), "payment not found in cash box")

	s.requireBalances(c.CommitmentID, 300, 700, 1, 9)
	payments, err := s.store.ListPaymentsByCommitment(s.ctx, c.CommitmentID)
	s.Require().NoError(err)
	s.Len(payments, 1)
}

func (s *LedgerServicesTestSuite) TestUploadPayments_EqualsSequentialCreation() {
	sequential := s.commit("100", "Building", 1000, 10)
	batched := s.commit("300", "Building", 1000, 10)

	amounts := []int64{100, 250, -50}
	for _, a := range amounts {
		_, err := s.pay("100", "Building", a, domain.MethodWireTransfer)
		s.Require().NoError(err)
	}

	records := make([]review.PaymentRecord, 0, len(amounts))
	for _, a := range amounts {
		records = append(records, review.PaymentRecord{AnashIdentifier: "300", Amount: dec(a), PaymentMethod: domain.MethodWireTransfer})
	}
	reviewed, err := s.svc.Payment.ReviewPayments(s.ctx, records, "Building")
	s.Require().NoError(err)
	s.Require().Len(reviewed.Valid, 3)
	s.Empty(reviewed.Invalid)
	for _, r := range reviewed.Valid {
		s.Equal(batched.CommitmentID, r.CommitmentID)
	}

	created, err := s.svc.Payment.UploadPayments(s.ctx, reviewed.Valid, actor)
	s.Require().NoError(err)
	s.Len(created, 3)

	want := s.requireBalances(sequential.CommitmentID, 300, 700, 1, 9)
	got := s.requireBalances(batched.CommitmentID, 300, 700, 1, 9)
	s.True(want.AmountPaid.Equal(got.AmountPaid))

	history, err := s.store.ListAuditRecords(s.ctx, "300", domain.CategoryPayments)
	s.Require().NoError(err)
	s.Len(history, 3)
}

func (s *LedgerServicesTestSuite) TestUploadPayments_CumulativeOverflowAbortsBatch() {
	c := s.commit("100", "Building", 1000, 10)

	records := []review.PaymentRecord{
		{AnashIdentifier: "100", CampainName: "Building", CommitmentID: c.CommitmentID, Amount: dec(600), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "100", CampainName: "Building", CommitmentID: c.CommitmentID, Amount: dec(500), PaymentMethod: domain.MethodCash},
	}

	reviewed, err := s.svc.Payment.ReviewPayments(s.ctx, records, "")
	s.Require().NoError(err)
	s.Len(reviewed.Valid, 1)
	s.Require().Len(reviewed.Invalid, 1)

	_, err = s.svc.Payment.UploadPayments(s.ctx, records, actor)
	var fieldErr *domain.FieldError
	s.Require().ErrorAs(err, &fieldErr)
	s.Equal(domain.AmountPaidExceedsPledge, fieldErr.Code)

	s.requireBalances(c.CommitmentID, 0, 1000, 0, 10)
	payments, err := s.store.ListPaymentsByCommitment(s.ctx, c.CommitmentID)
	s.Require().NoError(err)
	s.Empty(payments)
	_, err = s.store.FindCashIncomeEntry(s.ctx, "100", decimal.NewFromInt(600))
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServicesTestSuite) TestUploadPayments_Rejections() {
	c := s.commit("100", "Building", 1000, 10)
	record := func(mutate func(*review.PaymentRecord)) []review.PaymentRecord {
		r := review.PaymentRecord{AnashIdentifier: "100", CampainName: "Building", CommitmentID: c.CommitmentID, Amount: dec(100), PaymentMethod: domain.MethodWireTransfer}
		mutate(&r)
		return []review.PaymentRecord{r}
	}

	_, err := s.svc.Payment.UploadPayments(s.ctx, nil, actor)
	s.ErrorIs(err, apperrors.ErrValidation, "empty batch")

	_, err = s.svc.Payment.UploadPayments(s.ctx, record(func(r *review.PaymentRecord) {
		r.PaymentMethod = domain.MethodCash
		r.Amount = dec(-100)
	}), actor)
	s.ErrorIs(err, apperrors.ErrValidation, "negative cash")

	_, err = s.svc.Payment.UploadPayments(s.ctx, record(func(r *review.PaymentRecord) { r.CommitmentID = "missing" }), actor)
	s.ErrorIs(err, apperrors.ErrNotFound, "unknown commitment")

	_, err = s.svc.Payment.UploadPayments(s.ctx, record(func(r *review.PaymentRecord) { r.CommitmentID = "" }), actor)
	s.ErrorIs(err, apperrors.ErrValidation, "missing commitment id")

	_, err = s.svc.Payment.UploadPayments(s.ctx, record(func(r *review.PaymentRecord) { r.AnashIdentifier = "300" }), actor)
	s.ErrorIs(err, apperrors.ErrValidation, "donor mismatch")

	_, err = s.svc.Payment.UploadPayments(s.ctx, record(func(r *review.PaymentRecord) { r.CampainName = "General" }), actor)
	s.ErrorIs(err, apperrors.ErrValidation, "campaign mismatch")

	_, err = s.svc.Payment.UploadPayments(s.ctx, record(func(r *review.PaymentRecord) { r.PaymentMethod = "barter" }), actor)
	s.ErrorIs(err, apperrors.ErrValidation, "invalid method")

	s.requireBalances(c.CommitmentID, 0, 1000, 0, 10)
}

func (s *LedgerServicesTestSuite) TestAuditHistoryKeepsNewestRecords() {
	s.commit("100", "General", 1000, 0)
	for i := 0; i < domain.AuditHistoryLimit+5; i++ {
		_, err := s.pay("100", "General", 10, domain.MethodChecks)
		s.Require().NoError(err)
	}
	history, err := s.store.ListAuditRecords(s.ctx, "100", domain.CategoryPayments)
	s.Require().NoError(err)
	s.Len(history, domain.AuditHistoryLimit)
}

func (s *LedgerServicesTestSuite) TestReviewAndUploadCommitments() {
	s.commit("300", "Building", 500, 0)

	records := []review.CommitmentRecord{
		{AnashIdentifier: "100", CommitmentAmount: dec(1000), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "100", CommitmentAmount: dec(2000), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "300", CommitmentAmount: dec(700), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "200", CommitmentAmount: dec(700), PaymentMethod: domain.MethodCash},
	}
	reviewed, err := s.svc.Commitment.ReviewCommitments(s.ctx, records, "Building")
	s.Require().NoError(err)
	s.Require().Len(reviewed.Valid, 1)
	s.Equal(review.Identifier("100"), reviewed.Valid[0].AnashIdentifier)
	s.Equal("Building", reviewed.Valid[0].CampainName)
	s.Equal("Moshe", reviewed.Valid[0].FirstName)
	s.Require().Len(reviewed.Invalid, 3)
	s.Equal(review.ReasonDuplicateCommitment, reviewed.Invalid[0].Reason)
	s.Equal(review.ReasonCommitmentExists, reviewed.Invalid[1].Reason)
	s.Equal(review.ReasonUnknownDonor, reviewed.Invalid[2].Reason)

	_, err = s.svc.Commitment.UploadCommitments(s.ctx, []review.CommitmentRecord{
		reviewed.Valid[0],
		{AnashIdentifier: "300", CampainName: "Building", CommitmentAmount: dec(700), PaymentMethod: domain.MethodCash},
	}, actor)
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.store.FindCommitmentByKey(s.ctx, domain.CommitmentKey{AnashIdentifier: "100", CampainName: "Building"})
	s.ErrorIs(err, apperrors.ErrNotFound, "a rejected upload inserts nothing")

	created, err := s.svc.Commitment.UploadCommitments(s.ctx, reviewed.Valid, actor)
	s.Require().NoError(err)
	s.Require().Len(created, 1)
	s.Equal(actor, created[0].CreatedBy)
	s.True(created[0].AmountRemaining.Equal(decimal.NewFromInt(1000)))

	_, err = s.svc.Commitment.UploadCommitments(s.ctx, []review.CommitmentRecord{}, actor)
	s.ErrorIs(err, apperrors.ErrValidation)

	history, err := s.store.ListAuditRecords(s.ctx, "100", domain.CategoryCommitments)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(domain.OperationAdd, history[0].OperationType)
}

func (s *LedgerServicesTestSuite) TestExplicitZeroRemainingIsKept() {
	created, err := s.svc.Commitment.UploadCommitments(s.ctx, []review.CommitmentRecord{{
		AnashIdentifier:  "100",
		CampainName:      "General",
		CommitmentAmount: dec(1000),
		AmountPaid:       dec(1000),
		AmountRemaining:  dec(0),
		PaymentMethod:    domain.MethodCash,
	}}, actor)
	s.Require().NoError(err)
	s.True(created[0].AmountRemaining.IsZero())

	updated, err := s.svc.Commitment.UpdateCommitment(s.ctx, created[0].CommitmentID, dto.UpdateCommitmentRequest{
		CommitmentAmount: dec(1200),
		AmountPaid:       dec(1200),
		AmountRemaining:  dec(0),
	}, actor)
	s.Require().NoError(err)
	s.True(updated.AmountRemaining.IsZero())
	s.True(updated.CommitmentAmount.Equal(decimal.NewFromInt(1200)))
}

func (s *LedgerServicesTestSuite) TestUpdateCommitment() {
	c := s.commit("100", "Building", 1000, 10)
	fundraiser := "Yossi"

	updated, err := s.svc.Commitment.UpdateCommitment(s.ctx, c.CommitmentID, dto.UpdateCommitmentRequest{
		CommitmentAmount: dec(2000),
		NumberOfPayments: intPtr(4),
		Fundraiser:       &fundraiser,
	}, actor)
	s.Require().NoError(err)
	s.True(updated.AmountRemaining.Equal(decimal.NewFromInt(2000)))
	s.Equal(4, updated.PaymentsRemaining)
	s.Equal("Yossi", updated.Fundraiser)
	s.Equal(domain.MethodCash, updated.PaymentMethod)

	other := "300"
	_, err = s.svc.Commitment.UpdateCommitment(s.ctx, c.CommitmentID, dto.UpdateCommitmentRequest{
		AnashIdentifier:  &other,
		CommitmentAmount: dec(2000),
	}, actor)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Commitment.UpdateCommitment(s.ctx, c.CommitmentID, dto.UpdateCommitmentRequest{
		CommitmentAmount: dec(1000),
		AmountPaid:       dec(1500),
	}, actor)
	s.ErrorIs(err, apperrors.ErrInvariant)

	_, err = s.svc.Commitment.UpdateCommitment(s.ctx, "missing", dto.UpdateCommitmentRequest{CommitmentAmount: dec(10)}, actor)
	s.ErrorIs(err, apperrors.ErrNotFound)

	history, err := s.store.ListAuditRecords(s.ctx, "100", domain.CategoryCommitments)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(domain.OperationEdit, history[1].OperationType)
	s.NotEmpty(history[1].OldValues)
	s.NotEmpty(history[1].NewValues)
}

func (s *LedgerServicesTestSuite) TestUpdateCommitment_OmittedProgressResets() {
	c := s.commit("100", "Building", 1000, 10)
	_, err := s.pay("100", "Building", 100, domain.MethodWireTransfer)
	s.Require().NoError(err)
	s.requireBalances(c.CommitmentID, 100, 900, 1, 9)

	_, err = s.svc.Commitment.UpdateCommitment(s.ctx, c.CommitmentID, dto.UpdateCommitmentRequest{
		CommitmentAmount: dec(1200),
		NumberOfPayments: intPtr(10),
		AmountPaid:       dec(100),
		PaymentsMade:     intPtr(1),
	}, actor)
	s.Require().NoError(err)
	s.requireBalances(c.CommitmentID, 100, 1100, 1, 9)

	_, err = s.svc.Commitment.UpdateCommitment(s.ctx, c.CommitmentID, dto.UpdateCommitmentRequest{
		CommitmentAmount: dec(1200),
		NumberOfPayments: intPtr(10),
	}, actor)
	s.Require().NoError(err)
	s.requireBalances(c.CommitmentID, 0, 1200, 0, 10)
}

func (s *LedgerServicesTestSuite) TestDeleteCommitment() {
	c := s.commit("100", "Building", 1000, 10)
	p, err := s.pay("100", "Building", 100, domain.MethodWireTransfer)
	s.Require().NoError(err)

	_, err = s.svc.Commitment.DeleteCommitment(s.ctx, c.CommitmentID, actor)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.svc.Payment.DeletePayment(s.ctx, p.PaymentID, actor)
	s.Require().NoError(err)

	deleted, err := s.svc.Commitment.DeleteCommitment(s.ctx, c.CommitmentID, actor)
	s.Require().NoError(err)
	s.Equal(c.CommitmentID, deleted.CommitmentID)

	_, err = s.svc.Commitment.GetCommitment(s.ctx, c.CommitmentID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	history, err := s.store.ListAuditRecords(s.ctx, "100", domain.CategoryCommitments)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(domain.OperationDelete, history[1].OperationType)
}

func (s *LedgerServicesTestSuite) TestListCommitments() {
	s.commit("100", "Building", 1000, 10)
	s.commit("300", "General", 1000, 0)

	all, err := s.svc.Commitment.ListCommitments(s.ctx, dto.ListCommitmentsParams{})
	s.Require().NoError(err)
	s.Len(all, 2)

	building, err := s.svc.Commitment.ListCommitments(s.ctx, dto.ListCommitmentsParams{CampainName: "Building"})
	s.Require().NoError(err)
	s.Require().Len(building, 1)
	s.Equal("100", building[0].AnashIdentifier)

	inactive, err := s.svc.Commitment.ListCommitments(s.ctx, dto.ListCommitmentsParams{IsActive: "false"})
	s.Require().NoError(err)
	s.Empty(inactive)
}

func (s *LedgerServicesTestSuite) assign(anash, campaign, date, note string) (*domain.Commitment, error) {
	return s.svc.MemorialDay.AssignMemorialDay(s.ctx, dto.AssignMemorialDayRequest{
		AnashIdentifier: anash,
		CampainName:     campaign,
		Date:            date,
		Note:            note,
	}, actor)
}

func (s *LedgerServicesTestSuite) TestMemorialDays_CapacityAndExclusivity() {
	s.commit("100", "Building", 1000, 0)
	s.commit("300", "Building", 500, 0)

	eligible, err := s.svc.MemorialDay.ListEligibleDonors(s.ctx, "Building")
	s.Require().NoError(err)
	s.Require().Len(eligible, 2)
	remaining := map[string]int{}
	for _, e := range eligible {
		remaining[e.AnashIdentifier] = e.RemainingDays
	}
	s.Equal(map[string]int{"100": 2, "300": 1}, remaining)

	c, err := s.assign("100", "Building", "2025-03-01", "")
	s.Require().NoError(err)
	s.Len(c.MemorialDays, 1)

	c, err = s.assign("100", "Building", "2025-03-01", "yahrzeit")
	s.Require().NoError(err)
	s.Require().Len(c.MemorialDays, 1, "reassigning a held date consumes no capacity")
	s.Equal("yahrzeit", c.MemorialDays[0].Note)

	_, err = s.assign("100", "Building", "2025-03-02", "")
	s.Require().NoError(err)
	_, err = s.assign("100", "Building", "2025-03-03", "")
	s.ErrorIs(err, apperrors.ErrValidation, "capacity exhausted")

	_, err = s.assign("300", "Building", "2025-03-01", "")
	var taken *domain.MemorialDayTakenError
	s.Require().ErrorAs(err, &taken)
	s.Equal("100", taken.Holder.AnashIdentifier)
	s.Contains(err.Error(), "Moshe Cohen")
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.assign("300", "Building", "2025-03-04", "")
	s.Require().NoError(err, "capacity 1 allows one day")
	_, err = s.assign("300", "Building", "2025-03-05", "")
	s.ErrorIs(err, apperrors.ErrValidation, "capacity 1 allows only one day")

	eligible, err = s.svc.MemorialDay.ListEligibleDonors(s.ctx, "Building")
	s.Require().NoError(err)
	s.Empty(eligible)

	c, err = s.svc.MemorialDay.RemoveMemorialDay(s.ctx, dto.RemoveMemorialDayParams{AnashIdentifier: "100", CampainName: "Building", Date: "2025-03-02"}, actor)
	s.Require().NoError(err)
	s.Len(c.MemorialDays, 1)
	_, err = s.svc.MemorialDay.RemoveMemorialDay(s.ctx, dto.RemoveMemorialDayParams{AnashIdentifier: "100", CampainName: "Building", Date: "2025-03-02"}, actor)
	s.ErrorIs(err, apperrors.ErrNotFound)

	eligible, err = s.svc.MemorialDay.ListEligibleDonors(s.ctx, "Building")
	s.Require().NoError(err)
	s.Require().Len(eligible, 1)
	s.Equal("100", eligible[0].AnashIdentifier)
	s.Equal(1, eligible[0].RemainingDays)
}

func (s *LedgerServicesTestSuite) TestMemorialDays_ZeroCapacityAndCoverage() {
	s.commit("100", "General", 5000, 0)
	_, err := s.assign("100", "General", "2025-03-01", "")
	s.ErrorIs(err, apperrors.ErrValidation, "campaign without a per-day minimum unlocks nothing")

	c := s.commit("300", "Building", 1000, 0)
	_, err = s.assign("300", "Building", "2025-03-01", "")
	s.Require().NoError(err)
	_, err = s.svc.Commitment.UpdateCommitment(s.ctx, c.CommitmentID, dto.UpdateCommitmentRequest{CommitmentAmount: dec(400)}, actor)
	s.ErrorIs(err, apperrors.ErrValidation, "pledge must keep covering allocated days")

	_, err = s.assign("300", "Building", "03/01/2025", "")
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.MemorialDay.ListEligibleDonors(s.ctx, "Nowhere")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServicesTestSuite) TestListEligibleDonors_CampaignWithoutCommitments() {
	_, err := s.svc.MemorialDay.ListEligibleDonors(s.ctx, "Building")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Contains(err.Error(), "no commitments")

	s.commit("300", "Building", 400, 0)
	eligible, err := s.svc.MemorialDay.ListEligibleDonors(s.ctx, "Building")
	s.Require().NoError(err)
	s.NotNil(eligible)
	s.Empty(eligible, "a pledge below the per-day minimum unlocks nothing")
}

func (s *LedgerServicesTestSuite) TestMemorialDays_ConcurrentAssignmentOfOneDate() {
	s.commit("100", "Building", 1000, 0)
	s.commit("300", "Building", 500, 0)

	donors := []string{"100", "300"}
	errs := make([]error, len(donors))
	var wg sync.WaitGroup
	for i, anash := range donors {
		wg.Add(1)
		go func(i int, anash string) {
			defer wg.Done()
			_, errs[i] = s.assign(anash, "Building", "2025-05-01", "")
		}(i, anash)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var taken *domain.MemorialDayTakenError
		s.Require().ErrorAs(err, &taken)
		s.Equal(donors[1-i], taken.Holder.AnashIdentifier)
	}
	s.Equal(1, succeeded, "a date is held by one commitment per campaign")

	held := 0
	commitments, err := s.store.ListCommitmentsByCampaign(s.ctx, "Building")
	s.Require().NoError(err)
	for _, c := range commitments {
		held += len(c.MemorialDays)
	}
	s.Equal(1, held)
}

// --- Failure injection ---

type MockPaymentWriter struct {
	mock.Mock
}

func (m *MockPaymentWriter) InsertPayments(ctx context.Context, payments []domain.Payment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

// faultyStore routes InsertPayments inside transactions to a mock.
type faultyStore struct {
	*memory.Store
	payments *MockPaymentWriter
}

func (f *faultyStore) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return f.Store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return fn(ctx, faultyTx{Store: tx, payments: f.payments})
	})
}

type faultyTx struct {
	portsrepo.Store
	payments *MockPaymentWriter
}

func (f faultyTx) InsertPayments(ctx context.Context, payments []domain.Payment) error {
	return f.payments.InsertPayments(ctx, payments)
}

// racingStore behaves like a database whose unique index rejects a date that a
// concurrent transaction committed after this one read the campaign.
type racingStore struct {
	*memory.Store
}

func (r *racingStore) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return r.Store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return fn(ctx, racingTx{Store: tx})
	})
}

type racingTx struct {
	portsrepo.Store
}

func (racingTx) ListCommitmentsByCampaign(ctx context.Context, campainName string) ([]domain.Commitment, error) {
	return nil, nil
}

func (racingTx) UpdateCommitment(ctx context.Context, c domain.Commitment) error {
	return fmt.Errorf("%w: update commitment", domain.ErrMemorialDayAllocated)
}

func TestAssignMemorialDay_StorageConflictNamesHolder(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()
	commitments := services.NewCommitmentService(store, nil)
	memorial := services.NewMemorialDayService(store, services.WithLocation(time.UTC))

	_, err := commitments.UploadCommitments(ctx, []review.CommitmentRecord{
		{AnashIdentifier: "100", CampainName: "Building", CommitmentAmount: dec(1000), PaymentMethod: domain.MethodCash},
		{AnashIdentifier: "300", CampainName: "Building", CommitmentAmount: dec(500), PaymentMethod: domain.MethodCash},
	}, actor)
	require.NoError(t, err)
	req := dto.AssignMemorialDayRequest{AnashIdentifier: "100", CampainName: "Building", Date: "2025-03-01"}
	_, err = memorial.AssignMemorialDay(ctx, req, actor)
	require.NoError(t, err)

	racing := services.NewMemorialDayService(&racingStore{Store: store}, services.WithLocation(time.UTC))
	req.AnashIdentifier = "300"
	_, err = racing.AssignMemorialDay(ctx, req, actor)

	var taken *domain.MemorialDayTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, "100", taken.Holder.AnashIdentifier)
	assert.Contains(t, err.Error(), "Moshe Cohen")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	lost, err := store.FindCommitmentByKey(ctx, domain.CommitmentKey{AnashIdentifier: "300", CampainName: "Building"})
	require.NoError(t, err)
	assert.Empty(t, lost.MemorialDays)
}

func TestCreatePayment_InfrastructureFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	writer := new(MockPaymentWriter)
	writer.On("InsertPayments", mock.Anything, mock.AnythingOfType("[]domain.Payment")).Return(errors.New("disk full")).Once()
	store := &faultyStore{Store: newSeededStore(), payments: writer}

	commitments := services.NewCommitmentService(store, nil)
	payments := services.NewPaymentService(store, nil, services.WithIDGenerator(func() string { return "fixed-id" }))

	created, err := commitments.UploadCommitments(ctx, []review.CommitmentRecord{{
		AnashIdentifier:  "100",
		CampainName:      "Building",
		CommitmentAmount: dec(1000),
		PaymentMethod:    domain.MethodCash,
	}}, actor)
	require.NoError(t, err)

	_, err = payments.CreatePayment(ctx, dto.CreatePaymentRequest{
		AnashIdentifier: "100",
		CampainName:     "Building",
		Amount:          dec(100),
		PaymentMethod:   domain.MethodCash,
	}, actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.Contains(t, err.Error(), "Transaction failed")

	c, err := store.FindCommitmentByID(ctx, created[0].CommitmentID)
	require.NoError(t, err)
	assert.True(t, c.AmountPaid.IsZero())
	writer.AssertExpectations(t)
}
