package domain_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAuditTrail_EvictsOldest(t *testing.T) {
	trail := domain.NewAuditTrail(domain.AuditHistoryLimit)
	for i := 0; i < 25; i++ {
		trail.Append(domain.AuditRecord{RecordID: fmt.Sprintf("r%d", i)})
	}

	records := trail.Records()
	assert.Len(t, records, domain.AuditHistoryLimit)
	assert.Equal(t, "r5", records[0].RecordID)
	assert.Equal(t, "r24", records[len(records)-1].RecordID)
}

func TestAuditTrail_SeededFromExisting(t *testing.T) {
	trail := domain.NewAuditTrail(2, domain.AuditRecord{RecordID: "a"}, domain.AuditRecord{RecordID: "b"})
	trail.Append(domain.AuditRecord{RecordID: "c"})

	assert.Equal(t, 2, trail.Len())
	assert.Equal(t, "b", trail.Records()[0].RecordID)
}

func TestPaymentMethod_IsValid(t *testing.T) {
	for _, m := range domain.PaymentMethods {
		assert.True(t, m.IsValid(), string(m))
	}
	assert.False(t, domain.PaymentMethod("bitcoin").IsValid())
	assert.False(t, domain.PaymentMethod("Cash").IsValid())
}
