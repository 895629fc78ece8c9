package services

import (
	"encoding/json"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
)

type auditEntry struct {
	anash       string
	category    domain.OperationCategory
	operation   domain.OperationType
	description string
	data        json.RawMessage
	oldValues   json.RawMessage
	newValues   json.RawMessage
}

func (s *BaseService) auditRecord(e auditEntry, actor string) domain.AuditRecord {
	return domain.AuditRecord{
		RecordID:        s.newID(),
		AnashIdentifier: e.anash,
		Category:        e.category,
		OperationType:   e.operation,
		Description:     e.description,
		Data:            e.data,
		OldValues:       e.oldValues,
		NewValues:       e.newValues,
		Actor:           actor,
		Date:            s.now(),
	}
}

// paymentAuditEntry describes a created payment. Negative amounts are refunds.
func paymentAuditEntry(p domain.Payment, op domain.OperationType) auditEntry {
	var description string
	switch op {
	case domain.OperationRefund:
		description = "refund of " + p.Amount.Abs().String() + " to campaign " + p.CampainName
	case domain.OperationDelete:
		description = "payment of " + p.Amount.String() + " to campaign " + p.CampainName + " deleted"
	default:
		description = "payment of " + p.Amount.String() + " to campaign " + p.CampainName
	}
	return auditEntry{
		anash:       p.AnashIdentifier,
		category:    domain.CategoryPayments,
		operation:   op,
		description: description,
		data:        domain.Snapshot(p),
	}
}

func paymentOperation(p domain.Payment) domain.OperationType {
	if p.Amount.IsNegative() {
		return domain.OperationRefund
	}
	return domain.OperationAdd
}
