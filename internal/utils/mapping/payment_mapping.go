package mapping

import (
	"encoding/json"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		AnashIdentifier: d.AnashIdentifier,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		CommitmentID:    d.CommitmentID,
		Amount:          d.Amount,
		PaymentMethod:   string(d.PaymentMethod),
		CampainName:     d.CampainName,
		PaymentDate:     d.Date,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		AnashIdentifier: m.AnashIdentifier,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		CommitmentID:    m.CommitmentID,
		Amount:          m.Amount,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		CampainName:     m.CampainName,
		Date:            m.PaymentDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCashBoxEntry converts a domain CashBoxEntry to a model CashBoxEntry
func ToModelCashBoxEntry(d domain.CashBoxEntry) models.CashBoxEntry {
	return models.CashBoxEntry{
		EntryID:                  d.EntryID,
		FullNameOrReasonForIssue: d.FullNameOrReasonForIssue,
		AnashIdentifier:          d.AnashIdentifier,
		TransactionType:          string(d.TransactionType),
		Amount:                   d.Amount,
		TransactionDate:          d.TransactionDate,
		PaymentID:                d.PaymentID,
	}
}

// ToDomainCashBoxEntry converts a model CashBoxEntry to a domain CashBoxEntry
func ToDomainCashBoxEntry(m models.CashBoxEntry) domain.CashBoxEntry {
	return domain.CashBoxEntry{
		EntryID:                  m.EntryID,
		FullNameOrReasonForIssue: m.FullNameOrReasonForIssue,
		AnashIdentifier:          m.AnashIdentifier,
		TransactionType:          domain.CashBoxTransactionType(m.TransactionType),
		Amount:                   m.Amount,
		TransactionDate:          m.TransactionDate,
		PaymentID:                m.PaymentID,
	}
}

// ToModelAuditRecord converts a domain AuditRecord to a model AuditRecord
func ToModelAuditRecord(d domain.AuditRecord) models.AuditRecord {
	return models.AuditRecord{
		RecordID:        d.RecordID,
		AnashIdentifier: d.AnashIdentifier,
		Category:        string(d.Category),
		OperationType:   string(d.OperationType),
		Description:     d.Description,
		Data:            nullableJSON(d.Data),
		OldValues:       nullableJSON(d.OldValues),
		NewValues:       nullableJSON(d.NewValues),
		Actor:           d.Actor,
		RecordedAt:      d.Date,
	}
}

// ToDomainAuditRecord converts a model AuditRecord to a domain AuditRecord
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	return domain.AuditRecord{
		RecordID:        m.RecordID,
		AnashIdentifier: m.AnashIdentifier,
		Category:        domain.OperationCategory(m.Category),
		OperationType:   domain.OperationType(m.OperationType),
		Description:     m.Description,
		Data:            json.RawMessage(m.Data),
		OldValues:       json.RawMessage(m.OldValues),
		NewValues:       json.RawMessage(m.NewValues),
		Actor:           m.Actor,
		Date:            m.RecordedAt,
	}
}

// nullableJSON stores empty documents as NULL.
func nullableJSON(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
