package domain

import (
	"encoding/json"
	"time"
)

// OperationCategory scopes audit history. Each donor keeps a separate ring per category.
type OperationCategory string

const (
	CategoryPayments    OperationCategory = "payments"
	CategoryCommitments OperationCategory = "commitments"
)

// OperationType is what an audited operation did.
type OperationType string

const (
	OperationAdd    OperationType = "add"
	OperationEdit   OperationType = "edit"
	OperationDelete OperationType = "delete"
	OperationRefund OperationType = "refund"
)

// AuditHistoryLimit is how many records a donor keeps per category.
const AuditHistoryLimit = 20

// AuditRecord is an immutable entry of a donor's operation history.
type AuditRecord struct {
	RecordID        string            `json:"_id"`
	AnashIdentifier string            `json:"AnashIdentifier"`
	Category        OperationCategory `json:"category"`
	OperationType   OperationType     `json:"OperationType"`
	Description     string            `json:"Description"`
	Data            json.RawMessage   `json:"Data,omitempty"`
	OldValues       json.RawMessage   `json:"OldValues,omitempty"`
	NewValues       json.RawMessage   `json:"NewValues,omitempty"`
	Actor           string            `json:"UserFullName"`
	Date            time.Time         `json:"Date"`
}

// AuditTrail is a fixed-capacity append log. Appending past capacity evicts the oldest record.
type AuditTrail struct {
	capacity int
	records  []AuditRecord
}

// NewAuditTrail returns an empty trail. A non-positive capacity uses AuditHistoryLimit.
func NewAuditTrail(capacity int, existing ...AuditRecord) *AuditTrail {
	if capacity <= 0 {
		capacity = AuditHistoryLimit
	}
	t := &AuditTrail{capacity: capacity}
	for _, r := range existing {
		t.Append(r)
	}
	return t
}

// Append adds r as the newest record.
func (t *AuditTrail) Append(r AuditRecord) {
	t.records = append(t.records, r)
	if over := len(t.records) - t.capacity; over > 0 {
		t.records = append(t.records[:0:0], t.records[over:]...)
	}
}

// Records returns the retained records, oldest first.
func (t *AuditTrail) Records() []AuditRecord {
	out := make([]AuditRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Len is the number of retained records.
func (t *AuditTrail) Len() int {
	return len(t.records)
}

// Snapshot encodes v for the Data, OldValues and NewValues fields.
func Snapshot(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
