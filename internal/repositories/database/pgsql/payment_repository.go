package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/models"
	"github.com/SscSPs/campaign_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const paymentColumns = `payment_id, anash_identifier, first_name, last_name, commitment_id, amount,
	payment_method, campain_name, payment_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row scanner) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID, &m.AnashIdentifier, &m.FirstName, &m.LastName, &m.CommitmentID, &m.Amount,
		&m.PaymentMethod, &m.CampainName, &m.PaymentDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindPaymentByID implements portsrepo.PaymentReader
func (r *BaseRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.db.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, notFound(err, "payment "+paymentID)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

// ListPaymentsByCommitment implements portsrepo.PaymentReader
func (r *BaseRepository) ListPaymentsByCommitment(ctx context.Context, commitmentID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE commitment_id = $1 ORDER BY payment_date, created_at, payment_id;`
	rows, err := r.db.Query(ctx, query, commitmentID)
	if err != nil {
		return nil, translateError(err, "list payments of commitment "+commitmentID)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, translateError(err, "scan payment")
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "list payments of commitment "+commitmentID)
	}
	return payments, nil
}

// CountPaymentsByCommitment implements portsrepo.PaymentReader
func (r *BaseRepository) CountPaymentsByCommitment(ctx context.Context, commitmentID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE commitment_id = $1;`, commitmentID).Scan(&n); err != nil {
		return 0, translateError(err, "count payments of commitment "+commitmentID)
	}
	return n, nil
}

// InsertPayments implements portsrepo.PaymentWriter
func (r *BaseRepository) InsertPayments(ctx context.Context, payments []domain.Payment) error {
	query := `
		INSERT INTO payments (
			payment_id, anash_identifier, first_name, last_name, commitment_id, amount,
			payment_method, campain_name, payment_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, p := range payments {
		m := mapping.ToModelPayment(p)
		batch.Queue(query,
			m.PaymentID, m.AnashIdentifier, m.FirstName, m.LastName, m.CommitmentID, m.Amount,
			m.PaymentMethod, m.CampainName, m.PaymentDate,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	return r.sendBatch(ctx, batch, fmt.Sprintf("insert %d payments", len(payments)))
}

// DeletePayment implements portsrepo.PaymentWriter
func (r *BaseRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return translateError(err, "delete payment "+paymentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	return nil
}

// InsertCashBoxEntries implements portsrepo.CashBoxRepository
func (r *BaseRepository) InsertCashBoxEntries(ctx context.Context, entries []domain.CashBoxEntry) error {
	query := `
		INSERT INTO cash_box (entry_id, full_name_or_reason, anash_identifier, transaction_type, amount, transaction_date, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelCashBoxEntry(e)
		batch.Queue(query, m.EntryID, m.FullNameOrReasonForIssue, m.AnashIdentifier, m.TransactionType, m.Amount, m.TransactionDate, m.PaymentID)
	}
	return r.sendBatch(ctx, batch, fmt.Sprintf("insert %d cash box entries", len(entries)))
}

// FindCashIncomeEntry implements portsrepo.CashBoxRepository. The oldest matching entry wins.
func (r *BaseRepository) FindCashIncomeEntry(ctx context.Context, anashIdentifier string, amount decimal.Decimal) (*domain.CashBoxEntry, error) {
	query := `
		SELECT entry_id, full_name_or_reason, anash_identifier, transaction_type, amount, transaction_date, payment_id
		FROM cash_box
		WHERE anash_identifier = $1 AND transaction_type = $2 AND amount = $3
		ORDER BY transaction_date, entry_id
		LIMIT 1
		FOR UPDATE;
	`
	var m models.CashBoxEntry
	err := r.db.QueryRow(ctx, query, anashIdentifier, string(domain.CashBoxIncome), amount).Scan(
		&m.EntryID, &m.FullNameOrReasonForIssue, &m.AnashIdentifier, &m.TransactionType, &m.Amount, &m.TransactionDate, &m.PaymentID,
	)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("cash income of %s for %s", amount, anashIdentifier))
	}
	e := mapping.ToDomainCashBoxEntry(m)
	return &e, nil
}

// DeleteCashBoxEntry implements portsrepo.CashBoxRepository
func (r *BaseRepository) DeleteCashBoxEntry(ctx context.Context, entryID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cash_box WHERE entry_id = $1;`, entryID)
	if err != nil {
		return translateError(err, "delete cash box entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cash box entry %s", apperrors.ErrNotFound, entryID)
	}
	return nil
}

// DeleteCashBoxEntryByPaymentID implements portsrepo.CashBoxRepository
func (r *BaseRepository) DeleteCashBoxEntryByPaymentID(ctx context.Context, paymentID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cash_box WHERE payment_id = $1;`, paymentID); err != nil {
		return translateError(err, "delete cash box entry of payment "+paymentID)
	}
	return nil
}

// AppendAuditRecords implements portsrepo.AuditRepository. Each touched history is pruned to
// domain.AuditHistoryLimit records in the same round trip.
func (r *BaseRepository) AppendAuditRecords(ctx context.Context, records ...domain.AuditRecord) error {
	insert := `
		INSERT INTO audit_records (record_id, anash_identifier, category, operation_type, description, data, old_values, new_values, actor, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	prune := `
		DELETE FROM audit_records
		WHERE anash_identifier = $1 AND category = $2
		  AND record_seq NOT IN (
			SELECT record_seq FROM audit_records
			WHERE anash_identifier = $1 AND category = $2
			ORDER BY record_seq DESC
			LIMIT $3
		  );
	`
	type history struct{ anash, category string }
	batch := &pgx.Batch{}
	var touched []history
	seen := map[history]struct{}{}
	for _, rec := range records {
		m := mapping.ToModelAuditRecord(rec)
		batch.Queue(insert, m.RecordID, m.AnashIdentifier, m.Category, m.OperationType, m.Description, m.Data, m.OldValues, m.NewValues, m.Actor, m.RecordedAt)
		h := history{m.AnashIdentifier, m.Category}
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			touched = append(touched, h)
		}
	}
	for _, h := range touched {
		batch.Queue(prune, h.anash, h.category, domain.AuditHistoryLimit)
	}
	return r.sendBatch(ctx, batch, fmt.Sprintf("append %d audit records", len(records)))
}

// ListAuditRecords implements portsrepo.AuditRepository
func (r *BaseRepository) ListAuditRecords(ctx context.Context, anashIdentifier string, category domain.OperationCategory) ([]domain.AuditRecord, error) {
	query := `
		SELECT record_id, anash_identifier, category, operation_type, description, data, old_values, new_values, actor, recorded_at
		FROM audit_records
		WHERE anash_identifier = $1 AND category = $2
		ORDER BY record_seq;
	`
	rows, err := r.db.Query(ctx, query, anashIdentifier, string(category))
	if err != nil {
		return nil, translateError(err, "list audit records")
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var m models.AuditRecord
		if err := rows.Scan(&m.RecordID, &m.AnashIdentifier, &m.Category, &m.OperationType, &m.Description, &m.Data, &m.OldValues, &m.NewValues, &m.Actor, &m.RecordedAt); err != nil {
			return nil, translateError(err, "scan audit record")
		}
		records = append(records, mapping.ToDomainAuditRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "list audit records")
	}
	return records, nil
}
