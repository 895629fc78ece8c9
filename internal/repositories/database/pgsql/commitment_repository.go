package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/campaign_ledger/internal/apperrors"
	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/models"
	"github.com/SscSPs/campaign_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const commitmentColumns = `c.commitment_id, c.anash_identifier, c.person_id, c.first_name, c.last_name, c.campain_name,
	c.commitment_amount, c.amount_paid, c.amount_remaining,
	c.number_of_payments, c.payments_made, c.payments_remaining,
	c.fundraiser, c.payment_method, c.notes, c.response_to_fundraiser,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by`

func scanCommitment(row scanner) (models.Commitment, error) {
	var m models.Commitment
	err := row.Scan(
		&m.CommitmentID, &m.AnashIdentifier, &m.PersonID, &m.FirstName, &m.LastName, &m.CampainName,
		&m.CommitmentAmount, &m.AmountPaid, &m.AmountRemaining,
		&m.NumberOfPayments, &m.PaymentsMade, &m.PaymentsRemaining,
		&m.Fundraiser, &m.PaymentMethod, &m.Notes, &m.ResponseToFundraiser,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// findCommitment loads a single commitment with its memorial days. lock appends FOR UPDATE.
func (r *BaseRepository) findCommitment(ctx context.Context, what string, lock bool, where string, args ...any) (*domain.Commitment, error) {
	query := `SELECT ` + commitmentColumns + ` FROM commitments c WHERE ` + where
	if lock {
		query += ` FOR UPDATE`
	}
	m, err := scanCommitment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, what)
	}
	days, err := r.memorialDaysFor(ctx, []string{m.CommitmentID})
	if err != nil {
		return nil, err
	}
	c := mapping.ToDomainCommitment(m, days[m.CommitmentID], r.loc)
	return &c, nil
}

// listCommitments runs query and attaches memorial days to every row.
func (r *BaseRepository) listCommitments(ctx context.Context, what, query string, args ...any) ([]domain.Commitment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, what)
	}
	var found []models.Commitment
	for rows.Next() {
		m, err := scanCommitment(rows)
		if err != nil {
			rows.Close()
			return nil, translateError(err, what)
		}
		found = append(found, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, translateError(err, what)
	}

	ids := make([]string, 0, len(found))
	for _, m := range found {
		ids = append(ids, m.CommitmentID)
	}
	days, err := r.memorialDaysFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	commitments := make([]domain.Commitment, 0, len(found))
	for _, m := range found {
		commitments = append(commitments, mapping.ToDomainCommitment(m, days[m.CommitmentID], r.loc))
	}
	return commitments, nil
}

func (r *BaseRepository) memorialDaysFor(ctx context.Context, commitmentIDs []string) (map[string][]models.MemorialDay, error) {
	out := make(map[string][]models.MemorialDay, len(commitmentIDs))
	if len(commitmentIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT commitment_id, campain_name, memorial_date, note
		FROM memorial_days
		WHERE commitment_id = ANY($1)
		ORDER BY memorial_date;
	`
	rows, err := r.db.Query(ctx, query, commitmentIDs)
	if err != nil {
		return nil, translateError(err, "list memorial days")
	}
	defer rows.Close()
	for rows.Next() {
		var m models.MemorialDay
		if err := rows.Scan(&m.CommitmentID, &m.CampainName, &m.MemorialDate, &m.Note); err != nil {
			return nil, translateError(err, "scan memorial day")
		}
		out[m.CommitmentID] = append(out[m.CommitmentID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "list memorial days")
	}
	return out, nil
}

// FindCommitmentByID implements portsrepo.CommitmentReader
func (r *BaseRepository) FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	return r.findCommitment(ctx, "commitment "+commitmentID, false, `c.commitment_id = $1`, commitmentID)
}

// FindCommitmentByKey implements portsrepo.CommitmentReader
func (r *BaseRepository) FindCommitmentByKey(ctx context.Context, key domain.CommitmentKey) (*domain.Commitment, error) {
	return r.findCommitment(ctx, "commitment "+key.String(), false,
		`c.anash_identifier = $1 AND c.campain_name = $2`, key.AnashIdentifier, key.CampainName)
}

// ListCommitmentsByCampaign implements portsrepo.CommitmentReader
func (r *BaseRepository) ListCommitmentsByCampaign(ctx context.Context, campainName string) ([]domain.Commitment, error) {
	query := `SELECT ` + commitmentColumns + ` FROM commitments c WHERE c.campain_name = $1 ORDER BY c.anash_identifier;`
	return r.listCommitments(ctx, "list commitments of campaign "+campainName, query, campainName)
}

// ListCommitments implements portsrepo.CommitmentReader
func (r *BaseRepository) ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.Commitment, error) {
	query := `
		SELECT ` + commitmentColumns + `
		FROM commitments c
		LEFT JOIN people p ON p.anash_identifier = c.anash_identifier
		WHERE ($1::text IS NULL OR c.campain_name = $1)
		  AND ($2::boolean IS NULL OR p.is_active = $2)
		ORDER BY c.campain_name, c.anash_identifier;
	`
	return r.listCommitments(ctx, "list commitments", query, filter.CampainName, filter.IsActive)
}

// LockCommitmentByID implements portsrepo.CommitmentLocker
func (r *BaseRepository) LockCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	return r.findCommitment(ctx, "commitment "+commitmentID, true, `c.commitment_id = $1`, commitmentID)
}

// LockCommitmentByKey implements portsrepo.CommitmentLocker
func (r *BaseRepository) LockCommitmentByKey(ctx context.Context, key domain.CommitmentKey) (*domain.Commitment, error) {
	return r.findCommitment(ctx, "commitment "+key.String(), true,
		`c.anash_identifier = $1 AND c.campain_name = $2`, key.AnashIdentifier, key.CampainName)
}

// LockCommitmentsByIDs implements portsrepo.CommitmentLocker. Rows are locked in id order.
func (r *BaseRepository) LockCommitmentsByIDs(ctx context.Context, commitmentIDs []string) (map[string]domain.Commitment, error) {
	query := `SELECT ` + commitmentColumns + ` FROM commitments c WHERE c.commitment_id = ANY($1) ORDER BY c.commitment_id FOR UPDATE;`
	commitments, err := r.listCommitments(ctx, "lock commitments", query, uniqueStrings(commitmentIDs))
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Commitment, len(commitments))
	for _, c := range commitments {
		out[c.CommitmentID] = c
	}
	return out, nil
}

const insertCommitmentQuery = `
	INSERT INTO commitments (
		commitment_id, anash_identifier, person_id, first_name, last_name, campain_name,
		commitment_amount, amount_paid, amount_remaining,
		number_of_payments, payments_made, payments_remaining,
		fundraiser, payment_method, notes, response_to_fundraiser,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
`

const insertMemorialDayQuery = `
	INSERT INTO memorial_days (commitment_id, campain_name, memorial_date, note)
	VALUES ($1, $2, $3, $4);
`

// InsertCommitments implements portsrepo.CommitmentWriter
func (r *BaseRepository) InsertCommitments(ctx context.Context, commitments []domain.Commitment) error {
	batch := &pgx.Batch{}
	for _, c := range commitments {
		m := mapping.ToModelCommitment(c)
		batch.Queue(insertCommitmentQuery,
			m.CommitmentID, m.AnashIdentifier, m.PersonID, m.FirstName, m.LastName, m.CampainName,
			m.CommitmentAmount, m.AmountPaid, m.AmountRemaining,
			m.NumberOfPayments, m.PaymentsMade, m.PaymentsRemaining,
			m.Fundraiser, m.PaymentMethod, m.Notes, m.ResponseToFundraiser,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		queueMemorialDays(batch, mapping.ToModelMemorialDays(c, r.loc))
	}
	return r.sendBatch(ctx, batch, fmt.Sprintf("insert %d commitments", len(commitments)))
}

// UpdateCommitment implements portsrepo.CommitmentWriter. Memorial days are replaced wholesale.
func (r *BaseRepository) UpdateCommitment(ctx context.Context, commitment domain.Commitment) error {
	m := mapping.ToModelCommitment(commitment)
	query := `
		UPDATE commitments
		SET commitment_amount = $2, amount_paid = $3, amount_remaining = $4,
		    number_of_payments = $5, payments_made = $6, payments_remaining = $7,
		    fundraiser = $8, payment_method = $9, notes = $10, response_to_fundraiser = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE commitment_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.CommitmentID,
		m.CommitmentAmount, m.AmountPaid, m.AmountRemaining,
		m.NumberOfPayments, m.PaymentsMade, m.PaymentsRemaining,
		m.Fundraiser, m.PaymentMethod, m.Notes, m.ResponseToFundraiser,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "update commitment "+m.CommitmentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, m.CommitmentID)
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM memorial_days WHERE commitment_id = $1;`, m.CommitmentID)
	queueMemorialDays(batch, mapping.ToModelMemorialDays(commitment, r.loc))
	return r.sendBatch(ctx, batch, "replace memorial days of commitment "+m.CommitmentID)
}

// DeleteCommitment implements portsrepo.CommitmentWriter. Memorial days cascade.
func (r *BaseRepository) DeleteCommitment(ctx context.Context, commitmentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM commitments WHERE commitment_id = $1;`, commitmentID)
	if err != nil {
		return translateError(err, "delete commitment "+commitmentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
	}
	return nil
}

func queueMemorialDays(batch *pgx.Batch, days []models.MemorialDay) {
	for _, d := range days {
		batch.Queue(insertMemorialDayQuery, d.CommitmentID, d.CampainName, d.MemorialDate, d.Note)
	}
}

// uniqueStrings drops repeated ids, keeping first-seen order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
