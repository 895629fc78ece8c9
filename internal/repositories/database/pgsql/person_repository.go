package pgsql

import (
	"context"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/SscSPs/campaign_ledger/internal/models"
	"github.com/SscSPs/campaign_ledger/internal/utils/mapping"
)

const (
	personColumns   = `person_id, anash_identifier, first_name, last_name, is_active`
	campaignColumns = `campain_name, minimum_amount_for_memorial_day`
)

func scanPerson(row scanner) (models.Person, error) {
	var m models.Person
	err := row.Scan(&m.PersonID, &m.AnashIdentifier, &m.FirstName, &m.LastName, &m.IsActive)
	return m, err
}

func scanCampaign(row scanner) (models.Campaign, error) {
	var m models.Campaign
	err := row.Scan(&m.CampainName, &m.MinimumAmountForMemorialDay)
	return m, err
}

// FindPersonByAnashIdentifier implements portsrepo.PersonReader
func (r *BaseRepository) FindPersonByAnashIdentifier(ctx context.Context, anashIdentifier string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE anash_identifier = $1;`
	m, err := scanPerson(r.db.QueryRow(ctx, query, anashIdentifier))
	if err != nil {
		return nil, notFound(err, "person "+anashIdentifier)
	}
	p := mapping.ToDomainPerson(m)
	return &p, nil
}

// ListPeople implements portsrepo.PersonReader
func (r *BaseRepository) ListPeople(ctx context.Context, activeOnly bool) ([]domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE ($1 = FALSE OR is_active) ORDER BY anash_identifier;`
	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, translateError(err, "list people")
	}
	defer rows.Close()

	people := []domain.Person{}
	for rows.Next() {
		m, err := scanPerson(rows)
		if err != nil {
			return nil, translateError(err, "scan person")
		}
		people = append(people, mapping.ToDomainPerson(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "list people")
	}
	return people, nil
}

// FindCampaignByName implements portsrepo.CampaignReader
func (r *BaseRepository) FindCampaignByName(ctx context.Context, campainName string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE campain_name = $1;`
	m, err := scanCampaign(r.db.QueryRow(ctx, query, campainName))
	if err != nil {
		return nil, notFound(err, "campaign "+campainName)
	}
	c := mapping.ToDomainCampaign(m)
	return &c, nil
}

// ListCampaigns implements portsrepo.CampaignReader
func (r *BaseRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY campain_name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "list campaigns")
	}
	defer rows.Close()

	campaigns := []domain.Campaign{}
	for rows.Next() {
		m, err := scanCampaign(rows)
		if err != nil {
			return nil, translateError(err, "scan campaign")
		}
		campaigns = append(campaigns, mapping.ToDomainCampaign(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "list campaigns")
	}
	return campaigns, nil
}
