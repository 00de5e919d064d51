package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/compliance-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
	"github.com/vfg2006/compliance-manager-api/pkg/utils"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	// SaveOrUpdate insere ou atualiza campanhas e devolve o mapa
	// id externo -> id interno, incluindo linhas preexistentes
	SaveOrUpdate(ctx context.Context, campaigns []domain.Campaign) (map[string]string, error)
	ListByIntegration(ctx context.Context, integrationID string) ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) SaveOrUpdate(ctx context.Context, campaigns []domain.Campaign) (map[string]string, error) {
	idMap := make(map[string]string, len(campaigns))

	for _, campaign := range campaigns {
		id, err := utils.GenerateID()
		if err != nil {
			return idMap, fmt.Errorf("erro ao gerar id da campanha: %w", err)
		}

		query, args, err := squirrel.StatementBuilder.
			Insert(campaignsTable).
			Columns("id", "external_id", "integration_id", "platform", "name", "status_display", "status_raw", "budget").
			Values(
				id,
				campaign.ExternalID,
				campaign.IntegrationID,
				campaign.Platform,
				campaign.Name,
				campaign.Status.Display,
				campaign.Status.Raw,
				campaign.Budget,
			).
			Suffix(`
				ON CONFLICT (external_id, integration_id) DO UPDATE SET
					name = EXCLUDED.name,
					status_display = EXCLUDED.status_display,
					status_raw = EXCLUDED.status_raw,
					budget = EXCLUDED.budget
				RETURNING id
			`).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return idMap, fmt.Errorf("failed to build query: %w", err)
		}

		var persistedID string
		if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&persistedID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return idMap, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
			}
			return idMap, fmt.Errorf("failed to execute query: %w", err)
		}

		idMap[campaign.ExternalID] = persistedID
	}

	return idMap, nil
}

func (r *campaignRepository) ListByIntegration(ctx context.Context, integrationID string) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("id, external_id, integration_id, platform, name, status_display, status_raw, budget").
		From(campaignsTable).
		Where(squirrel.Eq{"integration_id": integrationID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)

	for rows.Next() {
		campaign := &domain.Campaign{}

		if err := rows.Scan(
			&campaign.ID,
			&campaign.ExternalID,
			&campaign.IntegrationID,
			&campaign.Platform,
			&campaign.Name,
			&campaign.Status.Display,
			&campaign.Status.Raw,
			&campaign.Budget,
		); err != nil {
			return nil, err
		}

		campaigns = append(campaigns, campaign)
	}

	return campaigns, rows.Err()
}
