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

const adSetsTable = "ad_sets"

type AdSetRepository interface {
	// SaveOrUpdate insere ou atualiza conjuntos de anúncios e devolve o
	// mapa id externo -> (id interno, id interno da campanha pai)
	SaveOrUpdate(ctx context.Context, adSets []domain.AdSet) (map[string]domain.AdSetRef, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.AdSet, error)
}

type adSetRepository struct {
	conn *postgres.Connection
}

func NewAdSetRepository(conn *postgres.Connection) AdSetRepository {
	return &adSetRepository{
		conn: conn,
	}
}

func (r *adSetRepository) SaveOrUpdate(ctx context.Context, adSets []domain.AdSet) (map[string]domain.AdSetRef, error) {
	idMap := make(map[string]domain.AdSetRef, len(adSets))

	for _, adSet := range adSets {
		id, err := utils.GenerateID()
		if err != nil {
			return idMap, fmt.Errorf("erro ao gerar id do conjunto de anúncios: %w", err)
		}

		query, args, err := squirrel.StatementBuilder.
			Insert(adSetsTable).
			Columns(
				"id", "external_id", "integration_id", "platform", "campaign_id",
				"name", "status_display", "status_raw", "budget",
				"impressions", "clicks", "conversions", "ctr", "cpc", "spend",
			).
			Values(
				id,
				adSet.ExternalID,
				adSet.IntegrationID,
				adSet.Platform,
				adSet.CampaignID,
				adSet.Name,
				adSet.Status.Display,
				adSet.Status.Raw,
				adSet.Budget,
				adSet.Metrics.Impressions,
				adSet.Metrics.Clicks,
				adSet.Metrics.Conversions,
				adSet.Metrics.CTR,
				adSet.Metrics.CPC,
				adSet.Metrics.Spend,
			).
			Suffix(`
				ON CONFLICT (external_id, integration_id) DO UPDATE SET
					campaign_id = EXCLUDED.campaign_id,
					name = EXCLUDED.name,
					status_display = EXCLUDED.status_display,
					status_raw = EXCLUDED.status_raw,
					budget = EXCLUDED.budget,
					impressions = EXCLUDED.impressions,
					clicks = EXCLUDED.clicks,
					conversions = EXCLUDED.conversions,
					ctr = EXCLUDED.ctr,
					cpc = EXCLUDED.cpc,
					spend = EXCLUDED.spend
				RETURNING id, campaign_id
			`).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return idMap, fmt.Errorf("failed to build query: %w", err)
		}

		var ref domain.AdSetRef
		if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&ref.AdSetID, &ref.CampaignID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return idMap, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
			}
			return idMap, fmt.Errorf("failed to execute query: %w", err)
		}

		idMap[adSet.ExternalID] = ref
	}

	return idMap, nil
}

func (r *adSetRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.AdSet, error) {
	query, args, err := squirrel.
		Select(
			"id, external_id, integration_id, platform, campaign_id, name, status_display, status_raw, budget",
			"impressions, clicks, conversions, ctr, cpc, spend",
		).
		From(adSetsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
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

	adSets := make([]*domain.AdSet, 0)

	for rows.Next() {
		adSet := &domain.AdSet{}

		if err := rows.Scan(
			&adSet.ID,
			&adSet.ExternalID,
			&adSet.IntegrationID,
			&adSet.Platform,
			&adSet.CampaignID,
			&adSet.Name,
			&adSet.Status.Display,
			&adSet.Status.Raw,
			&adSet.Budget,
			&adSet.Metrics.Impressions,
			&adSet.Metrics.Clicks,
			&adSet.Metrics.Conversions,
			&adSet.Metrics.CTR,
			&adSet.Metrics.CPC,
			&adSet.Metrics.Spend,
		); err != nil {
			return nil, err
		}

		adSets = append(adSets, adSet)
	}

	return adSets, rows.Err()
}
