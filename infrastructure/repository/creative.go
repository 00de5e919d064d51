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

const creativesTable = "creatives"

type CreativeRepository interface {
	SaveOrUpdate(ctx context.Context, creatives []domain.Creative) error
	GetByID(ctx context.Context, creativeID string) (*domain.Creative, error)
	ListByIntegration(ctx context.Context, integrationID string) ([]*domain.Creative, error)
	ListByAdSet(ctx context.Context, adSetID string) ([]*domain.Creative, error)

	// ExistingAssetURLs devolve o mapa URL de origem -> localização
	// persistida dos assets da integração, para que sincronizações
	// incrementais pulem redownload de imagens inalteradas
	ExistingAssetURLs(ctx context.Context, integrationID string) (map[string]string, error)
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

const creativeColumns = "id, external_id, integration_id, platform, ad_set_id, campaign_id, name, " +
	"status_display, status_raw, format, body, title, " +
	"image_location, image_source_url, video_location, carousel_image_locations, " +
	"degraded_quality, thumbnail_state, " +
	"impressions, clicks, conversions, ctr, cpc, spend"

func (r *creativeRepository) SaveOrUpdate(ctx context.Context, creatives []domain.Creative) error {
	for _, creative := range creatives {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id do criativo: %w", err)
		}

		query, args, err := squirrel.StatementBuilder.
			Insert(creativesTable).
			Columns(
				"id", "external_id", "integration_id", "platform", "ad_set_id", "campaign_id", "name",
				"status_display", "status_raw", "format", "body", "title",
				"image_location", "image_source_url", "video_location", "carousel_image_locations",
				"degraded_quality", "thumbnail_state",
				"impressions", "clicks", "conversions", "ctr", "cpc", "spend",
			).
			Values(
				id,
				creative.ExternalID,
				creative.IntegrationID,
				creative.Platform,
				creative.AdSetID,
				creative.CampaignID,
				creative.Name,
				creative.Status.Display,
				creative.Status.Raw,
				creative.Format,
				creative.Body,
				creative.Title,
				creative.ImageLocation,
				creative.ImageSourceURL,
				creative.VideoLocation,
				pq.Array(creative.CarouselImageLocations),
				creative.DegradedQuality,
				creative.ThumbnailState,
				creative.Metrics.Impressions,
				creative.Metrics.Clicks,
				creative.Metrics.Conversions,
				creative.Metrics.CTR,
				creative.Metrics.CPC,
				creative.Metrics.Spend,
			).
			Suffix(`
				ON CONFLICT (external_id, integration_id) DO UPDATE SET
					ad_set_id = EXCLUDED.ad_set_id,
					campaign_id = EXCLUDED.campaign_id,
					name = EXCLUDED.name,
					status_display = EXCLUDED.status_display,
					status_raw = EXCLUDED.status_raw,
					format = EXCLUDED.format,
					body = EXCLUDED.body,
					title = EXCLUDED.title,
					image_location = EXCLUDED.image_location,
					image_source_url = EXCLUDED.image_source_url,
					video_location = EXCLUDED.video_location,
					carousel_image_locations = EXCLUDED.carousel_image_locations,
					degraded_quality = EXCLUDED.degraded_quality,
					thumbnail_state = EXCLUDED.thumbnail_state,
					impressions = EXCLUDED.impressions,
					clicks = EXCLUDED.clicks,
					conversions = EXCLUDED.conversions,
					ctr = EXCLUDED.ctr,
					cpc = EXCLUDED.cpc,
					spend = EXCLUDED.spend
			`).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

func (r *creativeRepository) GetByID(ctx context.Context, creativeID string) (*domain.Creative, error) {
	query, args, err := squirrel.
		Select(creativeColumns).
		From(creativesTable).
		Where(squirrel.Eq{"id": creativeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	return deserializeCreative(rows)
}

func (r *creativeRepository) ListByIntegration(ctx context.Context, integrationID string) ([]*domain.Creative, error) {
	return r.list(ctx, squirrel.Eq{"integration_id": integrationID})
}

func (r *creativeRepository) ListByAdSet(ctx context.Context, adSetID string) ([]*domain.Creative, error) {
	return r.list(ctx, squirrel.Eq{"ad_set_id": adSetID})
}

func (r *creativeRepository) list(ctx context.Context, whereClause map[string]interface{}) ([]*domain.Creative, error) {
	query, args, err := squirrel.
		Select(creativeColumns).
		From(creativesTable).
		Where(whereClause).
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

	creatives := make([]*domain.Creative, 0)

	for rows.Next() {
		creative, err := deserializeCreative(rows)
		if err != nil {
			return nil, err
		}

		creatives = append(creatives, creative)
	}

	return creatives, rows.Err()
}

func (r *creativeRepository) ExistingAssetURLs(ctx context.Context, integrationID string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("image_source_url, image_location").
		From(creativesTable).
		Where(squirrel.And{
			squirrel.Eq{"integration_id": integrationID},
			squirrel.NotEq{"image_source_url": ""},
			squirrel.NotEq{"image_location": ""},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]string)

	for rows.Next() {
		var sourceURL, location string
		if err := rows.Scan(&sourceURL, &location); err != nil {
			return nil, err
		}

		existing[sourceURL] = location
	}

	return existing, rows.Err()
}

func deserializeCreative(rows *sql.Rows) (*domain.Creative, error) {
	creative := &domain.Creative{}
	carouselLocations := pq.StringArray{}

	if err := rows.Scan(
		&creative.ID,
		&creative.ExternalID,
		&creative.IntegrationID,
		&creative.Platform,
		&creative.AdSetID,
		&creative.CampaignID,
		&creative.Name,
		&creative.Status.Display,
		&creative.Status.Raw,
		&creative.Format,
		&creative.Body,
		&creative.Title,
		&creative.ImageLocation,
		&creative.ImageSourceURL,
		&creative.VideoLocation,
		&carouselLocations,
		&creative.DegradedQuality,
		&creative.ThumbnailState,
		&creative.Metrics.Impressions,
		&creative.Metrics.Clicks,
		&creative.Metrics.Conversions,
		&creative.Metrics.CTR,
		&creative.Metrics.CPC,
		&creative.Metrics.Spend,
	); err != nil {
		return nil, err
	}

	creative.CarouselImageLocations = carouselLocations

	return creative, nil
}
