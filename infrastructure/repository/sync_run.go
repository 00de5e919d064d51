package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/compliance-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

const syncRunsTable = "sync_runs"

type SyncRunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	Update(ctx context.Context, run *domain.SyncRun) error
	GetLatestByIntegration(ctx context.Context, integrationID string) (*domain.SyncRun, error)
	ListByIntegration(ctx context.Context, integrationID string, limit uint64) ([]*domain.SyncRun, error)
}

type syncRunRepository struct {
	conn *postgres.Connection
}

func NewSyncRunRepository(conn *postgres.Connection) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

func (r *syncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(syncRunsTable).
		Columns(
			"id", "integration_id", "phase", "campaigns", "ad_sets", "creatives",
			"skipped_orphans", "failed_asset_resolutions", "duplicate_external_ids",
			"error", "started_at", "completed_at",
		).
		Values(
			run.ID,
			run.IntegrationID,
			run.Phase,
			run.Campaigns,
			run.AdSets,
			run.Creatives,
			run.SkippedOrphans,
			run.FailedAssetResolutions,
			run.DuplicateExternalIDs,
			run.Error,
			run.StartedAt,
			run.CompletedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao registrar execução de sincronização: %w", err)
	}

	return nil
}

func (r *syncRunRepository) Update(ctx context.Context, run *domain.SyncRun) error {
	query, args, err := squirrel.
		Update(syncRunsTable).
		Set("phase", run.Phase).
		Set("campaigns", run.Campaigns).
		Set("ad_sets", run.AdSets).
		Set("creatives", run.Creatives).
		Set("skipped_orphans", run.SkippedOrphans).
		Set("failed_asset_resolutions", run.FailedAssetResolutions).
		Set("duplicate_external_ids", run.DuplicateExternalIDs).
		Set("error", run.Error).
		Set("completed_at", run.CompletedAt).
		Where(squirrel.Eq{"id": run.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar execução de sincronização %s: %w", run.ID, err)
	}

	return nil
}

func (r *syncRunRepository) GetLatestByIntegration(ctx context.Context, integrationID string) (*domain.SyncRun, error) {
	runs, err := r.ListByIntegration(ctx, integrationID, 1)
	if err != nil {
		return nil, err
	}

	if len(runs) == 0 {
		return nil, nil
	}

	return runs[0], nil
}

func (r *syncRunRepository) ListByIntegration(ctx context.Context, integrationID string, limit uint64) ([]*domain.SyncRun, error) {
	queryBuilder := squirrel.
		Select(
			"id, integration_id, phase, campaigns, ad_sets, creatives",
			"skipped_orphans, failed_asset_resolutions, duplicate_external_ids",
			"error, started_at, completed_at",
		).
		From(syncRunsTable).
		Where(squirrel.Eq{"integration_id": integrationID}).
		OrderBy("started_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	query, args, err := queryBuilder.ToSql()
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

	runs := make([]*domain.SyncRun, 0)

	for rows.Next() {
		run := &domain.SyncRun{}
		errorText := sql.NullString{}

		if err := rows.Scan(
			&run.ID,
			&run.IntegrationID,
			&run.Phase,
			&run.Campaigns,
			&run.AdSets,
			&run.Creatives,
			&run.SkippedOrphans,
			&run.FailedAssetResolutions,
			&run.DuplicateExternalIDs,
			&errorText,
			&run.StartedAt,
			&run.CompletedAt,
		); err != nil {
			return nil, err
		}

		run.Error = errorText.String

		runs = append(runs, run)
	}

	return runs, rows.Err()
}
