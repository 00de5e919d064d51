package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/compliance-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

const integrationsTable = "integrations"

type IntegrationRepository interface {
	GetByID(ctx context.Context, integrationID string) (*domain.Integration, error)
	ListByStatus(ctx context.Context, status []domain.IntegrationStatus) ([]*domain.Integration, error)
	UpdateStatus(ctx context.Context, integrationID string, status domain.IntegrationStatus) error
	UpdateLastSyncedAt(ctx context.Context, integrationID string, syncedAt time.Time) error
}

type integrationRepository struct {
	conn *postgres.Connection
}

func NewIntegrationRepository(conn *postgres.Connection) IntegrationRepository {
	return &integrationRepository{
		conn: conn,
	}
}

func (r *integrationRepository) GetByID(ctx context.Context, integrationID string) (*domain.Integration, error) {
	query, args, err := squirrel.
		Select("id, platform, external_account_id, status, last_synced_at, created_at").
		From(integrationsTable).
		Where(squirrel.Eq{"id": integrationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRowContext(ctx, query, args...)

	integration, err := deserializeIntegration(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return integration, nil
}

func (r *integrationRepository) ListByStatus(ctx context.Context, status []domain.IntegrationStatus) ([]*domain.Integration, error) {
	queryBuilder := squirrel.
		Select("id, platform, external_account_id, status, last_synced_at, created_at").
		From(integrationsTable).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(status) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": status})
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

	integrations := make([]*domain.Integration, 0)

	for rows.Next() {
		integration := &domain.Integration{}

		if err := rows.Scan(
			&integration.ID,
			&integration.Platform,
			&integration.ExternalAccountID,
			&integration.Status,
			&integration.LastSyncedAt,
			&integration.CreatedAt,
		); err != nil {
			return nil, err
		}

		integrations = append(integrations, integration)
	}

	return integrations, rows.Err()
}

func (r *integrationRepository) UpdateStatus(ctx context.Context, integrationID string, status domain.IntegrationStatus) error {
	query, args, err := squirrel.
		Update(integrationsTable).
		Set("status", status).
		Where(squirrel.Eq{"id": integrationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar status da integração %s: %w", integrationID, err)
	}

	return nil
}

func (r *integrationRepository) UpdateLastSyncedAt(ctx context.Context, integrationID string, syncedAt time.Time) error {
	query, args, err := squirrel.
		Update(integrationsTable).
		Set("last_synced_at", syncedAt).
		Where(squirrel.Eq{"id": integrationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar last_synced_at da integração %s: %w", integrationID, err)
	}

	return nil
}

func deserializeIntegration(row *sql.Row) (*domain.Integration, error) {
	integration := &domain.Integration{}

	if err := row.Scan(
		&integration.ID,
		&integration.Platform,
		&integration.ExternalAccountID,
		&integration.Status,
		&integration.LastSyncedAt,
		&integration.CreatedAt,
	); err != nil {
		return nil, err
	}

	return integration, nil
}
