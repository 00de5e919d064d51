package domain

import "time"

type IntegrationStatus string

const (
	IntegrationStatusActive       IntegrationStatus = "active"
	IntegrationStatusError        IntegrationStatus = "error"
	IntegrationStatusReconnecting IntegrationStatus = "reconnecting"
)

// Integration representa uma conta de anúncios conectada à plataforma.
// O motor de sincronização trata esses dados como somente leitura; o
// token é renovado por um colaborador separado (token manager).
type Integration struct {
	ID                string            `json:"id"`
	Platform          string            `json:"platform"`
	ExternalAccountID string            `json:"external_account_id"`
	Status            IntegrationStatus `json:"status"`
	LastSyncedAt      *time.Time        `json:"last_synced_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}
