package domain

import "time"

// SyncPhase identifica a fase da máquina de estados de uma sincronização.
type SyncPhase string

const (
	SyncPhaseCampaigns SyncPhase = "campaigns"
	SyncPhaseAdSets    SyncPhase = "ad_sets"
	SyncPhaseAds       SyncPhase = "ads"
	SyncPhaseDone      SyncPhase = "done"
)

// SyncRun é o registro de uma invocação de sincronização, usado pela API
// de status para exibir um resumo significativo em vez de sucesso/falha
// binário.
type SyncRun struct {
	ID                     string     `json:"id"`
	IntegrationID          string     `json:"integration_id"`
	Phase                  SyncPhase  `json:"phase"`
	Campaigns              int        `json:"campaigns"`
	AdSets                 int        `json:"ad_sets"`
	Creatives              int        `json:"creatives"`
	SkippedOrphans         int        `json:"skipped_orphans"`
	FailedAssetResolutions int        `json:"failed_asset_resolutions"`
	DuplicateExternalIDs   int        `json:"duplicate_external_ids"`
	Error                  string     `json:"error,omitempty"`
	StartedAt              time.Time  `json:"started_at"`
	CompletedAt            *time.Time `json:"completed_at,omitempty"`
}
