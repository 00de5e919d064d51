package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

// Persister é o colaborador de persistência: consome os registros
// normalizados que o motor produz e devolve os mapas de ids externos ->
// internos. O motor nunca escreve no banco diretamente.
type Persister interface {
	// UpsertCampaigns insere ou atualiza campanhas e devolve o mapa
	// id externo -> id interno
	UpsertCampaigns(ctx context.Context, campaigns []domain.Campaign) (map[string]string, error)

	// UpsertAdSets insere ou atualiza conjuntos de anúncios e devolve o mapa
	// id externo -> (id interno do conjunto, id interno da campanha pai)
	UpsertAdSets(ctx context.Context, adSets []domain.AdSet) (map[string]domain.AdSetRef, error)

	// UpsertCreatives insere ou atualiza os criativos normalizados
	UpsertCreatives(ctx context.Context, creatives []domain.Creative) error
}

// Options parametriza uma invocação de sincronização.
type Options struct {
	// Since ativa o modo incremental: filtro server-side de
	// updated_time na busca de campanhas
	Since *time.Time

	// ExistingAssetURLs permite ao resolvedor pular redownload de
	// assets já persistidos (URL de origem -> localização salva)
	ExistingAssetURLs map[string]string

	// OnProgress é chamado após cada página com o total acumulado da fase
	OnProgress func(phase domain.SyncPhase, total int)
}

// Result é a saída de uma sincronização completa: registros prontos para
// inserção, mapas de ids e contadores não fatais.
type Result struct {
	Campaigns []domain.Campaign
	AdSets    []domain.AdSet
	Creatives []domain.Creative

	CampaignIDs map[string]string
	AdSetIDs    map[string]domain.AdSetRef

	SkippedOrphans         int
	FailedAssetResolutions int
	DuplicateExternalIDs   int
}

// Synchronizer executa a sincronização completa de uma integração.
type Synchronizer interface {
	Sync(ctx context.Context, integration *domain.Integration, opts Options) (*Result, error)
}
