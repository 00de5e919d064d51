package syncing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/assets"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

const platformMeta = "meta"

// Service é o orquestrador de sincronização: três passadas sequenciais
// por conta inteira (campanhas, conjuntos, anúncios), construindo os
// mapas de ids entre as fases. Assume exclusão mútua por integração
// garantida pela camada chamadora (scheduler).
type Service struct {
	client     metaclient.Client
	persister  Persister
	assetStore assets.Store
}

func NewService(client metaclient.Client, persister Persister, assetStore assets.Store) Synchronizer {
	return &Service{
		client:     client,
		persister:  persister,
		assetStore: assetStore,
	}
}

// Sync executa a máquina de estados campanhas -> conjuntos -> anúncios.
// Em erro fatal devolve o Result parcial das fases completadas junto de
// um PhaseError; órfãos, duplicatas e falhas de asset apenas contam.
func (s *Service) Sync(ctx context.Context, integration *domain.Integration, opts Options) (*Result, error) {
	result := &Result{
		CampaignIDs: map[string]string{},
		AdSetIDs:    map[string]domain.AdSetRef{},
	}

	if err := s.client.EnsureValidToken(); err != nil {
		return result, &PhaseError{Phase: domain.SyncPhaseCampaigns, Err: classifyFatal(fmt.Errorf("token inválido: %w", err))}
	}

	if err := s.syncCampaigns(ctx, integration, opts, result); err != nil {
		return result, err
	}

	if err := s.syncAdSets(ctx, integration, opts, result); err != nil {
		return result, err
	}

	if err := s.syncAds(ctx, integration, opts, result); err != nil {
		return result, err
	}

	logrus.Infof("Sincronização da integração %s concluída: %d campanhas, %d conjuntos, %d criativos (%d órfãos, %d duplicatas, %d assets não resolvidos)",
		integration.ID, len(result.Campaigns), len(result.AdSets), len(result.Creatives),
		result.SkippedOrphans, result.DuplicateExternalIDs, result.FailedAssetResolutions)

	return result, nil
}

func (s *Service) syncCampaigns(ctx context.Context, integration *domain.Integration, opts Options, result *Result) error {
	external, err := s.client.ListCampaigns(ctx, integration.ExternalAccountID, opts.Since, func(total int) {
		s.reportProgress(opts, domain.SyncPhaseCampaigns, total)
	})
	if err != nil {
		return &PhaseError{Phase: domain.SyncPhaseCampaigns, Err: classifyFatal(err)}
	}

	seen := map[string]bool{}
	for _, campaign := range external {
		// Primeira ocorrência vence: duplicatas dentro da mesma
		// passada são contadas e ignoradas
		if seen[campaign.ID] {
			result.DuplicateExternalIDs++
			logrus.Warnf("Campanha %s duplicada na mesma passada, mantendo a primeira ocorrência", campaign.ID)
			continue
		}
		seen[campaign.ID] = true

		result.Campaigns = append(result.Campaigns, domain.Campaign{
			ExternalID:    campaign.ID,
			IntegrationID: integration.ID,
			Platform:      platformMeta,
			Name:          campaign.Name,
			Status:        normalizeStatus(campaign.EffectiveStatus, campaign.Status),
			Budget:        normalizeBudget(campaign.DailyBudget, campaign.LifetimeBudget),
		})
	}

	idMap, err := s.persister.UpsertCampaigns(ctx, result.Campaigns)
	if err != nil {
		return &PhaseError{
			Phase:     domain.SyncPhaseCampaigns,
			Processed: len(result.Campaigns),
			Err:       fmt.Errorf("erro ao persistir campanhas: %w", err),
		}
	}
	result.CampaignIDs = idMap

	return nil
}

func (s *Service) syncAdSets(ctx context.Context, integration *domain.Integration, opts Options, result *Result) error {
	// Passada única pela conta inteira: varrer por campanha perderia
	// conjuntos de campanhas pausadas/arquivadas e multiplicaria chamadas
	external, err := s.client.ListAdSets(ctx, integration.ExternalAccountID, func(total int) {
		s.reportProgress(opts, domain.SyncPhaseAdSets, total)
	})
	if err != nil {
		return &PhaseError{Phase: domain.SyncPhaseAdSets, Err: classifyFatal(err)}
	}

	insights, err := s.fetchInsights(ctx, adSetIDs(external))
	if err != nil {
		return &PhaseError{Phase: domain.SyncPhaseAdSets, Err: classifyFatal(err)}
	}

	seen := map[string]bool{}
	for i, adSet := range external {
		if seen[adSet.ID] {
			result.DuplicateExternalIDs++
			logrus.Warnf("Conjunto de anúncios %s duplicado na mesma passada, mantendo a primeira ocorrência", adSet.ID)
			continue
		}
		seen[adSet.ID] = true

		campaignID, ok := result.CampaignIDs[adSet.CampaignID]
		if !ok {
			result.SkippedOrphans++
			logrus.Warnf("Conjunto de anúncios %s órfão: campanha pai %s ausente do mapa de ids", adSet.ID, adSet.CampaignID)
			continue
		}

		result.AdSets = append(result.AdSets, domain.AdSet{
			ExternalID:    adSet.ID,
			IntegrationID: integration.ID,
			Platform:      platformMeta,
			CampaignID:    campaignID,
			Name:          adSet.Name,
			Status:        normalizeStatus(adSet.EffectiveStatus, adSet.Status),
			Budget:        normalizeBudget(adSet.DailyBudget, adSet.LifetimeBudget),
			Metrics:       normalizeMetrics(insightAt(insights, i)),
		})
	}

	idMap, err := s.persister.UpsertAdSets(ctx, result.AdSets)
	if err != nil {
		return &PhaseError{
			Phase:     domain.SyncPhaseAdSets,
			Processed: len(result.AdSets),
			Err:       fmt.Errorf("erro ao persistir conjuntos de anúncios: %w", err),
		}
	}
	result.AdSetIDs = idMap

	return nil
}

func (s *Service) syncAds(ctx context.Context, integration *domain.Integration, opts Options, result *Result) error {
	external, err := s.client.ListAds(ctx, integration.ExternalAccountID, func(total int) {
		s.reportProgress(opts, domain.SyncPhaseAds, total)
	})
	if err != nil {
		return &PhaseError{Phase: domain.SyncPhaseAds, Err: classifyFatal(err)}
	}

	insights, err := s.fetchInsights(ctx, adIDs(external))
	if err != nil {
		return &PhaseError{Phase: domain.SyncPhaseAds, Err: classifyFatal(err)}
	}

	resolver := assets.NewResolver(s.client, s.assetStore, opts.ExistingAssetURLs)

	seen := map[string]bool{}
	for i, ad := range external {
		if seen[ad.ID] {
			result.DuplicateExternalIDs++
			logrus.Warnf("Anúncio %s duplicado na mesma passada, mantendo a primeira ocorrência", ad.ID)
			continue
		}
		seen[ad.ID] = true

		parent, ok := result.AdSetIDs[ad.AdSetID]
		if !ok {
			result.SkippedOrphans++
			logrus.Warnf("Anúncio %s órfão: conjunto pai %s ausente do mapa de ids", ad.ID, ad.AdSetID)
			continue
		}

		creative := domain.Creative{
			ExternalID:    ad.ID,
			IntegrationID: integration.ID,
			Platform:      platformMeta,
			AdSetID:       parent.AdSetID,
			CampaignID:    parent.CampaignID,
			Name:          ad.Name,
			Status:        normalizeStatus(ad.EffectiveStatus, ad.Status),
			Format:        domain.CreativeFormatUnknown,
			Metrics:       normalizeMetrics(insightAt(insights, i)),
		}

		if ad.Creative != nil {
			creative.Body = ad.Creative.Body
			creative.Title = ad.Creative.Title
		}

		resolution, err := resolver.Resolve(ctx, integration.ExternalAccountID, ad.Creative, integration.ID)
		if err != nil {
			// Token inválido ou rate limit durante a resolução
			// derrubam a fase; falha pontual de asset não derruba a
			// passada, o criativo sai sem localização e a falha é
			// contada
			if metaclient.IsAuthError(err) || metaclient.IsRateLimitError(err) {
				return &PhaseError{
					Phase:     domain.SyncPhaseAds,
					Processed: len(result.Creatives),
					Err:       classifyFatal(err),
				}
			}
			result.FailedAssetResolutions++
			logrus.Warnf("Falha ao resolver asset do anúncio %s: %v", ad.ID, err)
		} else {
			creative.Format = resolution.Format
			creative.ImageLocation = resolution.ImageLocation
			creative.ImageSourceURL = resolution.ImageSourceURL
			creative.VideoLocation = resolution.VideoLocation
			creative.CarouselImageLocations = resolution.CarouselLocations
			creative.DegradedQuality = resolution.DegradedQuality
			creative.ThumbnailState = resolution.ThumbnailState
		}

		result.Creatives = append(result.Creatives, creative)
	}

	if err := s.persister.UpsertCreatives(ctx, result.Creatives); err != nil {
		return &PhaseError{
			Phase:     domain.SyncPhaseAds,
			Processed: len(result.Creatives),
			Err:       fmt.Errorf("erro ao persistir criativos: %w", err),
		}
	}

	return nil
}

func (s *Service) fetchInsights(ctx context.Context, ids []string) ([]*metadomain.AdInsight, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	insights, err := s.client.GetInsightsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar insights em lote: %w", err)
	}

	return insights, nil
}

func (s *Service) reportProgress(opts Options, phase domain.SyncPhase, total int) {
	if opts.OnProgress != nil {
		opts.OnProgress(phase, total)
	}
}

// insightAt devolve o insight posicional i ou nil; o executor de lotes
// garante saída do mesmo tamanho da entrada, com nil nos subitens que
// falharam.
func insightAt(insights []*metadomain.AdInsight, i int) *metadomain.AdInsight {
	if i < 0 || i >= len(insights) {
		return nil
	}

	return insights[i]
}

func adSetIDs(adSets []metadomain.AdSet) []string {
	ids := make([]string, len(adSets))
	for i, adSet := range adSets {
		ids[i] = adSet.ID
	}

	return ids
}

func adIDs(ads []metadomain.Ad) []string {
	ids := make([]string, len(ads))
	for i, ad := range ads {
		ids[i] = ad.ID
	}

	return ids
}
