package repository

import (
	"context"

	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

// SyncPersister agrega os repositórios de campanha, conjunto e criativo
// na interface de persistência consumida pelo orquestrador de
// sincronização.
type SyncPersister struct {
	Campaigns CampaignRepository
	AdSets    AdSetRepository
	Creatives CreativeRepository
}

func NewSyncPersister(campaigns CampaignRepository, adSets AdSetRepository, creatives CreativeRepository) *SyncPersister {
	return &SyncPersister{
		Campaigns: campaigns,
		AdSets:    adSets,
		Creatives: creatives,
	}
}

func (p *SyncPersister) UpsertCampaigns(ctx context.Context, campaigns []domain.Campaign) (map[string]string, error) {
	return p.Campaigns.SaveOrUpdate(ctx, campaigns)
}

func (p *SyncPersister) UpsertAdSets(ctx context.Context, adSets []domain.AdSet) (map[string]domain.AdSetRef, error) {
	return p.AdSets.SaveOrUpdate(ctx, adSets)
}

func (p *SyncPersister) UpsertCreatives(ctx context.Context, creatives []domain.Creative) error {
	return p.Creatives.SaveOrUpdate(ctx, creatives)
}
