package metaclient

import (
	"context"
	"time"

	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/compliance-manager-api/internal/config"
)

type Client interface {
	ListCampaigns(ctx context.Context, accountID string, since *time.Time, onProgress ProgressFunc) ([]metadomain.Campaign, error)
	ListAdSets(ctx context.Context, accountID string, onProgress ProgressFunc) ([]metadomain.AdSet, error)
	ListAds(ctx context.Context, accountID string, onProgress ProgressFunc) ([]metadomain.Ad, error)
	GetInsightsByIDs(ctx context.Context, ids []string) ([]*metadomain.AdInsight, error)
	GetImageURLByHash(ctx context.Context, accountID, hash string) (string, error)
	GetCreativeByID(ctx context.Context, creativeID string) (*metadomain.CreativeRef, error)
	GetVideoByID(ctx context.Context, videoID string) (*metadomain.Video, error)
	RefreshToken() error
	EnsureValidToken() error
}

// MetaClient é o cliente da Graph API construído explicitamente e
// injetado por quem chama; não há estado global escondido.
type MetaClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	fetcher      *Fetcher
	paginator    *Paginator
	batch        *BatchExecutor
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	fetcher := NewFetcher(FetcherConfig{
		MaxRetries:       cfg.Meta.MaxRetries,
		RateLimitCodes:   cfg.Meta.RateLimitCodes,
		RateLimitBackoff: time.Duration(cfg.Meta.RateLimitBackoffSeconds) * time.Second,
		NetworkBackoff:   time.Duration(cfg.Meta.NetworkBackoffSeconds) * time.Second,
	})

	client := &MetaClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		fetcher:      fetcher,
		paginator:    NewPaginator(fetcher, time.Duration(cfg.Meta.PageDelayMillis)*time.Millisecond),
		batch: NewBatchExecutor(
			fetcher,
			cfg.Meta.URL,
			func() string { return cfg.Meta.AccessToken },
			cfg.Meta.MaxBatchSize,
			time.Duration(cfg.Meta.BatchDelayMillis)*time.Millisecond,
			cfg.Meta.RateLimitCodes,
		),
	}

	return client
}

// RefreshToken obtém um novo token de longa duração
func (c *MetaClient) RefreshToken() error {
	return c.TokenManager.RefreshToken()
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *MetaClient) EnsureValidToken() error {
	return c.TokenManager.EnsureValidToken()
}
