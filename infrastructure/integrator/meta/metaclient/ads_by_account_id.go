package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

// O criativo vem expandido junto do anúncio para alimentar o resolvedor
// de assets sem uma chamada extra por anúncio.
const adFields = "id,name,status,effective_status,adset_id," +
	"creative{id,name,body,title,image_url,image_hash,thumbnail_url,video_id," +
	"effective_object_story_id,object_story_spec,asset_feed_spec}"

// ListAds busca todos os anúncios da conta em uma única passada paginada,
// simétrica à de conjuntos de anúncios.
func (c *MetaClient) ListAds(ctx context.Context, accountID string, onProgress ProgressFunc) ([]metadomain.Ad, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", adFields)
	params.Add("limit", strconv.Itoa(c.Cfg.Meta.PageLimit))
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	firstURL := fmt.Sprintf("%s/act_%s/ads?%s", c.Cfg.Meta.URL, accountID, params.Encode())

	items, err := c.paginator.FetchAllPages(ctx, firstURL, onProgress)
	if err != nil {
		return nil, err
	}

	ads := make([]metadomain.Ad, 0, len(items))
	for _, item := range items {
		var ad metadomain.Ad
		if err := json.Unmarshal(item, &ad); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar anúncio")
			return nil, err
		}
		ads = append(ads, ad)
	}

	return ads, nil
}
