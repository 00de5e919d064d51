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

const adSetFields = "id,name,status,effective_status,campaign_id,daily_budget,lifetime_budget"

// ListAdSets busca todos os conjuntos de anúncios da conta em uma única
// passada paginada. A busca é por conta inteira, não por campanha: um
// crawl por campanha perderia conjuntos de campanhas pausadas/arquivadas
// e multiplicaria as chamadas à API.
func (c *MetaClient) ListAdSets(ctx context.Context, accountID string, onProgress ProgressFunc) ([]metadomain.AdSet, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", adSetFields)
	params.Add("limit", strconv.Itoa(c.Cfg.Meta.PageLimit))
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	firstURL := fmt.Sprintf("%s/act_%s/adsets?%s", c.Cfg.Meta.URL, accountID, params.Encode())

	items, err := c.paginator.FetchAllPages(ctx, firstURL, onProgress)
	if err != nil {
		return nil, err
	}

	adSets := make([]metadomain.AdSet, 0, len(items))
	for _, item := range items {
		var adSet metadomain.AdSet
		if err := json.Unmarshal(item, &adSet); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar conjunto de anúncios")
			return nil, err
		}
		adSets = append(adSets, adSet)
	}

	return adSets, nil
}
