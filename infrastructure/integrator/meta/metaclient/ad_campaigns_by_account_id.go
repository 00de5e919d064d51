package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

// Campos mínimos por entidade. Pedir campos demais causa rejeição
// "please reduce the amount of data" em contas grandes.
const campaignFields = "id,name,status,effective_status,daily_budget,lifetime_budget,updated_time"

// ListCampaigns busca todas as campanhas da conta em uma única passada
// paginada. Quando since é informado, aplica um filtro server-side por
// updated_time (modo incremental).
func (c *MetaClient) ListCampaigns(ctx context.Context, accountID string, since *time.Time, onProgress ProgressFunc) ([]metadomain.Campaign, error) {
	// Garantir que o token seja válido antes de fazer a requisição
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", campaignFields)
	params.Add("limit", strconv.Itoa(c.Cfg.Meta.PageLimit))
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	if since != nil {
		filter, err := json.Marshal([]map[string]any{{
			"field":    "updated_time",
			"operator": "GREATER_THAN",
			"value":    since.Unix(),
		}})
		if err != nil {
			return nil, fmt.Errorf("erro ao montar filtro incremental: %w", err)
		}
		params.Add("filtering", string(filter))
	}

	firstURL := fmt.Sprintf("%s/act_%s/campaigns?%s", c.Cfg.Meta.URL, accountID, params.Encode())

	items, err := c.paginator.FetchAllPages(ctx, firstURL, onProgress)
	if err != nil {
		return nil, err
	}

	campaigns := make([]metadomain.Campaign, 0, len(items))
	for _, item := range items {
		var campaign metadomain.Campaign
		if err := json.Unmarshal(item, &campaign); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar campanha")
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}

	return campaigns, nil
}
