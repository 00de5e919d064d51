package metaclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

const insightFields = "impressions,clicks,spend,ctr,cpc,actions"

// GetInsightsByIDs busca os insights de vários objetos (conjuntos de
// anúncios ou anúncios) em uma única passada do executor de batch. O
// resultado é posicional e pode conter nil para objetos sem dados ou cujo
// sub-item falhou.
func (c *MetaClient) GetInsightsByIDs(ctx context.Context, ids []string) ([]*metadomain.AdInsight, error) {
	insights := make([]*metadomain.AdInsight, len(ids))
	if len(ids) == 0 {
		return insights, nil
	}

	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	requests := make([]metadomain.BatchRequest, len(ids))
	for i, id := range ids {
		requests[i] = metadomain.BatchRequest{
			Method:      "GET",
			RelativeURL: fmt.Sprintf("%s/insights?fields=%s&date_preset=maximum", id, insightFields),
		}
	}

	results, err := c.batch.Execute(ctx, requests)
	if err != nil {
		return nil, err
	}

	for i, raw := range results {
		if raw == nil {
			continue
		}

		var envelope metadomain.InsightEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			logrus.WithError(err).WithField("object_id", ids[i]).Warn("Erro ao decodificar insights, item ignorado")
			continue
		}

		if len(envelope.Data) > 0 {
			insights[i] = &envelope.Data[0]
		}
	}

	return insights, nil
}
