package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

// GetCreativeByID consulta o endpoint do próprio criativo. Cobre anúncios
// criados a partir de um "story" vinculado, cujo payload embutido no
// anúncio não traz a URL da imagem.
func (c *MetaClient) GetCreativeByID(ctx context.Context, creativeID string) (*metadomain.CreativeRef, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "id,image_url,thumbnail_url,object_story_spec,effective_object_story_id")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/%s?%s", c.Cfg.Meta.URL, creativeID, params.Encode())

	body, err := c.fetcher.Fetch(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var creative metadomain.CreativeRef
	if err := json.Unmarshal(body, &creative); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar detalhe do criativo")
		return nil, err
	}

	return &creative, nil
}
