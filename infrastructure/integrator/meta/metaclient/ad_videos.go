package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

// GetVideoByID busca o conjunto de thumbnails e a URL da mídia de origem
// de um vídeo.
func (c *MetaClient) GetVideoByID(ctx context.Context, videoID string) (*metadomain.Video, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "id,source,thumbnails")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/%s?%s", c.Cfg.Meta.URL, videoID, params.Encode())

	body, err := c.fetcher.Fetch(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var video metadomain.Video
	if err := json.Unmarshal(body, &video); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar detalhe do vídeo")
		return nil, err
	}

	return &video, nil
}
