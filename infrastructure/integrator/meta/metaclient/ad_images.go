package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

type responseAdImages struct {
	Data []metadomain.AdImage `json:"data"`
}

// GetImageURLByHash resolve um hash de imagem do story spec para a URL em
// resolução completa via o endpoint adimages da conta.
func (c *MetaClient) GetImageURLByHash(ctx context.Context, accountID, hash string) (string, error) {
	if err := c.EnsureValidToken(); err != nil {
		return "", fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	hashes, err := json.Marshal([]string{hash})
	if err != nil {
		return "", fmt.Errorf("erro ao serializar hash de imagem: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "hash,url")
	params.Add("hashes", string(hashes))
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/act_%s/adimages?%s", c.Cfg.Meta.URL, accountID, params.Encode())

	body, err := c.fetcher.Fetch(ctx, requestURL)
	if err != nil {
		return "", err
	}

	var response responseAdImages
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar lookup de imagem por hash")
		return "", err
	}

	for _, image := range response.Data {
		if image.Hash == hash && image.URL != "" {
			return image.URL, nil
		}
	}

	return "", nil
}
