package visionclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/compliance-manager-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AnalyzeRequest é o payload enviado ao serviço de análise de imagem.
type AnalyzeRequest struct {
	ImageURL       string `json:"image_url"`
	DegradedSource bool   `json:"degraded_source"`
}

// AnalyzeResponse é a resposta do serviço de análise.
type AnalyzeResponse struct {
	Score   float64  `json:"score"`
	Verdict string   `json:"verdict"`
	Labels  []string `json:"labels"`
}

type Client interface {
	Analyze(ctx context.Context, request AnalyzeRequest) (*AnalyzeResponse, error)
}

type VisionClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &VisionClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}

func (c *VisionClient) Analyze(ctx context.Context, request AnalyzeRequest) (*AnalyzeResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar requisição de análise: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/analyze", c.config.Vision.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição de análise: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.Vision.AccessToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar serviço de análise: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do serviço de análise: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serviço de análise retornou status %d: %s", resp.StatusCode, string(body))
	}

	response := &AnalyzeResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do serviço de análise: %w", err)
	}

	return response, nil
}
