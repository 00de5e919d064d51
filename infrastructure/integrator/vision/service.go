package vision

import (
	"context"
	"fmt"

	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/vision/visionclient"
	"github.com/vfg2006/compliance-manager-api/internal/config"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

// VisionIntegrator repassa criativos ao serviço externo de análise de
// conformidade de marca. O resultado não é interpretado aqui: apenas
// marcamos quando a imagem analisada veio de uma fonte degradada.
type VisionIntegrator interface {
	AnalyzeCreative(ctx context.Context, creative *domain.Creative) (*domain.ComplianceResult, error)
}

type VisionService struct {
	cfg    *config.Config
	Client visionclient.Client
}

func New(cfg *config.Config, client visionclient.Client) VisionIntegrator {
	return &VisionService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *VisionService) AnalyzeCreative(ctx context.Context, creative *domain.Creative) (*domain.ComplianceResult, error) {
	if creative.ImageLocation == "" {
		return nil, fmt.Errorf("criativo %s não possui imagem resolvida para análise", creative.ID)
	}

	response, err := s.Client.Analyze(ctx, visionclient.AnalyzeRequest{
		ImageURL:       creative.ImageLocation,
		DegradedSource: creative.DegradedQuality,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ComplianceResult{
		CreativeID:     creative.ID,
		Score:          response.Score,
		Verdict:        response.Verdict,
		Labels:         response.Labels,
		DegradedSource: creative.DegradedQuality,
	}, nil
}
