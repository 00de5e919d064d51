package complying

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/vision"
	"github.com/vfg2006/compliance-manager-api/infrastructure/repository"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

// Analyzer submete criativos sincronizados ao serviço de análise de
// conformidade de marca. Apenas repasse: a pontuação e o veredito vêm
// inteiros do serviço externo.
type Analyzer interface {
	AnalyzeCreative(ctx context.Context, creativeID string) (*domain.ComplianceResult, error)
	AnalyzeIntegration(ctx context.Context, integrationID string) ([]*domain.ComplianceResult, error)
}

type Service struct {
	visionService      vision.VisionIntegrator
	creativeRepository repository.CreativeRepository
}

func NewService(visionService vision.VisionIntegrator, creativeRepository repository.CreativeRepository) Analyzer {
	return &Service{
		visionService:      visionService,
		creativeRepository: creativeRepository,
	}
}

func (s *Service) AnalyzeCreative(ctx context.Context, creativeID string) (*domain.ComplianceResult, error) {
	creative, err := s.creativeRepository.GetByID(ctx, creativeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar criativo %s: %w", creativeID, err)
	}

	if creative == nil {
		return nil, fmt.Errorf("criativo %s não encontrado", creativeID)
	}

	return s.visionService.AnalyzeCreative(ctx, creative)
}

// AnalyzeIntegration analisa todos os criativos com imagem resolvida de
// uma integração. Falhas individuais são registradas e não interrompem
// o restante do lote.
func (s *Service) AnalyzeIntegration(ctx context.Context, integrationID string) ([]*domain.ComplianceResult, error) {
	creatives, err := s.creativeRepository.ListByIntegration(ctx, integrationID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar criativos da integração %s: %w", integrationID, err)
	}

	results := make([]*domain.ComplianceResult, 0, len(creatives))

	for _, creative := range creatives {
		if creative.ImageLocation == "" {
			continue
		}

		result, err := s.visionService.AnalyzeCreative(ctx, creative)
		if err != nil {
			logrus.Warnf("Falha ao analisar criativo %s: %v", creative.ID, err)
			continue
		}

		results = append(results, result)
	}

	return results, nil
}
