package syncing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

var (
	// ErrAuthFailed indica token inválido ou expirado: aborta a passada
	// na fase em que ocorreu
	ErrAuthFailed = errors.New("falha de autenticação na plataforma de anúncios")

	// ErrRateLimitExceeded indica limite de requisições persistente
	// mesmo após todas as tentativas de backoff do fetcher
	ErrRateLimitExceeded = errors.New("limite de requisições da plataforma excedido")
)

// classifyFatal anexa o sentinel correspondente a erros de autenticação
// e de rate limit, preservando a causa original na cadeia.
func classifyFatal(err error) error {
	switch {
	case metaclient.IsAuthError(err):
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	case metaclient.IsRateLimitError(err):
		return fmt.Errorf("%w: %v", ErrRateLimitExceeded, err)
	default:
		return err
	}
}

// PhaseError marca um erro fatal com a fase em que ocorreu e quantos
// itens já haviam sido processados; os resultados das fases anteriores
// são preservados no Result parcial devolvido junto.
type PhaseError struct {
	Phase     domain.SyncPhase
	Processed int
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("sincronização falhou na fase %s após %d itens: %v", e.Phase, e.Processed, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// AsPhaseError extrai um PhaseError da cadeia de erros, se houver.
func AsPhaseError(err error) (*PhaseError, bool) {
	var phaseErr *PhaseError
	if errors.As(err, &phaseErr) {
		return phaseErr, true
	}

	return nil, false
}
