package metaclient

import (
	"errors"
	"fmt"
)

// RateLimitError indica que o limite de requisições da plataforma foi
// atingido e persistiu após todas as tentativas de backoff.
type RateLimitError struct {
	Code     int
	Subcode  int
	Message  string
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("limite de requisições da API excedido (código %d) após %d tentativas: %s",
		e.Code, e.Attempts, e.Message)
}

// AuthError indica token inválido ou expirado. É fatal: retentar um erro
// de autenticação desperdiça quota sem chance de sucesso.
type AuthError struct {
	Code    int
	Subcode int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("erro de autenticação na API do Meta (código %d, subcódigo %d): %s",
		e.Code, e.Subcode, e.Message)
}

// PlatformError é qualquer outro erro de payload retornado pela
// plataforma. Também fatal e não retentado.
type PlatformError struct {
	HTTPStatus int
	Code       int
	Subcode    int
	Type       string
	Message    string
	FBTraceID  string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("erro na resposta da API do Meta (status %d, código %d): %s",
		e.HTTPStatus, e.Code, e.Message)
}

// TransientNetworkError é uma falha de transporte (conexão resetada,
// timeout), retentada com backoff mais curto que o de rate limit.
type TransientNetworkError struct {
	Cause error
}

func (e *TransientNetworkError) Error() string {
	return fmt.Sprintf("falha de rede ao chamar a API do Meta: %v", e.Cause)
}

func (e *TransientNetworkError) Unwrap() error {
	return e.Cause
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

func IsRateLimitError(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}
