package metaclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

// SleepFunc abstrai as esperas do fetcher para que os testes possam
// registrar os delays sem dormir de verdade.
type SleepFunc func(ctx context.Context, d time.Duration) error

type FetcherConfig struct {
	MaxRetries       int
	RateLimitCodes   []int
	RateLimitBackoff time.Duration
	NetworkBackoff   time.Duration
}

// Fetcher executa uma única chamada HTTP contra a API de anúncios e
// retenta com backoff exponencial erros de rate limit e falhas de
// transporte. Qualquer outro erro da plataforma é propagado imediatamente.
type Fetcher struct {
	httpClient *http.Client
	cfg        FetcherConfig
	sleep      SleepFunc
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RateLimitBackoff <= 0 {
		cfg.RateLimitBackoff = 5 * time.Second
	}
	if cfg.NetworkBackoff <= 0 {
		cfg.NetworkBackoff = 2 * time.Second
	}

	return &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
		sleep:      sleepWithContext,
	}
}

// WithHTTPClient substitui o cliente HTTP. Usado em testes.
func (f *Fetcher) WithHTTPClient(client *http.Client) *Fetcher {
	f.httpClient = client
	return f
}

// WithSleep substitui a função de espera. Usada em testes.
func (f *Fetcher) WithSleep(sleep SleepFunc) *Fetcher {
	f.sleep = sleep
	return f
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Fetch faz um GET com retry e backoff.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f.do(ctx, http.MethodGet, rawURL, nil)
}

// PostForm faz um POST de formulário com a mesma política de retry do
// Fetch. É o transporte físico do executor de batch.
func (f *Fetcher) PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	return f.do(ctx, http.MethodPost, rawURL, form)
}

func (f *Fetcher) do(ctx context.Context, method, rawURL string, form url.Values) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= f.cfg.MaxRetries; attempt++ {
		body, err := f.once(ctx, method, rawURL, form)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var backoff time.Duration
		var transient *TransientNetworkError
		var rateLimited *RateLimitError

		switch {
		case errors.As(err, &transient):
			backoff = backoffDelay(f.cfg.NetworkBackoff, attempt)
		case errors.As(err, &rateLimited):
			rateLimited.Attempts = attempt + 1
			backoff = backoffDelay(f.cfg.RateLimitBackoff, attempt)
		default:
			// Erro não transitório (token inválido, permissão, campo
			// inexistente): retentar só desperdiçaria quota.
			return nil, err
		}

		if attempt == f.cfg.MaxRetries {
			break
		}

		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"backoff": backoff.String(),
		}).Warn("API do Meta instável, aguardando antes de retentar")

		if serr := f.sleep(ctx, backoff); serr != nil {
			return nil, serr
		}
	}

	return nil, lastErr
}

// backoffDelay calcula base * 2^attempt.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base << uint(attempt)
}

func (f *Fetcher) once(ctx context.Context, method, rawURL string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransientNetworkError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientNetworkError{Cause: err}
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	return nil, classifyErrorResponse(resp.StatusCode, body, f.cfg.RateLimitCodes)
}

// classifyErrorResponse traduz um payload de erro da plataforma para a
// taxonomia do cliente.
func classifyErrorResponse(httpStatus int, body []byte, rateLimitCodes []int) error {
	var errResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Code == 0 {
		return &PlatformError{
			HTTPStatus: httpStatus,
			Message:    string(body),
		}
	}

	details := errResp.Error

	if errResp.IsTokenExpired() {
		return &AuthError{
			Code:    details.Code,
			Subcode: details.ErrorSubcode,
			Message: details.Message,
		}
	}

	if errResp.IsRateLimited(rateLimitCodes) {
		return &RateLimitError{
			Code:    details.Code,
			Subcode: details.ErrorSubcode,
			Message: details.Message,
		}
	}

	return &PlatformError{
		HTTPStatus: httpStatus,
		Code:       details.Code,
		Subcode:    details.ErrorSubcode,
		Type:       details.Type,
		Message:    details.Message,
		FBTraceID:  details.FBTraceID,
	}
}
