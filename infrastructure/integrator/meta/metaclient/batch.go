package metaclient

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

type formPoster interface {
	PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error)
}

// BatchExecutor empacota até maxBatchSize sub-requisições independentes
// em uma única chamada física ao endpoint de batch da Graph API,
// reduzindo round trips. O resultado é posicional: saída i corresponde à
// requisição i, com nil para sub-itens que falharam.
type BatchExecutor struct {
	poster         formPoster
	graphURL       string
	accessToken    func() string
	maxBatchSize   int
	chunkDelay     time.Duration
	rateLimitCodes []int
	sleep          SleepFunc
}

func NewBatchExecutor(poster formPoster, graphURL string, accessToken func() string, maxBatchSize int, chunkDelay time.Duration, rateLimitCodes []int) *BatchExecutor {
	if maxBatchSize <= 0 {
		maxBatchSize = 50
	}

	return &BatchExecutor{
		poster:         poster,
		graphURL:       graphURL,
		accessToken:    accessToken,
		maxBatchSize:   maxBatchSize,
		chunkDelay:     chunkDelay,
		rateLimitCodes: rateLimitCodes,
		sleep:          sleepWithContext,
	}
}

// WithSleep substitui a função de espera. Usada em testes.
func (b *BatchExecutor) WithSleep(sleep SleepFunc) *BatchExecutor {
	b.sleep = sleep
	return b
}

// Execute envia as sub-requisições em chunks de até maxBatchSize. A fatia
// retornada tem sempre o mesmo tamanho e ordem da entrada. Sub-itens com
// status interno diferente de 200 viram nil no resultado; perder um item
// isolado é um desfecho aceitável na busca de insights em massa. Só a
// falha da chamada física do chunk, depois dos retries do Fetcher, vira
// erro.
func (b *BatchExecutor) Execute(ctx context.Context, requests []metadomain.BatchRequest) ([]json.RawMessage, error) {
	results := make([]json.RawMessage, len(requests))
	if len(requests) == 0 {
		return results, nil
	}

	for start := 0; start < len(requests); start += b.maxBatchSize {
		end := min(start+b.maxBatchSize, len(requests))
		chunk := requests[start:end]

		batchJSON, err := json.Marshal(chunk)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao serializar batch")
		}

		form := url.Values{}
		form.Set("access_token", b.accessToken())
		form.Set("batch", string(batchJSON))
		form.Set("include_headers", "false")

		body, err := b.poster.PostForm(ctx, b.graphURL, form)
		if err != nil {
			return nil, errors.Wrapf(err, "falha na chamada do chunk %d-%d do batch", start, end-1)
		}

		var responses []*metadomain.BatchResponse
		if err := json.Unmarshal(body, &responses); err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar resposta do batch")
		}

		for i, resp := range responses {
			if i >= len(chunk) || resp == nil {
				continue
			}

			if resp.Code != 200 {
				b.logSubItemFailure(start+i, resp)
				continue
			}

			results[start+i] = json.RawMessage(resp.Body)
		}

		if end < len(requests) {
			if err := b.sleep(ctx, b.chunkDelay); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}

// logSubItemFailure registra a falha de um sub-item. Rate limit em um
// único sub-item é esperado em contas grandes e logado com menos alarde.
func (b *BatchExecutor) logSubItemFailure(index int, resp *metadomain.BatchResponse) {
	var errResp metadomain.ErrorResponse
	rateLimited := false
	if err := json.Unmarshal([]byte(resp.Body), &errResp); err == nil {
		rateLimited = errResp.IsRateLimited(b.rateLimitCodes)
	}

	fields := logrus.Fields{
		"index": index,
		"code":  resp.Code,
	}

	if rateLimited {
		logrus.WithFields(fields).Debug("Sub-item do batch limitado por rate limit, resultado será nulo")
		return
	}

	logrus.WithFields(fields).WithField("body", resp.Body).Warn("Sub-item do batch falhou, resultado será nulo")
}
