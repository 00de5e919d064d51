package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

// scriptedPoster responde cada chamada física do batch ecoando um corpo
// por sub-item, e registra os formulários enviados.
type scriptedPoster struct {
	forms []url.Values
	// respond é chamada por chunk com as sub-requisições decodificadas
	respond func(chunk []metadomain.BatchRequest) []byte
	err     error
}

func (s *scriptedPoster) PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	s.forms = append(s.forms, form)

	if s.err != nil {
		return nil, s.err
	}

	var chunk []metadomain.BatchRequest
	if err := json.Unmarshal([]byte(form.Get("batch")), &chunk); err != nil {
		return nil, err
	}

	return s.respond(chunk), nil
}

// echoResponses devolve um corpo 200 por sub-item contendo a própria URL
// relativa, para verificar o mapeamento posicional.
func echoResponses(chunk []metadomain.BatchRequest) []byte {
	responses := make([]map[string]any, len(chunk))
	for i, req := range chunk {
		responses[i] = map[string]any{
			"code": 200,
			"body": fmt.Sprintf(`{"url":%q}`, req.RelativeURL),
		}
	}

	body, _ := json.Marshal(responses)
	return body
}

func batchRequests(n int) []metadomain.BatchRequest {
	requests := make([]metadomain.BatchRequest, n)
	for i := range requests {
		requests[i] = metadomain.BatchRequest{
			Method:      "GET",
			RelativeURL: fmt.Sprintf("item-%d/insights", i),
		}
	}
	return requests
}

func newTestBatchExecutor(poster formPoster) (*BatchExecutor, *int) {
	sleeps := new(int)
	executor := NewBatchExecutor(
		poster,
		"https://graph.example.com/v22.0",
		func() string { return "test-token" },
		50,
		2*time.Second,
		[]int{4, 17},
	).WithSleep(func(ctx context.Context, d time.Duration) error {
		*sleeps++
		return nil
	})

	return executor, sleeps
}

func TestBatchExecutor_Execute(t *testing.T) {
	t.Run("Divide as sub-requisições em chunks do tamanho máximo", func(t *testing.T) {
		poster := &scriptedPoster{respond: echoResponses}
		executor, sleeps := newTestBatchExecutor(poster)

		results, err := executor.Execute(context.Background(), batchRequests(120))

		require.NoError(t, err)
		require.Len(t, results, 120)

		// 120 sub-requisições com chunks de 50 viram 3 chamadas físicas,
		// dormindo entre chunks mas não depois do último
		assert.Len(t, poster.forms, 3)
		assert.Equal(t, 2, *sleeps)

		// Cada formulário leva o token e o flag de headers
		for _, form := range poster.forms {
			assert.Equal(t, "test-token", form.Get("access_token"))
			assert.Equal(t, "false", form.Get("include_headers"))
		}
	})

	t.Run("Resultado é posicional e preserva o tamanho da entrada", func(t *testing.T) {
		poster := &scriptedPoster{respond: echoResponses}
		executor, _ := newTestBatchExecutor(poster)

		requests := batchRequests(75)
		results, err := executor.Execute(context.Background(), requests)

		require.NoError(t, err)
		require.Len(t, results, 75)

		for i, raw := range results {
			var decoded struct {
				URL string `json:"url"`
			}
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Equal(t, requests[i].RelativeURL, decoded.URL)
		}
	})

	t.Run("Sub-item com falha vira nil sem derrubar o chunk", func(t *testing.T) {
		poster := &scriptedPoster{respond: func(chunk []metadomain.BatchRequest) []byte {
			responses := make([]map[string]any, len(chunk))
			for i, req := range chunk {
				if i == 1 {
					responses[i] = map[string]any{
						"code": 400,
						"body": `{"error":{"message":"limit","code":17}}`,
					}
					continue
				}
				responses[i] = map[string]any{
					"code": 200,
					"body": fmt.Sprintf(`{"url":%q}`, req.RelativeURL),
				}
			}
			body, _ := json.Marshal(responses)
			return body
		}}
		executor, _ := newTestBatchExecutor(poster)

		results, err := executor.Execute(context.Background(), batchRequests(3))

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.NotNil(t, results[0])
		assert.Nil(t, results[1])
		assert.NotNil(t, results[2])
	})

	t.Run("Sub-item nulo da API vira nil no resultado", func(t *testing.T) {
		poster := &scriptedPoster{respond: func(chunk []metadomain.BatchRequest) []byte {
			return []byte(`[{"code":200,"body":"{\"id\":\"x\"}"},null]`)
		}}
		executor, _ := newTestBatchExecutor(poster)

		results, err := executor.Execute(context.Background(), batchRequests(2))

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.NotNil(t, results[0])
		assert.Nil(t, results[1])
	})

	t.Run("Entrada vazia não faz chamada física", func(t *testing.T) {
		poster := &scriptedPoster{respond: echoResponses}
		executor, _ := newTestBatchExecutor(poster)

		results, err := executor.Execute(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Empty(t, poster.forms)
	})

	t.Run("Falha da chamada física propaga erro com o intervalo do chunk", func(t *testing.T) {
		poster := &scriptedPoster{err: &AuthError{Code: 190, Message: "token expirado"}}
		executor, _ := newTestBatchExecutor(poster)

		_, err := executor.Execute(context.Background(), batchRequests(10))

		require.Error(t, err)
		assert.True(t, IsAuthError(err))
		assert.Contains(t, err.Error(), "chunk 0-9")
	})
}
