package metaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) (*Fetcher, *httptest.Server, *[]time.Duration) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sleeps := &[]time.Duration{}
	fetcher := NewFetcher(FetcherConfig{
		MaxRetries:       3,
		RateLimitCodes:   []int{4, 17, 32, 613},
		RateLimitBackoff: 5 * time.Second,
		NetworkBackoff:   2 * time.Second,
	}).WithHTTPClient(server.Client()).WithSleep(func(ctx context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	})

	return fetcher, server, sleeps
}

func TestFetcher_Fetch(t *testing.T) {
	t.Run("Sucesso na primeira tentativa não dorme nem retenta", func(t *testing.T) {
		calls := 0
		fetcher, server, sleeps := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte(`{"data":[]}`))
		})

		body, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, `{"data":[]}`, string(body))
		assert.Equal(t, 1, calls)
		assert.Empty(t, *sleeps)
	})

	t.Run("Rate limit persistente esgota as tentativas com backoff geométrico", func(t *testing.T) {
		calls := 0
		fetcher, server, sleeps := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"User request limit reached","type":"OAuthException","code":17}}`))
		})

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.True(t, IsRateLimitError(err))

		var rateErr *RateLimitError
		require.ErrorAs(t, err, &rateErr)
		assert.Equal(t, 17, rateErr.Code)
		assert.Equal(t, 4, rateErr.Attempts)

		// 1 tentativa inicial + 3 retries, dormindo 5s, 10s e 20s entre elas
		assert.Equal(t, 4, calls)
		assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second, 20 * time.Second}, *sleeps)
	})

	t.Run("Rate limit resolvido no meio das tentativas devolve o corpo", func(t *testing.T) {
		calls := 0
		fetcher, server, sleeps := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls <= 2 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"message":"limit","type":"OAuthException","code":4}}`))
				return
			}
			w.Write([]byte(`{"data":[{"id":"1"}]}`))
		})

		body, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, `{"data":[{"id":"1"}]}`, string(body))
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second}, *sleeps)
	})

	t.Run("Falha de rede usa o backoff curto", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		// Derrubar o servidor força erro de transporte em todas as tentativas
		server.Close()

		sleeps := []time.Duration{}
		fetcher := NewFetcher(FetcherConfig{
			MaxRetries:     2,
			NetworkBackoff: 2 * time.Second,
		}).WithSleep(func(ctx context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		})

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)

		var transient *TransientNetworkError
		assert.ErrorAs(t, err, &transient)
		assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, sleeps)
	})

	t.Run("Erro de autenticação não é retentado", func(t *testing.T) {
		calls := 0
		fetcher, server, sleeps := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Error validating access token","type":"OAuthException","code":190,"error_subcode":463}}`))
		})

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.True(t, IsAuthError(err))
		assert.Equal(t, 1, calls)
		assert.Empty(t, *sleeps)
	})

	t.Run("Erro genérico da plataforma não é retentado", func(t *testing.T) {
		calls := 0
		fetcher, server, sleeps := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Unsupported get request","type":"GraphMethodException","code":100,"fbtrace_id":"AbC"}}`))
		})

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)

		var platformErr *PlatformError
		require.ErrorAs(t, err, &platformErr)
		assert.Equal(t, 100, platformErr.Code)
		assert.Equal(t, "AbC", platformErr.FBTraceID)
		assert.Equal(t, 1, calls)
		assert.Empty(t, *sleeps)
	})

	t.Run("Corpo de erro não estruturado vira erro de plataforma com o corpo cru", func(t *testing.T) {
		fetcher, server, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`<html>Internal Server Error</html>`))
		})

		_, err := fetcher.Fetch(context.Background(), server.URL)

		var platformErr *PlatformError
		require.ErrorAs(t, err, &platformErr)
		assert.Equal(t, http.StatusInternalServerError, platformErr.HTTPStatus)
		assert.Contains(t, platformErr.Message, "Internal Server Error")
	})

	t.Run("Cancelamento do contexto interrompe a espera do backoff", func(t *testing.T) {
		fetcher, server, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"limit","type":"OAuthException","code":4}}`))
		})

		fetcher.WithSleep(func(ctx context.Context, d time.Duration) error {
			return context.Canceled
		})

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetcher_PostForm(t *testing.T) {
	t.Run("Envia formulário codificado e devolve o corpo", func(t *testing.T) {
		var gotContentType, gotBatch string
		fetcher, server, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			r.ParseForm()
			gotBatch = r.FormValue("batch")
			w.Write([]byte(`[]`))
		})

		form := url.Values{}
		form.Set("batch", `[{"method":"GET"}]`)

		body, err := fetcher.PostForm(context.Background(), server.URL, form)

		require.NoError(t, err)
		assert.Equal(t, `[]`, string(body))
		assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
		assert.Equal(t, `[{"method":"GET"}]`, gotBatch)
	})
}

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, 5*time.Second, backoffDelay(5*time.Second, 0))
	assert.Equal(t, 10*time.Second, backoffDelay(5*time.Second, 1))
	assert.Equal(t, 40*time.Second, backoffDelay(5*time.Second, 3))
}
