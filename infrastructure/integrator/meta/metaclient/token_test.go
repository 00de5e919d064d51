package metaclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/compliance-manager-api/internal/config"
)

func TestGetLongLivedToken(t *testing.T) {
	t.Run("Troca um token de curta duração com os parâmetros corretos", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v22.0/oauth/access_token", r.URL.Path)

			query := r.URL.Query()
			assert.Equal(t, "fb_exchange_token", query.Get("grant_type"))
			assert.Equal(t, "app-1", query.Get("client_id"))
			assert.Equal(t, "secret-1", query.Get("client_secret"))
			assert.Equal(t, "short-token", query.Get("fb_exchange_token"))

			w.Write([]byte(`{"access_token":"long-token","token_type":"bearer","expires_in":5184000}`))
		}))
		defer server.Close()

		token, err := GetLongLivedToken("short-token", "app-1", "secret-1", server.URL, "v22.0")

		require.NoError(t, err)
		assert.Equal(t, "long-token", token.AccessToken)
		assert.Equal(t, int64(5184000), token.ExpiresIn)
	})

	t.Run("Resposta sem access_token devolve erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token_type":"bearer"}`))
		}))
		defer server.Close()

		_, err := GetLongLivedToken("short-token", "app-1", "secret-1", server.URL, "v22.0")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "access_token")
	})

	t.Run("Erro da plataforma é propagado com o corpo", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","code":190}}`))
		}))
		defer server.Close()

		_, err := GetLongLivedToken("short-token", "app-1", "secret-1", server.URL, "v22.0")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 400")
	})
}

func TestCheckTokenValidity(t *testing.T) {
	t.Run("Resposta 200 indica token válido", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/me", r.URL.Path)
			w.Write([]byte(`{"id":"42"}`))
		}))
		defer server.Close()

		valid, err := CheckTokenValidity("token", server.URL)

		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("Código 190 indica token inválido sem erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Error validating access token","code":190}}`))
		}))
		defer server.Close()

		valid, err := CheckTokenValidity("token", server.URL)

		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("Qualquer outro erro é propagado", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`oops`))
		}))
		defer server.Close()

		_, err := CheckTokenValidity("token", server.URL)

		require.Error(t, err)
	})
}

func TestTokenManager_InitToken(t *testing.T) {
	t.Run("Token existente sem data de expiração é validado e recebe a expiração da API", func(t *testing.T) {
		expiresAt := time.Now().Add(30 * 24 * time.Hour).Unix()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/me":
				w.Write([]byte(`{"id":"42"}`))
			case "/v22.0/debug_token":
				fmt.Fprintf(w, `{"data":{"expires_at":%d,"is_valid":true}}`, expiresAt)
			default:
				t.Errorf("chamada inesperada para %s", r.URL.Path)
			}
		}))
		defer server.Close()

		cfg := &config.Config{
			Meta: config.Meta{
				BaseURL:        server.URL,
				URL:            server.URL,
				Version:        "v22.0",
				AppID:          "app-1",
				AppSecret:      "secret-1",
				LongLivedToken: "long-token",
			},
		}

		tm := NewTokenManager(cfg, nil)
		tm.InitToken()

		assert.Equal(t, "long-token", cfg.Meta.AccessToken)
		expected := time.Unix(expiresAt, 0).Add(-24 * time.Hour)
		assert.Equal(t, expected, cfg.Meta.TokenExpiresAt)
	})

	t.Run("Token com expiração distante não dispara nenhuma chamada", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("chamada inesperada para %s", r.URL.Path)
		}))
		defer server.Close()

		cfg := &config.Config{
			Meta: config.Meta{
				BaseURL:        server.URL,
				URL:            server.URL,
				Version:        "v22.0",
				LongLivedToken: "long-token",
				AccessToken:    "long-token",
				TokenExpiresAt: time.Now().Add(30 * 24 * time.Hour),
			},
		}

		tm := NewTokenManager(cfg, nil)
		tm.InitToken()

		assert.Equal(t, "long-token", cfg.Meta.AccessToken)
	})
}

func TestCalculateTokenExpiration(t *testing.T) {
	t.Run("Expiração informada com margem de um dia", func(t *testing.T) {
		expiration := CalculateTokenExpiration(48 * 60 * 60)

		expected := time.Now().Add(24 * time.Hour)
		assert.WithinDuration(t, expected, expiration, time.Minute)
	})

	t.Run("Sem expiração informada assume sessenta dias", func(t *testing.T) {
		expiration := CalculateTokenExpiration(0)

		expected := time.Now().Add(59 * 24 * time.Hour)
		assert.WithinDuration(t, expected, expiration, time.Minute)
	})
}
