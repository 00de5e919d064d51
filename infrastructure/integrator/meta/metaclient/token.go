package metaclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TokenResponse representa a resposta da troca de tokens da API do Meta
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// GetLongLivedToken troca um token de curta duração por um de longa duração
func GetLongLivedToken(shortLivedToken, appID, appSecret, baseURL, version string) (*TokenResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/oauth/access_token", baseURL, version)

	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", appID)
	params.Set("client_secret", appSecret)
	params.Set("fb_exchange_token", shortLivedToken)

	resp, err := http.Get(fmt.Sprintf("%s?%s", endpoint, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar endpoint de troca de tokens: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da troca de tokens: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erro na troca de tokens (status %d): %s", resp.StatusCode, string(body))
	}

	var tokenResponse TokenResponse
	if err := json.Unmarshal(body, &tokenResponse); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta da troca de tokens: %w", err)
	}

	if tokenResponse.AccessToken == "" {
		return nil, fmt.Errorf("resposta da troca de tokens não contém access_token: %s", string(body))
	}

	return &tokenResponse, nil
}

// CheckTokenValidity verifica se um token ainda é aceito pela API
func CheckTokenValidity(token, graphURL string) (bool, error) {
	endpoint := fmt.Sprintf("%s/me?access_token=%s&fields=id", graphURL, url.QueryEscape(token))

	resp, err := http.Get(endpoint)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return true, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("erro ao ler resposta de validação do token: %w", err)
	}

	var errorResponse struct {
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errorResponse); err == nil && errorResponse.Error.Code == 190 {
		return false, nil
	}

	return false, fmt.Errorf("resposta inesperada na validação do token (status %d): %s", resp.StatusCode, string(body))
}

// GetDebugTokenInfo consulta o endpoint debug_token para obter metadados do token
func GetDebugTokenInfo(token, appID, appSecret, baseURL, version string) (map[string]interface{}, error) {
	appToken := fmt.Sprintf("%s|%s", appID, appSecret)
	endpoint := fmt.Sprintf("%s/%s/debug_token?input_token=%s&access_token=%s",
		baseURL, version, url.QueryEscape(token), url.QueryEscape(appToken))

	resp, err := http.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar debug_token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do debug_token: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erro no debug_token (status %d): %s", resp.StatusCode, string(body))
	}

	var debugInfo map[string]interface{}
	if err := json.Unmarshal(body, &debugInfo); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do debug_token: %w", err)
	}

	return debugInfo, nil
}

// CalculateTokenExpiration calcula a data de expiração com margem de segurança
func CalculateTokenExpiration(expiresIn int64) time.Time {
	if expiresIn <= 0 {
		// Tokens de longa duração duram em torno de 60 dias quando a API não informa
		expiresIn = 60 * 24 * 60 * 60
	}

	// Um dia de folga para renovar antes da expiração real
	return time.Now().Add(time.Duration(expiresIn)*time.Second - 24*time.Hour)
}
