package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as claims esperadas nos tokens de serviço que protegem as
// rotas de escrita da API.
type Claims struct {
	Subject string `json:"sub_name"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}
