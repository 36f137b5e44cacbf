package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dominio-lash/lumiere-api/internal/models"
)

// AuthError distingue falha de decodificação do token de identidade
// de qualquer outra falha; nunca derruba quem chamou, a sessão apenas
// não inicia.
type AuthError struct {
	Reason string
	Cause  error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Cause)
	}
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Cause }

// DecodeIDToken extrai o perfil do credential do Google: três
// segmentos separados por ponto, o do meio é JSON em base64 URL-safe.
// A assinatura não é verificada: o token vem direto do widget de
// login do Google e só alimenta o perfil exibido.
func DecodeIDToken(token string) (*models.Profile, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, &AuthError{Reason: "malformed identity token", Cause: err}
	}

	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)
	email, _ := claims["email"].(string)

	if email == "" {
		return nil, &AuthError{Reason: "identity token without email"}
	}

	return &models.Profile{
		Name:    name,
		Picture: picture,
		Email:   email,
	}, nil
}
