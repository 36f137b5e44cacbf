package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dominio-lash/lumiere-api/internal/config"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

const ContextProfile = "profile"

// AuthMiddleware valida o token de sessão da API (HS256 emitido no
// login) e injeta o perfil no contexto. O e-mail das claims escopa
// toda a árvore de documentos da requisição.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		email, ok := claims["sub"].(string)
		if !ok || email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}
		name, _ := claims["name"].(string)
		picture, _ := claims["picture"].(string)

		c.Set(ContextProfile, &models.Profile{
			Name:    name,
			Picture: picture,
			Email:   email,
		})

		c.Next()
	}
}

// ProfileFrom recupera o perfil injetado pelo AuthMiddleware.
func ProfileFrom(c *gin.Context) *models.Profile {
	if v, ok := c.Get(ContextProfile); ok {
		if p, ok := v.(*models.Profile); ok {
			return p
		}
	}
	return nil
}
