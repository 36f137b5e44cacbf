package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dominio-lash/lumiere-api/internal/config"
	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/middleware"
	"github.com/dominio-lash/lumiere-api/internal/models"
	"github.com/dominio-lash/lumiere-api/internal/session"
	"github.com/dominio-lash/lumiere-api/internal/validators"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

// --------- Requests ---------

type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// --------- Handlers ---------

// GoogleLogin decodifica o credential do widget do Google, monta o
// perfil e emite o token de sessão da API. Token malformado não
// derruba nada: a sessão simplesmente não inicia.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	profile, err := session.DecodeIDToken(req.Credential)
	if err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			httperr.Unauthorized(c, "invalid_credential", "Erro ao decodificar login.")
			return
		}
		httperr.Internal(c, "login_failed", "Erro inesperado no login.")
		return
	}

	if !validators.IsEmailDomainValid(profile.Email) {
		httperr.BadRequest(c, "invalid_email_domain",
			"O domínio do e-mail informado não parece ser válido.")
		return
	}

	token, err := h.generateToken(profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token de sessão.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"name":    profile.Name,
			"picture": profile.Picture,
			"email":   profile.Email,
		},
		"token": token,
	})
}

// GetMe devolve o perfil da sessão ativa.
func (h *AuthHandler) GetMe(c *gin.Context) {
	profile := middleware.ProfileFrom(c)
	if profile == nil {
		httperr.Unauthorized(c, "profile_not_in_context", "Sessão inválida.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// InstallInstructions é o fallback do prompt de instalação: sem o
// prompt nativo, devolvemos o texto com o passo a passo.
func (h *AuthHandler) InstallInstructions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Para instalar, use a opção 'Adicionar à tela de início' do seu navegador.",
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(profile *models.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":     profile.Email,
		"name":    profile.Name,
		"picture": profile.Picture,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
