package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/facade"
	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/middleware"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

type ClinicHandler struct {
	store  docstore.Store
	facade *facade.Facade
}

func NewClinicHandler(store docstore.Store, fc *facade.Facade) *ClinicHandler {
	return &ClinicHandler{store: store, facade: fc}
}

// Get devolve a identidade visual; antes do primeiro salvamento vale
// o padrão de fábrica.
func (h *ClinicHandler) Get(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	raw, err := h.store.Get(c.Request.Context(), docstore.ClinicInfoPath(profile.Email))
	if errors.Is(err, docstore.ErrNotFound) {
		c.JSON(http.StatusOK, models.DefaultClinicInfo())
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_clinic_info", "Erro ao buscar a identidade da clínica.")
		return
	}

	var info models.ClinicInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		httperr.Internal(c, "failed_to_get_clinic_info", "Erro ao buscar a identidade da clínica.")
		return
	}

	c.JSON(http.StatusOK, info)
}

// Update grava o documento único inteiro (create-or-replace).
func (h *ClinicHandler) Update(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	var info models.ClinicInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if err := h.facade.UpdateClinicInfo(c.Request.Context(), profile, info); err != nil {
		writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
