package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/facade"
	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/httpresp"
	"github.com/dominio-lash/lumiere-api/internal/middleware"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

type ReminderHandler struct {
	store  docstore.Store
	facade *facade.Facade
}

func NewReminderHandler(store docstore.Store, fc *facade.Facade) *ReminderHandler {
	return &ReminderHandler{store: store, facade: fc}
}

func (h *ReminderHandler) List(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	reminders, err := loadReminders(c.Request.Context(), h.store, profile.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_list_reminders", "Erro ao listar lembretes.")
		return
	}

	httpresp.List(c, reminders)
}

func (h *ReminderHandler) Create(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	var rem models.Reminder
	if err := c.ShouldBindJSON(&rem); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	created, err := h.facade.AddReminder(c.Request.Context(), profile, rem)
	if err != nil {
		writeMutationError(c, err)
		return
	}

	httpresp.Created(c, created)
}

// Delete remove o lembrete; apagar um id inexistente não é erro.
func (h *ReminderHandler) Delete(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	if err := h.facade.DeleteReminder(c.Request.Context(), profile, c.Param("id")); err != nil {
		writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
