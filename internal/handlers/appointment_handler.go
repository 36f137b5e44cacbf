package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dominio-lash/lumiere-api/internal/agenda"
	"github.com/dominio-lash/lumiere-api/internal/config"
	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/facade"
	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/httpresp"
	"github.com/dominio-lash/lumiere-api/internal/middleware"
	"github.com/dominio-lash/lumiere-api/internal/models"
	"github.com/dominio-lash/lumiere-api/internal/timezone"
)

type AppointmentHandler struct {
	store  docstore.Store
	facade *facade.Facade
	config *config.Config
}

func NewAppointmentHandler(store docstore.Store, fc *facade.Facade, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{store: store, facade: fc, config: cfg}
}

// ======================================================
// LISTAGENS (dia / mês)
// ======================================================

// ListByDate devolve a visão diária; sem ?date= usa hoje no fuso da
// clínica. Ordenada pelo horário.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	date := c.Query("date")
	if date == "" {
		date = agenda.Today(timezone.Location(h.config.Timezone))
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida; use o formato YYYY-MM-DD.")
		return
	}

	apps, err := loadAppointments(c.Request.Context(), h.store, profile.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar atendimentos.")
		return
	}

	httpresp.List(c, agenda.OnDate(apps, date))
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Informe year e month válidos.")
		return
	}

	apps, err := loadAppointments(c.Request.Context(), h.store, profile.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar atendimentos.")
		return
	}

	httpresp.List(c, agenda.InMonth(apps, year, time.Month(month)))
}

// HistoryByClient devolve o dossiê da cliente: todos os atendimentos
// dela, do mais recente para o mais antigo.
func (h *AppointmentHandler) HistoryByClient(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	apps, err := loadAppointments(c.Request.Context(), h.store, profile.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar atendimentos.")
		return
	}

	httpresp.List(c, agenda.History(apps, c.Param("id")))
}

// ======================================================
// DASHBOARD
// ======================================================

// Dashboard devolve os números do painel: total de clientes, agenda
// ativa e aniversariantes do dia.
func (h *AppointmentHandler) Dashboard(c *gin.Context) {
	profile := middleware.ProfileFrom(c)
	ctx := c.Request.Context()
	now := time.Now().In(timezone.Location(h.config.Timezone))

	clients, err := loadClients(ctx, h.store, profile.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Erro ao montar o painel.")
		return
	}
	apps, err := loadAppointments(ctx, h.store, profile.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Erro ao montar o painel.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClients":  len(clients),
		"upcomingCount": agenda.UpcomingCount(apps, now.Format("2006-01-02")),
		"birthdays":     agenda.BirthdaysOn(clients, now),
	})
}

// ======================================================
// CRIAÇÃO / DOSSIÊ
// ======================================================

// Create agenda um atendimento. O clientName é a cópia do nome no
// momento da criação; renomear a cliente depois não mexe aqui.
func (h *AppointmentHandler) Create(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	var ap models.Appointment
	if err := c.ShouldBindJSON(&ap); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if ap.ClientName == "" {
		clients, err := loadClients(c.Request.Context(), h.store, profile.Email)
		if err == nil {
			if name, ok := agenda.ResolveClientName(clients, ap.ClientID); ok {
				ap.ClientName = name
			}
		}
	}

	created, err := h.facade.AddAppointment(c.Request.Context(), profile, ap)
	if err != nil {
		writeMutationError(c, err)
		return
	}

	httpresp.Created(c, created)
}

// Update aplica o merge parcial do dossiê: mandar só serviceNotes
// deixa service, date, time e status intocados.
func (h *AppointmentHandler) Update(c *gin.Context) {
	profile := middleware.ProfileFrom(c)
	id := c.Param("id")

	var patch models.AppointmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if err := h.facade.UpdateAppointment(c.Request.Context(), profile, id, patch); err != nil {
		writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// TRANSIÇÕES DE ESTADO
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	if err := h.facade.CancelAppointment(c.Request.Context(), profile, c.Param("id")); err != nil {
		writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	if err := h.facade.CompleteAppointment(c.Request.Context(), profile, c.Param("id")); err != nil {
		writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
