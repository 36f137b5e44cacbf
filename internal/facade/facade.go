// Package facade é o conjunto fixo de intenções por onde passa toda
// escrita remota. Nenhuma mutação atualiza o estado em memória
// diretamente: o efeito só aparece quando a camada de sincronização
// entrega o próximo snapshot.
package facade

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dominio-lash/lumiere-api/internal/audit"
	"github.com/dominio-lash/lumiere-api/internal/docstore"
	domain "github.com/dominio-lash/lumiere-api/internal/domain/appointment"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

// Operações do façade; cada uma vira ação de auditoria e mensagem
// de erro própria.
const (
	OpAddClient           = "add_client"
	OpUpdateClient        = "update_client"
	OpAddAppointment      = "add_appointment"
	OpUpdateAppointment   = "update_appointment"
	OpCancelAppointment   = "cancel_appointment"
	OpCompleteAppointment = "complete_appointment"
	OpAddReminder         = "add_reminder"
	OpDeleteReminder      = "delete_reminder"
	OpUpdateClinicInfo    = "update_clinic_info"
)

// Reporter recebe toda falha de mutação por um único caminho.
type Reporter interface {
	Report(err *MutationError)
}

// LogReporter é o reporter padrão: registra estruturado e segue.
type LogReporter struct {
	Log *zap.Logger
}

func (r LogReporter) Report(err *MutationError) {
	r.Log.Error("mutation failed",
		zap.String("op", err.Op),
		zap.String("entity", err.Entity),
		zap.Error(err.Cause),
	)
}

type Facade struct {
	store       docstore.Store
	audit       audit.Sink
	reporter    Reporter
	maxDocBytes int
}

func New(store docstore.Store, sink audit.Sink, reporter Reporter, maxDocBytes int) *Facade {
	return &Facade{
		store:       store,
		audit:       sink,
		reporter:    reporter,
		maxDocBytes: maxDocBytes,
	}
}

// fail embrulha, reporta e devolve a falha; criações, atualizações
// e remoções passam todas por aqui.
func (f *Facade) fail(op, entity string, cause error) error {
	err := &MutationError{Op: op, Entity: entity, Cause: cause}
	if f.reporter != nil {
		f.reporter.Report(err)
	}
	return err
}

func (f *Facade) dispatch(p *models.Profile, action, entity, entityID string) {
	if f.audit == nil {
		return
	}
	f.audit.Dispatch(audit.Event{
		UserEmail: p.Email,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
	})
}

// checkBudget valida o teto de payload antes de qualquer rede.
func (f *Facade) checkBudget(fields map[string]any) error {
	if f.maxDocBytes <= 0 {
		return nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	if len(raw) > f.maxDocBytes {
		return ErrPayloadTooLarge
	}
	return nil
}

// ensureID preenche ids ausentes com uuid v4; ids vindos do chamador
// são respeitados e nunca trocados.
func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// --------------------------------------------------
// Clientes
// --------------------------------------------------

// AddClient grava o documento inteiro (create-or-replace). Sem perfil
// ativo é um no-op garantido: retorna na hora, sem rede.
func (f *Facade) AddClient(ctx context.Context, p *models.Profile, cl models.Client) (models.Client, error) {
	if !p.Active() {
		return cl, nil
	}

	cl.ID = ensureID(cl.ID)
	if cl.CreatedAt == "" {
		cl.CreatedAt = time.Now().Format(time.RFC3339)
	}
	if cl.Status == "" {
		cl.Status = models.ClientStatusActive
	}

	fields, err := docstore.Fields(cl)
	if err != nil {
		return cl, f.fail(OpAddClient, "client", err)
	}
	if err := f.checkBudget(fields); err != nil {
		return cl, f.fail(OpAddClient, "client", err)
	}

	path := docstore.UserPath(p.Email, docstore.ResourceClients, cl.ID)
	if err := f.store.Set(ctx, path, fields); err != nil {
		return cl, f.fail(OpAddClient, "client", err)
	}

	f.dispatch(p, "client_created", "client", cl.ID)
	return cl, nil
}

// UpdateClient aplica merge parcial: campos nil do patch não tocam o
// documento remoto.
func (f *Facade) UpdateClient(ctx context.Context, p *models.Profile, id string, patch models.ClientPatch) error {
	if !p.Active() {
		return nil
	}

	fields, err := docstore.Fields(patch)
	if err != nil {
		return f.fail(OpUpdateClient, "client", err)
	}
	if err := f.checkBudget(fields); err != nil {
		return f.fail(OpUpdateClient, "client", err)
	}

	path := docstore.UserPath(p.Email, docstore.ResourceClients, id)
	if err := f.store.Merge(ctx, path, fields); err != nil {
		return f.fail(OpUpdateClient, "client", err)
	}

	f.dispatch(p, "client_updated", "client", id)
	return nil
}

// --------------------------------------------------
// Atendimentos
// --------------------------------------------------

func (f *Facade) AddAppointment(ctx context.Context, p *models.Profile, ap models.Appointment) (models.Appointment, error) {
	if !p.Active() {
		return ap, nil
	}

	ap.ID = ensureID(ap.ID)
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}

	fields, err := docstore.Fields(ap)
	if err != nil {
		return ap, f.fail(OpAddAppointment, "appointment", err)
	}
	if err := f.checkBudget(fields); err != nil {
		return ap, f.fail(OpAddAppointment, "appointment", err)
	}

	path := docstore.UserPath(p.Email, docstore.ResourceAppointments, ap.ID)
	if err := f.store.Set(ctx, path, fields); err != nil {
		return ap, f.fail(OpAddAppointment, "appointment", err)
	}

	f.dispatch(p, "appointment_created", "appointment", ap.ID)
	return ap, nil
}

func (f *Facade) UpdateAppointment(ctx context.Context, p *models.Profile, id string, patch models.AppointmentPatch) error {
	if !p.Active() {
		return nil
	}

	fields, err := docstore.Fields(patch)
	if err != nil {
		return f.fail(OpUpdateAppointment, "appointment", err)
	}
	if err := f.checkBudget(fields); err != nil {
		return f.fail(OpUpdateAppointment, "appointment", err)
	}

	path := docstore.UserPath(p.Email, docstore.ResourceAppointments, id)
	if err := f.store.Merge(ctx, path, fields); err != nil {
		return f.fail(OpUpdateAppointment, "appointment", err)
	}

	f.dispatch(p, "appointment_updated", "appointment", id)
	return nil
}

// CancelAppointment valida a transição de estado antes de gravar;
// só atendimentos agendados podem ser cancelados.
func (f *Facade) CancelAppointment(ctx context.Context, p *models.Profile, id string) error {
	return f.transition(ctx, p, id, OpCancelAppointment, "appointment_canceled", domain.Cancel)
}

func (f *Facade) CompleteAppointment(ctx context.Context, p *models.Profile, id string) error {
	return f.transition(ctx, p, id, OpCompleteAppointment, "appointment_completed", domain.Complete)
}

func (f *Facade) transition(ctx context.Context, p *models.Profile, id, op, action string, apply func(*models.Appointment) error) error {
	if !p.Active() {
		return nil
	}

	path := docstore.UserPath(p.Email, docstore.ResourceAppointments, id)
	raw, err := f.store.Get(ctx, path)
	if err != nil {
		return f.fail(op, "appointment", err)
	}

	var ap models.Appointment
	if err := json.Unmarshal(raw, &ap); err != nil {
		return f.fail(op, "appointment", err)
	}
	ap.ID = id

	if err := apply(&ap); err != nil {
		return f.fail(op, "appointment", err)
	}

	if err := f.store.Merge(ctx, path, map[string]any{"status": ap.Status}); err != nil {
		return f.fail(op, "appointment", err)
	}

	f.dispatch(p, action, "appointment", id)
	return nil
}

// --------------------------------------------------
// Lembretes
// --------------------------------------------------

func (f *Facade) AddReminder(ctx context.Context, p *models.Profile, rem models.Reminder) (models.Reminder, error) {
	if !p.Active() {
		return rem, nil
	}

	rem.ID = ensureID(rem.ID)
	if rem.Category == "" {
		rem.Category = models.DefaultReminderCategory
	}

	fields, err := docstore.Fields(rem)
	if err != nil {
		return rem, f.fail(OpAddReminder, "reminder", err)
	}
	if err := f.checkBudget(fields); err != nil {
		return rem, f.fail(OpAddReminder, "reminder", err)
	}

	path := docstore.UserPath(p.Email, docstore.ResourceReminders, rem.ID)
	if err := f.store.Set(ctx, path, fields); err != nil {
		return rem, f.fail(OpAddReminder, "reminder", err)
	}

	f.dispatch(p, "reminder_created", "reminder", rem.ID)
	return rem, nil
}

// DeleteReminder remove o lembrete; id inexistente não é erro.
// A falha real segue o mesmo Reporter das demais mutações.
func (f *Facade) DeleteReminder(ctx context.Context, p *models.Profile, id string) error {
	if !p.Active() {
		return nil
	}

	path := docstore.UserPath(p.Email, docstore.ResourceReminders, id)
	if err := f.store.Delete(ctx, path); err != nil {
		return f.fail(OpDeleteReminder, "reminder", err)
	}

	f.dispatch(p, "reminder_deleted", "reminder", id)
	return nil
}

// --------------------------------------------------
// Identidade visual
// --------------------------------------------------

// UpdateClinicInfo grava o documento único por inteiro
// (create-or-replace, não merge).
func (f *Facade) UpdateClinicInfo(ctx context.Context, p *models.Profile, info models.ClinicInfo) error {
	if !p.Active() {
		return nil
	}

	fields, err := docstore.Fields(info)
	if err != nil {
		return f.fail(OpUpdateClinicInfo, "clinicInfo", err)
	}
	if err := f.checkBudget(fields); err != nil {
		return f.fail(OpUpdateClinicInfo, "clinicInfo", err)
	}

	if err := f.store.Set(ctx, docstore.ClinicInfoPath(p.Email), fields); err != nil {
		return f.fail(OpUpdateClinicInfo, "clinicInfo", err)
	}

	f.dispatch(p, "clinic_info_updated", "clinicInfo", docstore.ClinicInfoDocID)
	return nil
}
