package facade

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dominio-lash/lumiere-api/internal/audit"
	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

// --------------------------------------------------
// fakes
// --------------------------------------------------

type writeCall struct {
	path   string
	fields map[string]any
}

type fakeStore struct {
	sets    []writeCall
	merges  []writeCall
	deletes []string

	docs map[string]json.RawMessage

	setErr    error
	mergeErr  error
	deleteErr error
}

var _ docstore.Store = (*fakeStore)(nil)

func (f *fakeStore) Set(_ context.Context, path string, fields map[string]any) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets = append(f.sets, writeCall{path: path, fields: fields})
	return nil
}

func (f *fakeStore) Merge(_ context.Context, path string, fields map[string]any) error {
	if f.mergeErr != nil {
		return f.mergeErr
	}
	f.merges = append(f.merges, writeCall{path: path, fields: fields})
	return nil
}

func (f *fakeStore) Delete(_ context.Context, path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, path)
	return nil
}

func (f *fakeStore) Get(_ context.Context, path string) (json.RawMessage, error) {
	raw, ok := f.docs[path]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return raw, nil
}

func (f *fakeStore) GetAll(_ context.Context, _ string) (docstore.Snapshot, error) {
	return docstore.Snapshot{}, nil
}

func (f *fakeStore) Watch(_ context.Context, _ string, _ docstore.Handler) (docstore.Unsubscribe, error) {
	return func() {}, nil
}

func (f *fakeStore) Users(_ context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) callCount() int {
	return len(f.sets) + len(f.merges) + len(f.deletes)
}

type fakeSink struct {
	events []audit.Event
}

func (f *fakeSink) Dispatch(ev audit.Event) { f.events = append(f.events, ev) }

type captureReporter struct {
	reported []*MutationError
}

func (r *captureReporter) Report(err *MutationError) { r.reported = append(r.reported, err) }

func newTestFacade(store *fakeStore, maxDocBytes int) (*Facade, *fakeSink, *captureReporter) {
	sink := &fakeSink{}
	reporter := &captureReporter{}
	return New(store, sink, reporter, maxDocBytes), sink, reporter
}

var profile = &models.Profile{Name: "Ana", Email: "ana@clinica.com"}

// --------------------------------------------------
// precondição: sem perfil, nenhuma rede
// --------------------------------------------------

func TestNoActiveProfileIsNoOp(t *testing.T) {
	store := &fakeStore{}
	fc, sink, _ := newTestFacade(store, 0)
	ctx := context.Background()

	for _, p := range []*models.Profile{nil, {}} {
		_, err := fc.AddClient(ctx, p, models.Client{Name: "Bia"})
		require.NoError(t, err)
		require.NoError(t, fc.UpdateClient(ctx, p, "c1", models.ClientPatch{}))
		_, err = fc.AddAppointment(ctx, p, models.Appointment{ClientID: "c1"})
		require.NoError(t, err)
		require.NoError(t, fc.UpdateAppointment(ctx, p, "a1", models.AppointmentPatch{}))
		require.NoError(t, fc.CancelAppointment(ctx, p, "a1"))
		require.NoError(t, fc.CompleteAppointment(ctx, p, "a1"))
		_, err = fc.AddReminder(ctx, p, models.Reminder{Text: "comprar cílios"})
		require.NoError(t, err)
		require.NoError(t, fc.DeleteReminder(ctx, p, "r1"))
		require.NoError(t, fc.UpdateClinicInfo(ctx, p, models.ClinicInfo{}))
	}

	require.Zero(t, store.callCount())
	require.Empty(t, sink.events)
}

// --------------------------------------------------
// clientes
// --------------------------------------------------

func TestAddClient_RoundTrip(t *testing.T) {
	store := &fakeStore{}
	fc, sink, _ := newTestFacade(store, 0)

	in := models.Client{
		ID:       "c1",
		Name:     "Beatriz Prado",
		Phone:    "+5511999990000",
		Status:   models.ClientStatusVIP,
		Tags:     []string{"volume russo"},
		Birthday: "1990-03-15",
	}

	out, err := fc.AddClient(context.Background(), profile, in)
	require.NoError(t, err)
	require.Equal(t, "c1", out.ID)

	require.Len(t, store.sets, 1)
	call := store.sets[0]
	require.Equal(t, "users/ana@clinica.com/clients/c1", call.path)

	// todo campo fornecido chega intacto; o id vira chave, não campo
	require.NotContains(t, call.fields, "id")
	require.Equal(t, "Beatriz Prado", call.fields["name"])
	require.Equal(t, "+5511999990000", call.fields["phone"])
	require.Equal(t, "vip", call.fields["status"])
	require.Equal(t, "1990-03-15", call.fields["birthday"])

	require.Len(t, sink.events, 1)
	require.Equal(t, "client_created", sink.events[0].Action)
	require.Equal(t, "ana@clinica.com", sink.events[0].UserEmail)
}

func TestAddClient_GeneratesIDAndDefaults(t *testing.T) {
	store := &fakeStore{}
	fc, _, _ := newTestFacade(store, 0)

	out, err := fc.AddClient(context.Background(), profile, models.Client{Name: "Bia"})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)
	require.Len(t, out.ID, 36) // uuid, não timestamp
	require.NotEmpty(t, out.CreatedAt)
	require.Equal(t, models.ClientStatusActive, out.Status)
}

// --------------------------------------------------
// atendimentos: merge parcial
// --------------------------------------------------

func TestUpdateAppointment_MergeOnlySentFields(t *testing.T) {
	store := &fakeStore{}
	fc, _, _ := newTestFacade(store, 0)

	notes := "hidratação pós-procedimento"
	err := fc.UpdateAppointment(context.Background(), profile, "a1",
		models.AppointmentPatch{ServiceNotes: &notes})
	require.NoError(t, err)

	require.Len(t, store.merges, 1)
	call := store.merges[0]
	require.Equal(t, "users/ana@clinica.com/appointments/a1", call.path)

	// só serviceNotes viaja: service, date, time e status ficam
	// intocados do lado remoto
	require.Equal(t, map[string]any{"serviceNotes": notes}, call.fields)
}

func TestAddAppointment_DefaultsToScheduled(t *testing.T) {
	store := &fakeStore{}
	fc, _, _ := newTestFacade(store, 0)

	out, err := fc.AddAppointment(context.Background(), profile, models.Appointment{
		ClientID: "c1",
		Date:     "2024-10-24",
		Time:     "09:00",
	})
	require.NoError(t, err)
	require.Equal(t, "scheduled", out.Status)
	require.NotEmpty(t, out.ID)
}

// --------------------------------------------------
// transições de estado
// --------------------------------------------------

func appointmentDoc(t *testing.T, status string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"clientId": "c1",
		"date":     "2024-10-24",
		"time":     "09:00",
		"status":   status,
	})
	require.NoError(t, err)
	return raw
}

func TestCancelAppointment(t *testing.T) {
	store := &fakeStore{docs: map[string]json.RawMessage{
		"users/ana@clinica.com/appointments/a1": appointmentDoc(t, "scheduled"),
	}}
	fc, sink, _ := newTestFacade(store, 0)

	require.NoError(t, fc.CancelAppointment(context.Background(), profile, "a1"))

	require.Len(t, store.merges, 1)
	require.Equal(t, map[string]any{"status": "canceled"}, store.merges[0].fields)
	require.Equal(t, "appointment_canceled", sink.events[0].Action)
}

func TestCompleteAppointment_InvalidState(t *testing.T) {
	store := &fakeStore{docs: map[string]json.RawMessage{
		"users/ana@clinica.com/appointments/a1": appointmentDoc(t, "canceled"),
	}}
	fc, _, reporter := newTestFacade(store, 0)

	err := fc.CompleteAppointment(context.Background(), profile, "a1")

	var mut *MutationError
	require.ErrorAs(t, err, &mut)
	require.True(t, httperr.IsBusiness(mut.Cause, "invalid_state"))
	require.Empty(t, store.merges)
	require.Len(t, reporter.reported, 1)
}

// --------------------------------------------------
// lembretes
// --------------------------------------------------

func TestAddReminder_DefaultCategory(t *testing.T) {
	store := &fakeStore{}
	fc, _, _ := newTestFacade(store, 0)

	out, err := fc.AddReminder(context.Background(), profile, models.Reminder{Text: "repor luvas"})
	require.NoError(t, err)
	require.Equal(t, "Geral", out.Category)

	require.Len(t, store.sets, 1)
	require.Equal(t, "Geral", store.sets[0].fields["category"])
}

func TestDeleteReminder_MissingIDIsNotAnError(t *testing.T) {
	store := &fakeStore{}
	fc, _, reporter := newTestFacade(store, 0)

	require.NoError(t, fc.DeleteReminder(context.Background(), profile, "nunca-existiu"))
	require.Empty(t, reporter.reported)
}

func TestDeleteReminder_FailureGoesThroughReporter(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("connection refused")}
	fc, _, reporter := newTestFacade(store, 0)

	err := fc.DeleteReminder(context.Background(), profile, "r1")

	// a remoção não tem mais o caminho silencioso: mesma taxonomia
	// das demais mutações
	var mut *MutationError
	require.ErrorAs(t, err, &mut)
	require.Equal(t, OpDeleteReminder, mut.Op)
	require.Len(t, reporter.reported, 1)
}

// --------------------------------------------------
// teto de payload
// --------------------------------------------------

func TestPayloadBudgetRejectsBeforeNetwork(t *testing.T) {
	store := &fakeStore{}
	fc, _, reporter := newTestFacade(store, 256)

	cl := models.Client{
		ID:     "c1",
		Name:   "Bia",
		Notes:  strings.Repeat("x", 1024),
		Status: models.ClientStatusActive,
	}
	cl.CreatedAt = "2024-01-01T00:00:00Z"

	_, err := fc.AddClient(context.Background(), profile, cl)

	require.ErrorIs(t, err, ErrPayloadTooLarge)
	require.Zero(t, store.callCount())
	require.Len(t, reporter.reported, 1)
}

func TestAddReminder_RespectsPayloadBudget(t *testing.T) {
	store := &fakeStore{}
	fc, _, reporter := newTestFacade(store, 256)

	_, err := fc.AddReminder(context.Background(), profile, models.Reminder{
		Text: strings.Repeat("x", 1024),
	})

	require.ErrorIs(t, err, ErrPayloadTooLarge)
	require.Zero(t, store.callCount())
	require.Len(t, reporter.reported, 1)
	require.Equal(t, OpAddReminder, reporter.reported[0].Op)
}

// --------------------------------------------------
// reporte unificado e mensagem humana
// --------------------------------------------------

func TestMutationErrorUserMessage(t *testing.T) {
	store := &fakeStore{setErr: errors.New("permission denied")}
	fc, sink, reporter := newTestFacade(store, 0)

	_, err := fc.AddClient(context.Background(), profile, models.Client{ID: "c1", Name: "Bia"})

	var mut *MutationError
	require.ErrorAs(t, err, &mut)
	require.Equal(t, "Erro ao salvar cliente: permission denied", mut.UserMessage())
	require.Empty(t, sink.events)
	require.Len(t, reporter.reported, 1)
}

func TestLogReporterDoesNotPanic(t *testing.T) {
	r := LogReporter{Log: zap.NewNop()}
	r.Report(&MutationError{Op: OpAddClient, Entity: "client", Cause: errors.New("boom")})
}
