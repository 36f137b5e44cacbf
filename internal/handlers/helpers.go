package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/facade"
	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

// loadAll materializa uma coleção remota nas entidades, anexando a
// chave do documento como id, em ordem estável.
func loadAll[T any](ctx context.Context, store docstore.Store, collection string, attach func(*T, string)) ([]T, error) {
	snap, err := store.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		var v T
		if err := json.Unmarshal(snap[id], &v); err != nil {
			continue
		}
		attach(&v, id)
		out = append(out, v)
	}
	return out, nil
}

func loadClients(ctx context.Context, store docstore.Store, email string) ([]models.Client, error) {
	return loadAll(ctx, store, docstore.UserCollection(email, docstore.ResourceClients),
		func(c *models.Client, id string) { c.ID = id })
}

func loadAppointments(ctx context.Context, store docstore.Store, email string) ([]models.Appointment, error) {
	return loadAll(ctx, store, docstore.UserCollection(email, docstore.ResourceAppointments),
		func(a *models.Appointment, id string) { a.ID = id })
}

func loadReminders(ctx context.Context, store docstore.Store, email string) ([]models.Reminder, error) {
	return loadAll(ctx, store, docstore.UserCollection(email, docstore.ResourceReminders),
		func(r *models.Reminder, id string) { r.ID = id })
}

// writeMutationError traduz a falha do façade para a resposta HTTP:
// o "alert" do app virou o corpo de erro com a mesma mensagem.
func writeMutationError(c *gin.Context, err error) {
	var mut *facade.MutationError
	if !errors.As(err, &mut) {
		httperr.Internal(c, "mutation_failed", "Erro inesperado ao gravar os dados.")
		return
	}

	switch {
	case errors.Is(mut.Cause, facade.ErrPayloadTooLarge):
		httperr.BadRequest(c, "payload_too_large", mut.UserMessage())
	case errors.Is(mut.Cause, docstore.ErrNotFound):
		httperr.NotFound(c, "document_not_found", mut.UserMessage())
	case httperr.IsBusiness(mut.Cause, "invalid_state"):
		httperr.Conflict(c, "invalid_state", mut.UserMessage())
	default:
		httperr.Internal(c, mut.Op+"_failed", mut.UserMessage())
	}
}
