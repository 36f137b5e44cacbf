// Package sync mantém as coleções em memória consistentes com a
// árvore de documentos remota da usuária ativa. Cada mudança remota
// entrega o snapshot inteiro do recurso e substitui a coleção local
// por atacado; não há invalidação fina nem diff.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	stdsync "sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

// Resource identifica cada um dos quatro fluxos independentes.
type Resource string

const (
	ResourceClients      Resource = docstore.ResourceClients
	ResourceAppointments Resource = docstore.ResourceAppointments
	ResourceReminders    Resource = docstore.ResourceReminders
	ResourceClinicInfo   Resource = "clinicInfo"
)

var ErrNoProfile = errors.New("sync: no active profile")

// Engine é a camada de sincronização reativa: Idle -> Subscribed ao
// iniciar com um perfil, Subscribed -> Idle ao encerrar.
type Engine struct {
	store  docstore.Store
	logger *zap.Logger

	mu           stdsync.RWMutex
	clients      []models.Client
	appointments []models.Appointment
	reminders    []models.Reminder
	clinicInfo   models.ClinicInfo
	errs         map[Resource]error

	onChange func(Resource)
}

func NewEngine(store docstore.Store, logger *zap.Logger) *Engine {
	return &Engine{
		store:      store,
		logger:     logger,
		clinicInfo: models.DefaultClinicInfo(),
		errs:       make(map[Resource]error),
	}
}

// OnChange registra um hook chamado após cada substituição de
// coleção. Deve ser definido antes de Start.
func (e *Engine) OnChange(fn func(Resource)) {
	e.onChange = fn
}

// SubscriptionSet agrupa as quatro inscrições abertas por Start.
type SubscriptionSet struct {
	stopped atomic.Bool
	unsubs  []docstore.Unsubscribe
}

// Stop encerra as quatro inscrições. Depois do retorno nenhum evento
// atrasado altera o estado em memória.
func (s *SubscriptionSet) Stop() {
	if s == nil {
		return
	}
	s.stopped.Store(true)
	for _, unsub := range s.unsubs {
		unsub()
	}
}

// Start abre as inscrições dos quatro recursos escopados pelo e-mail
// do perfil. Falha ao abrir um recurso não derruba os demais: o erro
// fica exposto em Err e o consumidor pode exibir estado degradado.
func (e *Engine) Start(ctx context.Context, profile *models.Profile) (*SubscriptionSet, error) {
	if !profile.Active() {
		return nil, ErrNoProfile
	}

	set := &SubscriptionSet{}
	email := profile.Email

	e.watch(ctx, set, ResourceClients, docstore.UserCollection(email, docstore.ResourceClients),
		func(snap docstore.Snapshot) {
			clients := decodeAll(snap, e.logger, func(c *models.Client, id string) { c.ID = id })
			e.mu.Lock()
			e.clients = clients
			e.mu.Unlock()
		})

	e.watch(ctx, set, ResourceAppointments, docstore.UserCollection(email, docstore.ResourceAppointments),
		func(snap docstore.Snapshot) {
			apps := decodeAll(snap, e.logger, func(a *models.Appointment, id string) { a.ID = id })
			e.mu.Lock()
			e.appointments = apps
			e.mu.Unlock()
		})

	e.watch(ctx, set, ResourceReminders, docstore.UserCollection(email, docstore.ResourceReminders),
		func(snap docstore.Snapshot) {
			rems := decodeAll(snap, e.logger, func(r *models.Reminder, id string) { r.ID = id })
			e.mu.Lock()
			e.reminders = rems
			e.mu.Unlock()
		})

	e.watch(ctx, set, ResourceClinicInfo, docstore.UserCollection(email, docstore.ResourceConfig),
		func(snap docstore.Snapshot) {
			raw, ok := snap[docstore.ClinicInfoDocID]
			if !ok {
				// documento ainda não existe: mantém a identidade padrão
				return
			}
			var info models.ClinicInfo
			if err := json.Unmarshal(raw, &info); err != nil {
				e.logger.Warn("clinic info document malformed", zap.Error(err))
				return
			}
			e.mu.Lock()
			e.clinicInfo = info
			e.mu.Unlock()
		})

	return set, nil
}

// watch abre uma inscrição e amarra o handler ao ciclo de vida do
// conjunto: eventos após Stop viram no-ops.
func (e *Engine) watch(ctx context.Context, set *SubscriptionSet, res Resource, collection string, apply func(docstore.Snapshot)) {
	unsub, err := e.store.Watch(ctx, collection, func(snap docstore.Snapshot) {
		if set.stopped.Load() {
			return
		}
		apply(snap)

		e.mu.Lock()
		delete(e.errs, res)
		e.mu.Unlock()

		if e.onChange != nil {
			e.onChange(res)
		}
	})
	if err != nil {
		e.logger.Error("subscription failed",
			zap.String("resource", string(res)), zap.Error(err))
		e.mu.Lock()
		e.errs[res] = err
		e.mu.Unlock()
		return
	}

	set.unsubs = append(set.unsubs, unsub)
}

// Clients devolve o snapshot sincronizado de clientes.
func (e *Engine) Clients() []models.Client {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.Client(nil), e.clients...)
}

func (e *Engine) Appointments() []models.Appointment {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.Appointment(nil), e.appointments...)
}

func (e *Engine) Reminders() []models.Reminder {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.Reminder(nil), e.reminders...)
}

func (e *Engine) ClinicInfo() models.ClinicInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.clinicInfo
}

// Err devolve o erro pendente de um recurso, ou nil quando o fluxo
// está saudável. Um erro aqui significa snapshot possivelmente velho.
func (e *Engine) Err(res Resource) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.errs[res]
}

// decodeAll mapeia o snapshot para as entidades, anexando a chave do
// documento como id. A ordem por id mantém a saída estável entre
// snapshots.
func decodeAll[T any](snap docstore.Snapshot, logger *zap.Logger, attach func(*T, string)) []T {
	ids := make([]string, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		var v T
		if err := json.Unmarshal(snap[id], &v); err != nil {
			logger.Warn("document malformed, skipping",
				zap.String("id", id), zap.Error(err))
			continue
		}
		attach(&v, id)
		out = append(out, v)
	}
	return out
}
