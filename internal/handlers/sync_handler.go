package handlers

import (
	"io"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/middleware"
	syncpkg "github.com/dominio-lash/lumiere-api/internal/sync"
)

type SyncHandler struct {
	store  docstore.Store
	logger *zap.Logger
}

func NewSyncHandler(store docstore.Store, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{store: store, logger: logger}
}

// dirtySet coalesce notificações de mudança por recurso. Marcar o
// mesmo recurso várias vezes antes do flush vira um evento só; como o
// snapshot já carrega a coleção inteira, nada se perde no coalescing.
type dirtySet struct {
	mu      sync.Mutex
	pending map[syncpkg.Resource]bool
	signal  chan struct{}
}

func newDirtySet() *dirtySet {
	return &dirtySet{
		pending: make(map[syncpkg.Resource]bool),
		signal:  make(chan struct{}, 1),
	}
}

func (d *dirtySet) mark(r syncpkg.Resource) {
	d.mu.Lock()
	d.pending[r] = true
	d.mu.Unlock()

	select {
	case d.signal <- struct{}{}:
	default:
		// sinal já pendente; o flush vai enxergar esta marcação
	}
}

func (d *dirtySet) drain() []syncpkg.Resource {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]syncpkg.Resource, 0, len(d.pending))
	for r := range d.pending {
		out = append(out, r)
	}
	d.pending = make(map[syncpkg.Resource]bool)
	return out
}

// Stream abre um motor de sincronização por conexão e empurra cada
// snapshot por SSE: um evento por recurso, sempre com a coleção
// inteira. O consumidor substitui o estado por atacado.
func (h *SyncHandler) Stream(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	engine := syncpkg.NewEngine(h.store, h.logger)

	dirty := newDirtySet()
	engine.OnChange(dirty.mark)

	ctx := c.Request.Context()
	set, err := engine.Start(ctx, profile)
	if err != nil {
		httperr.Internal(c, "failed_to_start_sync", "Erro ao iniciar a sincronização.")
		return
	}
	defer set.Stop()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-dirty.signal:
			for _, res := range dirty.drain() {
				c.SSEvent(string(res), h.payload(engine, res))
			}
			return true
		}
	})
}

func (h *SyncHandler) payload(engine *syncpkg.Engine, res syncpkg.Resource) any {
	switch res {
	case syncpkg.ResourceClients:
		return engine.Clients()
	case syncpkg.ResourceAppointments:
		return engine.Appointments()
	case syncpkg.ResourceReminders:
		return engine.Reminders()
	case syncpkg.ResourceClinicInfo:
		return engine.ClinicInfo()
	}
	return nil
}
