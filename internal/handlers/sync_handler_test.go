package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	syncpkg "github.com/dominio-lash/lumiere-api/internal/sync"
)

func TestDirtySet_CoalescesMarks(t *testing.T) {
	dirty := newDirtySet()

	dirty.mark(syncpkg.ResourceClients)
	dirty.mark(syncpkg.ResourceClients)
	dirty.mark(syncpkg.ResourceReminders)

	// várias marcações, um sinal só
	<-dirty.signal
	select {
	case <-dirty.signal:
		t.Fatal("expected a single pending signal")
	default:
	}

	drained := dirty.drain()
	require.ElementsMatch(t,
		[]syncpkg.Resource{syncpkg.ResourceClients, syncpkg.ResourceReminders},
		drained)
	require.Empty(t, dirty.drain())
}

func TestDirtySet_MarkAfterDrainIsNotLost(t *testing.T) {
	dirty := newDirtySet()

	dirty.mark(syncpkg.ResourceAppointments)
	<-dirty.signal
	require.Len(t, dirty.drain(), 1)

	// a mudança chegada depois do flush gera novo sinal; o cliente
	// nunca fica preso num snapshot velho
	dirty.mark(syncpkg.ResourceAppointments)

	select {
	case <-dirty.signal:
	default:
		t.Fatal("expected a new signal after drain")
	}
	require.Equal(t,
		[]syncpkg.Resource{syncpkg.ResourceAppointments},
		dirty.drain())
}
