package appointment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

func TestCancel(t *testing.T) {
	ap := &models.Appointment{ID: "a1", Status: string(StatusScheduled)}

	require.NoError(t, Cancel(ap))
	require.Equal(t, "canceled", ap.Status)

	// cancelar de novo é estado inválido
	err := Cancel(ap)
	require.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestComplete(t *testing.T) {
	ap := &models.Appointment{ID: "a1", Status: string(StatusScheduled)}

	require.NoError(t, Complete(ap))
	require.Equal(t, "completed", ap.Status)

	err := Complete(ap)
	require.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestSortKeyIsChronological(t *testing.T) {
	earlier := models.Appointment{Date: "2024-10-24", Time: "09:00"}
	later := models.Appointment{Date: "2024-10-24", Time: "15:30"}

	require.Less(t, earlier.SortKey(), later.SortKey())
}

func TestInitialStatus(t *testing.T) {
	require.Equal(t, StatusScheduled, InitialStatus())
}
