package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dominio-lash/lumiere-api/internal/models"
)

func TestOnDate_SortsByTime(t *testing.T) {
	apps := []models.Appointment{
		{ID: "a2", Date: "2024-10-24", Time: "15:30"},
		{ID: "a3", Date: "2024-10-25", Time: "08:00"},
		{ID: "a1", Date: "2024-10-24", Time: "09:00"},
	}

	day := OnDate(apps, "2024-10-24")
	require.Len(t, day, 2)
	require.Equal(t, "a1", day[0].ID) // 09:00 antes de 15:30
	require.Equal(t, "a2", day[1].ID)
}

func TestSortByDateTime(t *testing.T) {
	apps := []models.Appointment{
		{ID: "a3", Date: "2024-11-01", Time: "08:00"},
		{ID: "a1", Date: "2024-10-24", Time: "09:00"},
		{ID: "a2", Date: "2024-10-24", Time: "15:30"},
	}

	sorted := SortByDateTime(apps)
	require.Equal(t, "a1", sorted[0].ID)
	require.Equal(t, "a2", sorted[1].ID)
	require.Equal(t, "a3", sorted[2].ID)

	// a entrada não é reordenada
	require.Equal(t, "a3", apps[0].ID)
}

func TestInMonth(t *testing.T) {
	apps := []models.Appointment{
		{ID: "a1", Date: "2024-10-24", Time: "09:00"},
		{ID: "a2", Date: "2024-11-02", Time: "10:00"},
		{ID: "a3", Date: "2024-10-01", Time: "14:00"},
	}

	month := InMonth(apps, 2024, time.October)
	require.Len(t, month, 2)
	require.Equal(t, "a3", month[0].ID)
	require.Equal(t, "a1", month[1].ID)
}

func TestUpcomingCount_SkipsCanceled(t *testing.T) {
	apps := []models.Appointment{
		{Date: "2024-10-23", Status: "scheduled"}, // passado
		{Date: "2024-10-24", Status: "scheduled"}, // hoje
		{Date: "2024-10-25", Status: "canceled"},
		{Date: "2024-10-26", Status: "completed"},
	}

	require.Equal(t, 2, UpcomingCount(apps, "2024-10-24"))
}

func TestBirthdaysOn_MatchesMonthAndDayIgnoringYear(t *testing.T) {
	clients := []models.Client{
		{ID: "c1", Name: "Beatriz", Birthday: "1990-03-15"},
		{ID: "c2", Name: "Carla", Birthday: "1985-03-16"},
		{ID: "c3", Name: "Duda", Birthday: "2001-03-15"},
		{ID: "c4", Name: "Sem Data"},
		{ID: "c5", Name: "Inválida", Birthday: "15/03"},
	}

	date := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	birthdays := BirthdaysOn(clients, date)

	require.Len(t, birthdays, 2)
	require.Equal(t, "c1", birthdays[0].ID)
	require.Equal(t, "c3", birthdays[1].ID)

	require.Empty(t, BirthdaysOn(clients, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)))
}

func TestHistory_NewestFirst(t *testing.T) {
	apps := []models.Appointment{
		{ID: "a1", ClientID: "c1", Date: "2024-01-10", Time: "09:00"},
		{ID: "a2", ClientID: "c2", Date: "2024-02-01", Time: "10:00"},
		{ID: "a3", ClientID: "c1", Date: "2024-03-05", Time: "11:00"},
	}

	hist := History(apps, "c1")
	require.Len(t, hist, 2)
	require.Equal(t, "a3", hist[0].ID)
	require.Equal(t, "a1", hist[1].ID)
}

func TestResolveClientName(t *testing.T) {
	clients := []models.Client{
		{ID: "c1", Name: "Beatriz Prado"},
	}

	name, ok := ResolveClientName(clients, "c1")
	require.True(t, ok)
	require.Equal(t, "Beatriz Prado", name)

	_, ok = ResolveClientName(clients, "c9")
	require.False(t, ok)
}
