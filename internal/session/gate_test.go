package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dominio-lash/lumiere-api/internal/models"
)

func TestFileStore_SaveLoadClear(t *testing.T) {
	store := NewFileStore(t.TempDir())

	// ausência de perfil = deslogada, não erro
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	profile := &models.Profile{Name: "Ana", Email: "ana@clinica.com"}
	require.NoError(t, store.Save(profile))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, profile, loaded)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	// limpar de novo continua sendo no-op
	require.NoError(t, store.Clear())
}

func TestGate_SignInPersistsAndActivates(t *testing.T) {
	store := NewFileStore(t.TempDir())
	gate := NewGate(store)

	require.Nil(t, gate.Current())

	token := makeToken(t, map[string]any{
		"name":  "Ana Paula",
		"email": "ana@clinica.com",
	})

	profile, err := gate.SignIn(token)
	require.NoError(t, err)
	require.Equal(t, "ana@clinica.com", profile.Email)
	require.Equal(t, profile, gate.Current())

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, profile, persisted)
}

func TestGate_SignInMalformedTokenDoesNotStartSession(t *testing.T) {
	store := NewFileStore(t.TempDir())
	gate := NewGate(store)

	_, err := gate.SignIn("garbage")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Nil(t, gate.Current())

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, persisted)
}

func TestGate_ResumeSkipsLogin(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Save(&models.Profile{Name: "Ana", Email: "ana@clinica.com"}))

	// novo processo, mesmo diretório: retoma sem token
	gate := NewGate(NewFileStore(dir))
	profile, err := gate.Resume()
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.Equal(t, "ana@clinica.com", profile.Email)
	require.Equal(t, profile, gate.Current())
}

func TestGate_SignOut(t *testing.T) {
	store := NewFileStore(t.TempDir())
	gate := NewGate(store)

	token := makeToken(t, map[string]any{"email": "ana@clinica.com"})
	_, err := gate.SignIn(token)
	require.NoError(t, err)

	require.NoError(t, gate.SignOut())
	require.Nil(t, gate.Current())

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, persisted)
}
