package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/dominio-lash/lumiere-api/internal/models"
)

// StorageKey é a chave fixa sob a qual o perfil fica persistido,
// a mesma usada pelo app web no localStorage.
const StorageKey = "lumiere_user"

// ProfileStore persiste o perfil ativo entre execuções. A presença do
// perfil é o único estado de sessão durável; ausência = deslogada.
type ProfileStore interface {
	Save(p *models.Profile) error
	Load() (*models.Profile, error)
	Clear() error
}

// FileStore guarda o perfil como um único JSON em disco, o análogo
// direto da chave única de localStorage do app web.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, StorageKey+".json")
}

func (s *FileStore) Save(p *models.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), raw, 0o600)
}

func (s *FileStore) Load() (*models.Profile, error) {
	raw, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		// perfil corrompido vale o mesmo que ausente
		return nil, nil
	}
	return &p, nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
