package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Recursos remotos de uma usuária. Cada um vira uma coleção própria
// em users/{email}/{recurso}; a identidade visual é um documento
// único dentro de config.
const (
	ResourceClients      = "clients"
	ResourceAppointments = "appointments"
	ResourceReminders    = "reminders"
	ResourceConfig       = "config"

	ClinicInfoDocID = "clinicInfo"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Snapshot é o conteúdo completo de uma coleção, entregue por inteiro
// a cada mudança: chave do documento -> JSON bruto do documento.
type Snapshot map[string]json.RawMessage

// Handler recebe o snapshot inteiro do recurso observado. É chamado
// uma vez logo após a inscrição e novamente a cada mudança.
type Handler func(Snapshot)

// Unsubscribe encerra uma inscrição; chamadas repetidas são inócuas.
type Unsubscribe func()

// Store é o adaptador do armazenamento remoto de documentos:
// escritas pontuais, merge parcial, remoção e observação de coleções.
type Store interface {
	// Set grava o documento inteiro (create-or-replace).
	Set(ctx context.Context, path string, fields map[string]any) error

	// Merge atualiza apenas os campos presentes; os demais ficam
	// intocados no lado remoto. Falha com ErrNotFound se o
	// documento não existe.
	Merge(ctx context.Context, path string, fields map[string]any) error

	Delete(ctx context.Context, path string) error

	Get(ctx context.Context, path string) (json.RawMessage, error)
	GetAll(ctx context.Context, collection string) (Snapshot, error)

	// Watch observa uma coleção. O handler recebe o snapshot atual
	// imediatamente e depois a cada mudança em qualquer documento.
	Watch(ctx context.Context, collection string, h Handler) (Unsubscribe, error)

	// Users lista os e-mails já vistos em escritas.
	Users(ctx context.Context) ([]string, error)
}

// UserCollection monta o caminho da coleção de um recurso da usuária.
func UserCollection(email, resource string) string {
	return fmt.Sprintf("users/%s/%s", email, resource)
}

// UserPath monta o caminho de um documento dentro de um recurso.
func UserPath(email, resource, id string) string {
	return fmt.Sprintf("users/%s/%s/%s", email, resource, id)
}

// ClinicInfoPath é o caminho do documento único de identidade visual.
func ClinicInfoPath(email string) string {
	return UserPath(email, ResourceConfig, ClinicInfoDocID)
}

// EmailFromPath extrai o e-mail dono de um caminho users/{email}/...
func EmailFromPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) >= 2 && parts[0] == "users" {
		return parts[1]
	}
	return ""
}

// Fields serializa uma entidade no mapa de campos gravado no
// documento, removendo `id`: a chave do documento já carrega o id.
func Fields(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	delete(fields, "id")
	return fields, nil
}
