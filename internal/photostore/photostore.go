package photostore

import "context"

// Storage guarda fotos que não cabem inline no documento; o caminho
// devolvido vira o photoUrl remoto.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
