package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	store "github.com/dominio-lash/lumiere-api/internal/docstore"
)

// Chaves auxiliares no Redis:
//   - o próprio caminho do documento guarda o JSON
//   - idx:{coleção} é o conjunto de ids da coleção
//   - ch:{coleção} é o canal pub/sub notificado a cada escrita
//   - users é o conjunto de e-mails já vistos
const (
	indexPrefix   = "idx:"
	channelPrefix = "ch:"
	usersKey      = "users"
)

type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

var _ store.Store = (*RedisStore)(nil)

func splitPath(path string) (collection, id string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

func (s *RedisStore) Set(ctx context.Context, path string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	collection, id := splitPath(path)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, path, raw, 0)
	pipe.SAdd(ctx, indexPrefix+collection, id)
	if email := store.EmailFromPath(path); email != "" {
		pipe.SAdd(ctx, usersKey, email)
	}
	pipe.Publish(ctx, channelPrefix+collection, id)

	_, err = pipe.Exec(ctx)
	return err
}

// mergeRetries limita as tentativas quando outra escrita invalida a
// transação; cada retry relê o documento inteiro.
const mergeRetries = 3

func (s *RedisStore) Merge(ctx context.Context, path string, fields map[string]any) error {
	collection, id := splitPath(path)

	// WATCH/MULTI: merges concorrentes no mesmo documento precisam
	// ser serializados; quando a chave muda no meio, refazemos o
	// read-modify-write do zero.
	var err error
	for attempt := 0; attempt < mergeRetries; attempt++ {
		err = s.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, path).Bytes()
			if err == redis.Nil {
				return store.ErrNotFound
			}
			if err != nil {
				return err
			}

			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return err
			}
			for k, v := range fields {
				doc[k] = v
			}

			merged, err := json.Marshal(doc)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, path, merged, 0)
				pipe.Publish(ctx, channelPrefix+collection, id)
				return nil
			})
			return err
		}, path)

		if err != redis.TxFailedErr {
			return err
		}
	}

	return err
}

func (s *RedisStore) Delete(ctx context.Context, path string) error {
	collection, id := splitPath(path)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, path)
	pipe.SRem(ctx, indexPrefix+collection, id)
	pipe.Publish(ctx, channelPrefix+collection, id)

	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, path string) (json.RawMessage, error) {
	raw, err := s.client.Get(ctx, path).Bytes()
	if err == redis.Nil {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (s *RedisStore) GetAll(ctx context.Context, collection string) (store.Snapshot, error) {
	ids, err := s.client.SMembers(ctx, indexPrefix+collection).Result()
	if err != nil {
		return nil, err
	}

	snap := make(store.Snapshot, len(ids))
	if len(ids) == 0 {
		return snap, nil
	}

	sort.Strings(ids)
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = collection + "/" + id
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// id no índice sem documento: remoção em andamento
			continue
		}
		snap[ids[i]] = json.RawMessage(str)
	}
	return snap, nil
}

func (s *RedisStore) Watch(ctx context.Context, collection string, h store.Handler) (store.Unsubscribe, error) {
	pubsub := s.client.Subscribe(ctx, channelPrefix+collection)

	// Garante a inscrição antes do snapshot inicial para não perder
	// escritas entre a leitura e o primeiro evento.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	var once sync.Once
	done := make(chan struct{})

	go func() {
		snap, err := s.GetAll(ctx, collection)
		if err != nil {
			s.logger.Warn("initial snapshot failed",
				zap.String("collection", collection), zap.Error(err))
		} else {
			h(snap)
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				snap, err := s.GetAll(ctx, collection)
				if err != nil {
					s.logger.Warn("snapshot refresh failed",
						zap.String("collection", collection), zap.Error(err))
					continue
				}
				h(snap)
			}
		}
	}()

	unsub := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}
	return unsub, nil
}

func (s *RedisStore) Users(ctx context.Context) ([]string, error) {
	emails, err := s.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(emails)
	return emails, nil
}
