package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStore ошибка хранилища ключей
var ErrStore = errors.New("idempotency: store error")

// RedisStore помечает обработанные ключи (id событий провайдера) через SET NX с TTL
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Acquire занимает ключ. false означает, что ключ уже занят (событие обрабатывалось)
func (s *RedisStore) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: setnx %s: %v", ErrStore, key, err)
	}
	return ok, nil
}

// Release освобождает ключ, чтобы повторная доставка события была обработана
func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrStore, key, err)
	}
	return nil
}

// NopStore пропускает всё; используется, когда Redis выключен.
// Идемпотентность тогда обеспечивается только условными UPDATE в базе.
type NopStore struct{}

func (NopStore) Acquire(context.Context, string) (bool, error) { return true, nil }
func (NopStore) Release(context.Context, string) error         { return nil }

// NewRedisClient создает клиент и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int, dialTimeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrStore, addr, err)
	}
	return client, nil
}
