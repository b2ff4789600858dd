package feedcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis encapsula o cache de respostas dos feeds no Redis
// Prefix: namespace das chaves, ex: "feeds:"
type Redis struct {
	Client *redis.Client
	Prefix string
}

// NewRedis cria um cache Redis com o prefixo padrão "feeds:"
func NewRedis(c *redis.Client) *Redis {
	return &Redis{Client: c, Prefix: "feeds:"}
}

// Get retorna o payload em cache; ausência não é erro
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set armazena o payload com o TTL do endpoint
func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, r.Prefix+key, val, ttl).Err()
}
