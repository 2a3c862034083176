package ports

import (
	"context"
	"time"
)

// Cache armazena valores serializados em JSON
type Cache interface {
	// Get retorna false quando a chave não existe
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
