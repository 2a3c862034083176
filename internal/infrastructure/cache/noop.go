package cache

import (
	"context"
	"time"

	"github.com/rafabene/adboard-backend/internal/domain/ports"
)

// NoopCache é usado quando REDIS_URL não está configurado: nunca encontra nada
type NoopCache struct{}

var _ ports.Cache = NoopCache{}

func (NoopCache) Get(context.Context, string, any) (bool, error) {
	return false, nil
}

func (NoopCache) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (NoopCache) Delete(context.Context, ...string) error {
	return nil
}
