package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis abre el cliente que comparten la cola de trabajos y el caché de
// precios. Falla al arranque si el servidor no responde: sin Redis no hay
// emisión asíncrona de PDFs ni correo.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = 20

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
