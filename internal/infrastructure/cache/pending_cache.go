package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Toner-api/internal/application/requests"
)

var _ requests.PendingCache = (*PendingCache)(nil)

const (
	pendingVersionKey = "toner:pending:version"
	allUnitsToken     = "all"
)

// PendingCache guarda en Redis el contador de solicitudes PENDING por unidad.
// Invalidate incrementa la versión global; las claves viejas expiran por TTL.
type PendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPendingCache construye la caché. Con client nil todas las operaciones son no-op.
func NewPendingCache(client *redis.Client, ttl time.Duration) *PendingCache {
	return &PendingCache{client: client, ttl: ttl}
}

func (c *PendingCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, pendingVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

func key(unitID string, version int64) string {
	if unitID == "" {
		unitID = allUnitsToken
	}
	return fmt.Sprintf("toner:pending:%s:%d", unitID, version)
}

// GetPending devuelve (n, versión, true) si hay valor vigente. En un fallo la versión
// leída sirve para SetPending.
func (c *PendingCache) GetPending(ctx context.Context, unitID string) (int, int64, bool, error) {
	if c == nil || c.client == nil {
		return 0, 0, false, nil
	}
	ver, err := c.version(ctx)
	if err != nil {
		return 0, 0, false, err
	}
	raw, err := c.client.Get(ctx, key(unitID, ver)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ver, false, nil
	}
	if err != nil {
		return 0, ver, false, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ver, false, nil
	}
	return n, ver, true, nil
}

// SetPending guarda el contador bajo la versión leída por GetPending, con el TTL configurado.
// Si otra operación invalidó entre medias, el valor queda en una clave ya obsoleta.
func (c *PendingCache) SetPending(ctx context.Context, unitID string, version int64, count int) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key(unitID, version), count, c.ttl).Err()
}

// Invalidate descarta todos los contadores en caché.
func (c *PendingCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, pendingVersionKey).Err()
}

// Ping verifica la conexión; /health lo usa como chequeo.
func (c *PendingCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
