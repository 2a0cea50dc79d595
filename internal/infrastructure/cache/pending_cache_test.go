package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*PendingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPendingCache(client, 30*time.Second), mr
}

// fill simula el cache-aside completo: lectura fallida y escritura con la versión leída.
func fill(t *testing.T, c *PendingCache, unitID string, count int) {
	t.Helper()
	ctx := context.Background()
	_, ver, _, err := c.GetPending(ctx, unitID)
	require.NoError(t, err)
	require.NoError(t, c.SetPending(ctx, unitID, ver, count))
}

func TestPendingCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ver, ok, err := c.GetPending(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), ver)

	fill(t, c, "u1", 3)
	fill(t, c, "", 7)

	n, _, ok, err := c.GetPending(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, _, ok, err = c.GetPending(ctx, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, n)
}

func TestPendingCache_InvalidateDescartaTodo(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	fill(t, c, "u1", 3)
	fill(t, c, "", 7)

	require.NoError(t, c.Invalidate(ctx))

	_, ver, ok, err := c.GetPending(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), ver)
	_, _, ok, _ = c.GetPending(ctx, "")
	assert.False(t, ok)

	fill(t, c, "u1", 2)
	n, _, ok, _ := c.GetPending(ctx, "u1")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

// Un Invalidate entre la lectura y la escritura deja el conteo viejo fuera de la clave vigente.
func TestPendingCache_InvalidateIntermedioNoPublicaConteoViejo(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ver, ok, err := c.GetPending(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.SetPending(ctx, "u1", ver, 5))

	_, _, ok, err = c.GetPending(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPendingCache_Expira(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	fill(t, c, "u1", 3)

	mr.FastForward(31 * time.Second)

	_, _, ok, err := c.GetPending(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPendingCache_SinClienteEsNoop(t *testing.T) {
	c := NewPendingCache(nil, time.Second)
	ctx := context.Background()

	assert.NoError(t, c.SetPending(ctx, "u1", 0, 1))
	_, _, ok, err := c.GetPending(ctx, "u1")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
	assert.NoError(t, c.Ping(ctx))
}
