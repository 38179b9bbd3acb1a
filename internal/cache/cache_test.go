package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "assets")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "assets", "[1]", 0))
	require.NoError(t, kv.Set(ctx, "brands", "[2]", time.Minute))

	v, err := kv.Get(ctx, "assets")
	require.NoError(t, err)
	assert.Equal(t, "[1]", v)

	require.NoError(t, kv.Delete(ctx, "assets", "brands", "unknown"))
	_, err = kv.Get(ctx, "brands")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryKV_Expires(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	require.NoError(t, kv.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var kv KV = Noop{}

	require.NoError(t, kv.Set(ctx, "k", "v", 0))
	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	n, err := kv.Incr(ctx, "gen:k")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryKV_Incr(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	n, err := kv.Incr(ctx, "gen:assets")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = kv.Incr(ctx, "gen:assets")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	v, err := kv.Get(ctx, "gen:assets")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	require.NoError(t, kv.Set(ctx, "assets", "[]", 0))
	_, err = kv.Incr(ctx, "assets")
	assert.Error(t, err, "a string value is not a counter")
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	kv, err := New(ctx, Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	kv, err = New(ctx, Options{Driver: DriverNone})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, kv)

	_, err = New(ctx, Options{Driver: "memcached"})
	assert.Error(t, err)
}
