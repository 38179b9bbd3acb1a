// Package cache holds serialized API list responses between mutations.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
)

var ErrMiss = errors.New("cache miss")

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr adds one to the integer at key, starting from zero, and returns
	// the new value. Get on that key yields the decimal form.
	Incr(ctx context.Context, key string) (int64, error)
}

type Options struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New builds the configured backend. For redis the connection is checked once.
func New(ctx context.Context, opt Options) (KV, error) {
	switch opt.Driver {
	case DriverMemory, "":
		return NewMemoryKV(), nil
	case DriverNone:
		return Noop{}, nil
	case DriverRedis:
		c := redis.NewClient(&redis.Options{
			Addr:     opt.RedisAddr,
			Password: opt.RedisPassword,
			DB:       opt.RedisDB,
		})
		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("redis ping %s: %w", opt.RedisAddr, err)
		}
		return NewRedisKV(c), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", opt.Driver)
	}
}

//
// REDIS
//

type RedisKV struct {
	c *redis.Client
}

func NewRedisKV(c *redis.Client) *RedisKV { return &RedisKV{c: c} }

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.c.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.c.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.c.Del(ctx, keys...).Err()
}

func (r *RedisKV) Incr(ctx context.Context, key string) (int64, error) {
	return r.c.Incr(ctx, key).Result()
}

func (r *RedisKV) Close() error { return r.c.Close() }

//
// IN-PROCESS
//

type MemoryKV struct {
	c *gocache.Cache
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{c: gocache.New(5*time.Minute, time.Minute)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", ErrMiss
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	default:
		return "", ErrMiss
	}
}

// Set with ttl 0 keeps the entry until it is deleted.
func (m *MemoryKV) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.c.Delete(k)
	}
	return nil
}

// Incr keeps counters until they are deleted.
func (m *MemoryKV) Incr(_ context.Context, key string) (int64, error) {
	_ = m.c.Add(key, int64(0), gocache.NoExpiration)
	return m.c.IncrementInt64(key, 1)
}

//
// DISABLED
//

type Noop struct{}

func (Noop) Get(context.Context, string) (string, error)              { return "", ErrMiss }
func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                  { return nil }
func (Noop) Incr(context.Context, string) (int64, error)              { return 0, nil }
