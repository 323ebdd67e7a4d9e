package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	lockSuffix  = ":solve_lock"
	lockExpiry  = 30 * time.Second
	lockRetries = 64
)

// RedisRunCache keeps finished runs in Redis as BSON documents with a TTL.
type RedisRunCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisRunCache initializes a RedisRunCache with the provided Redis client and TTL.
func NewRedisRunCache(client *redis.Client, ttlSeconds int) (*RedisRunCache, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", ttlSeconds)
	}
	cache := &RedisRunCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// Get returns i.ErrCacheMiss when key is absent or expired.
func (c *RedisRunCache) Get(ctx context.Context, key string) (*dmn.Run, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, i.ErrCacheMiss
		}
		return nil, err
	}
	return decodeRun(raw)
}

// Set stores run under key for the cache TTL.
func (c *RedisRunCache) Set(ctx context.Context, key string, run *dmn.Run) error {
	raw, err := encodeRun(run)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Lock takes a distributed lock on key so that only one instance solves it.
func (c *RedisRunCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(key+lockSuffix,
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(lockRetries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func encodeRun(run *dmn.Run) ([]byte, error) {
	if run == nil {
		return nil, errors.New("nil run")
	}
	return bson.Marshal(run)
}

func decodeRun(raw []byte) (*dmn.Run, error) {
	var run dmn.Run
	if err := bson.Unmarshal(raw, &run); err != nil {
		return nil, fmt.Errorf("decoding cached run: %w", err)
	}
	return &run, nil
}
