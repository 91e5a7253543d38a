package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/infrastruture/csvstore"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "maze"
	lockSuffix    = ":generate_lock"
	lockExpiry    = 10 * time.Second
	lockTries     = 64
)

// Key builds the cache key of a maze from its generation parameters.
func Key(prefix string, width, height int, seed int64) string {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return fmt.Sprintf("%s:%dx%d:seed_%d", prefix, width, height, seed)
}

// RedisMazeCache stores CSV-encoded grids in Redis with TTL support.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) (*RedisMazeCache, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache ttl: %d", ttlSeconds)
	}

	c := &RedisMazeCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	c.locker = redsync.New(pool)
	return c, nil
}

// Get returns the grid stored under key.
func (c *RedisMazeCache) Get(ctx context.Context, key string) (*maze.Grid, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	g, err := csvstore.Decode(bytes.NewReader(raw))
	if err != nil {
		// A corrupt entry behaves like a miss and is dropped.
		_ = c.client.Del(ctx, key).Err()
		return nil, false, fmt.Errorf("decoding cached maze %s: %w", key, err)
	}
	return g, true, nil
}

// Set stores g under key with the cache TTL.
func (c *RedisMazeCache) Set(ctx context.Context, key string, g *maze.Grid) error {
	var buf bytes.Buffer
	if err := csvstore.Encode(&buf, g); err != nil {
		return err
	}
	return c.client.Set(ctx, key, buf.Bytes(), c.ttl).Err()
}

// Lock acquires a distributed lock for key so only one caller generates a given maze at a time.
func (c *RedisMazeCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(key+lockSuffix,
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(lockTries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}
