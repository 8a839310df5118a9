// Package remote provides the Redis-backed embedding cache backend.
package remote

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"simlab/types"
)

const defaultPrefix = "simlab:embed:"

// RedisBackend implements the embedding cache on Redis.
type RedisBackend struct {
	client *redis.Client
	prefix string
	config types.CacheConfig
}

// parseRedisURL parses a Redis URL or plain host:port address.
func parseRedisURL(connectionString string) (*redis.Options, error) {
	if strings.HasPrefix(connectionString, "redis://") || strings.HasPrefix(connectionString, "rediss://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}

		opts := &redis.Options{Addr: parsedURL.Host}
		if parsedURL.Scheme == "rediss" {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		if parsedURL.User != nil {
			opts.Username = parsedURL.User.Username()
			if password, ok := parsedURL.User.Password(); ok {
				opts.Password = password
			}
		}
		if parsedURL.Path != "" && parsedURL.Path != "/" {
			dbStr := strings.TrimPrefix(parsedURL.Path, "/")
			if db, err := strconv.Atoi(dbStr); err == nil {
				opts.DB = db
			}
		}
		return opts, nil
	}

	return &redis.Options{Addr: connectionString}, nil
}

// NewRedisBackend creates a new Redis backend and verifies the connection.
func NewRedisBackend(config types.CacheConfig) (*RedisBackend, error) {
	opts, err := parseRedisURL(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	if config.Username != "" {
		opts.Username = config.Username
	}
	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.Database != 0 {
		opts.DB = config.Database
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	return &RedisBackend{client: client, prefix: prefix, config: config}, nil
}

// Get retrieves a cached vector.
func (b *RedisBackend) Get(ctx context.Context, key string) ([]float64, bool, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return values, true, nil
}

// Set stores a vector with the configured TTL.
func (b *RedisBackend) Set(ctx context.Context, key string, values []float64) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.prefix+key, data, b.config.TTL).Err()
}

// Flush removes every entry under the cache prefix.
func (b *RedisBackend) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := b.client.Scan(ctx, cursor, b.prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := b.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Len counts the entries under the cache prefix.
func (b *RedisBackend) Len(ctx context.Context) (int, error) {
	var count int
	var cursor uint64
	for {
		keys, next, err := b.client.Scan(ctx, cursor, b.prefix+"*", 100).Result()
		if err != nil {
			return 0, err
		}
		count += len(keys)
		if next == 0 {
			return count, nil
		}
		cursor = next
	}
}

// Close closes the Redis connection.
func (b *RedisBackend) Close() error { return b.client.Close() }

var _ types.EmbeddingCache = (*RedisBackend)(nil)
