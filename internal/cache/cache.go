package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/notesentry/notesentry/internal/config"
	"github.com/notesentry/notesentry/internal/scrub"
)

// Entry is a cached redaction result.
type Entry struct {
	Text     string      `json:"text"`
	Stats    scrub.Stats `json:"stats"`
	CachedAt time.Time   `json:"cached_at"`
}

// Stats reports cache performance counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Cache stores redaction results in Redis, keyed by a digest of the input
// text and the skip set. The engine is deterministic, so a hit is always
// byte-identical to recomputing.
type Cache struct {
	client *redis.Client
	config *config.CacheConfig
	logger *zap.Logger
	hits   int64
	misses int64
}

// New creates a Redis-backed result cache and verifies connectivity.
func New(cfg *config.CacheConfig, logger *zap.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = cfg.MaxConnections
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	c := &Cache{
		client: client,
		config: cfg,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Result cache initialized",
		zap.String("redis_url", maskRedisURL(cfg.RedisURL)),
		zap.Int("max_connections", cfg.MaxConnections),
		zap.Duration("default_ttl", cfg.DefaultTTL))

	return c, nil
}

// Key derives the cache key for an input and skip set. Skip names are
// emitted in declaration order, so equivalent sets produce the same key.
func (c *Cache) Key(text string, skip scrub.SkipSet) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(skip.Names(), ",")))
	return c.config.KeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get looks up a cached result. A lookup failure of any kind is reported as
// a miss so the caller simply recomputes.
func (c *Cache) Get(ctx context.Context, key string) (*Entry, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	} else if err != nil {
		atomic.AddInt64(&c.misses, 1)
		c.logger.Error("Cache lookup failed", zap.Error(err))
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		c.logger.Error("Failed to unmarshal cached entry", zap.Error(err))
		// Delete corrupted cache entry
		c.client.Del(ctx, key)
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	return &entry, true
}

// Set stores a redaction result under the key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.config.DefaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Stats returns hit/miss counters since startup.
func (c *Cache) Stats() Stats {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	stats := Stats{Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats
}

// Close releases the Redis connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// maskRedisURL hides credentials in the URL for logging
func maskRedisURL(url string) string {
	if at := strings.LastIndex(url, "@"); at != -1 {
		if scheme := strings.Index(url, "://"); scheme != -1 {
			return url[:scheme+3] + "***" + url[at:]
		}
	}
	return url
}
