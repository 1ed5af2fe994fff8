package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

// Limiter admits or rejects one unit of work for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

type Config struct {
	Addr   string
	Prefix string
	Limit  int
	Window time.Duration
}

type redisLimiter struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisLimiter returns a fixed-window counter backed by INCR + EXPIRE.
func NewRedisLimiter(log *logger.Logger, cfg Config) (Limiter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive")
	}
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "quizmind:ratelimit"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisLimiter{
		log:    log.With("service", "RedisLimiter"),
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(cfg.Limit),
		window: cfg.Window,
	}, nil
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.rdb == nil {
		return false, fmt.Errorf("redis limiter not initialized")
	}
	k := l.prefix + ":" + key
	var incr *goredis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis incr: %w", err)
	}
	n := incr.Val()
	if n > l.limit {
		l.log.Debug("rate limit exceeded", "key", k, "count", n, "limit", l.limit)
		return false, nil
	}
	return true, nil
}

func (l *redisLimiter) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}

type noop struct{}

// Noop admits everything. Used when no Redis address is configured.
func Noop() Limiter { return noop{} }

func (noop) Allow(context.Context, string) (bool, error) { return true, nil }
func (noop) Close() error { return nil }
