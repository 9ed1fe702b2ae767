// Package dedup provides a best-effort claim on a reminder dedup key so that
// overlapping scheduler invocations rarely send the same reminder twice.
// The notification log remains the source of truth.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Guard interface {
	// Claim returns true if the caller is first to claim key today.
	Claim(ctx context.Context, userID, notificationType string, day time.Time) bool
	// Release drops a claim so a later run may try again.
	Release(ctx context.Context, userID, notificationType string, day time.Time)
}

// Key builds the (user, type, calendar day) dedup key.
func Key(userID, notificationType string, day time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%s", notificationType, userID, day.Format("2006-01-02"))
}

type redisGuard struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) Guard {
	return &redisGuard{rdb: rdb, ttl: ttl, logger: logger}
}

func (g *redisGuard) Claim(ctx context.Context, userID, notificationType string, day time.Time) bool {
	key := Key(userID, notificationType, day)
	ok, err := g.rdb.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		// redis down: fall back to the notification log check alone
		g.logger.Warn("[dedup][claim] redis unavailable", zap.String("key", key), zap.Error(err))
		return true
	}
	return ok
}

func (g *redisGuard) Release(ctx context.Context, userID, notificationType string, day time.Time) {
	key := Key(userID, notificationType, day)
	if err := g.rdb.Del(ctx, key).Err(); err != nil {
		g.logger.Warn("[dedup][release] failed", zap.String("key", key), zap.Error(err))
	}
}

type noopGuard struct{}

// NewNoopGuard is used when no redis is configured.
func NewNoopGuard() Guard { return noopGuard{} }

func (noopGuard) Claim(context.Context, string, string, time.Time) bool { return true }
func (noopGuard) Release(context.Context, string, string, time.Time)    {}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
