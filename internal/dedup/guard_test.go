package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisGuardClaimOncePerDay(t *testing.T) {
	mr := miniredis.RunT(t)
	g := NewRedisGuard(NewRedisClient(mr.Addr(), "", 0), 25*time.Hour, zap.NewNop())

	ctx := context.Background()
	day := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	assert.True(t, g.Claim(ctx, "u1", "task_2h", day))
	assert.False(t, g.Claim(ctx, "u1", "task_2h", day))
	assert.True(t, g.Claim(ctx, "u1", "task_24h", day), "different type is a different key")
	assert.True(t, g.Claim(ctx, "u1", "task_2h", day.AddDate(0, 0, 1)), "next day is a different key")

	ttl := mr.TTL(Key("u1", "task_2h", day))
	assert.Equal(t, 25*time.Hour, ttl)
}

func TestRedisGuardRelease(t *testing.T) {
	mr := miniredis.RunT(t)
	g := NewRedisGuard(NewRedisClient(mr.Addr(), "", 0), time.Hour, zap.NewNop())
	ctx := context.Background()
	day := time.Now()

	require.True(t, g.Claim(ctx, "u1", "task_overdue", day))
	g.Release(ctx, "u1", "task_overdue", day)
	assert.True(t, g.Claim(ctx, "u1", "task_overdue", day))
}

func TestRedisGuardFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	g := NewRedisGuard(NewRedisClient(mr.Addr(), "", 0), time.Hour, zap.NewNop())
	mr.Close()

	assert.True(t, g.Claim(context.Background(), "u1", "task_2h", time.Now()))
}

func TestKey(t *testing.T) {
	day := time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "dedup:task_24h:abc:2026-01-02", Key("abc", "task_24h", day))
}
