package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/agendahub/scheduler/internal/domain/booking"
)

// SlotCache keeps computed slot lists in redis for a short TTL. Availability
// reads are allowed to go stale (the create path re-checks), so cache
// failures are logged and otherwise ignored.
type SlotCache struct {
	rdb *redis.Client
	log *zap.Logger
	ttl time.Duration
}

func NewSlotCache(rdb *redis.Client, log *zap.Logger, ttl time.Duration) *SlotCache {
	return &SlotCache{rdb: rdb, log: log, ttl: ttl}
}

func slotKey(tenantID, resourceID, serviceID uint, date string) string {
	return fmt.Sprintf("slots:%d:%d:%s:%d", tenantID, resourceID, date, serviceID)
}

func (c *SlotCache) Get(
	ctx context.Context,
	tenantID, resourceID, serviceID uint,
	date string,
) ([]domain.TimeSlot, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slotKey(tenantID, resourceID, serviceID, date)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("slot cache read failed", zap.Error(err))
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(
	ctx context.Context,
	tenantID, resourceID, serviceID uint,
	date string,
	slots []domain.TimeSlot,
) {

	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, slotKey(tenantID, resourceID, serviceID, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn("slot cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached slot list for the resource and day,
// regardless of service. Called after any write that shifts the day's
// bookings.
func (c *SlotCache) Invalidate(ctx context.Context, tenantID, resourceID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}

	pattern := fmt.Sprintf("slots:%d:%d:%s:*", tenantID, resourceID, date)
	iter := c.rdb.Scan(ctx, 0, pattern, 50).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("slot cache invalidation failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("slot cache invalidation failed", zap.Error(err))
	}
}
