// Package redis 提供 Redis 限流窗口存储实现
package redis

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"ad-copy-ai-api/internal/application/quota"
)

// QuotaStore 基于 Redis 的固定窗口存储
// INCR 在 Redis 侧原子执行，多实例部署时窗口计数全局一致
type QuotaStore struct {
	client *Client
}

// NewQuotaStore 创建 Redis 窗口存储
func NewQuotaStore(client *Client) *QuotaStore {
	return &QuotaStore{client: client}
}

// Incr 实现 quota.Store 接口
func (s *QuotaStore) Incr(ctx context.Context, key string, window time.Duration) (quota.WindowState, error) {
	ctx, span := tracer.Start(ctx, "quota.Incr")
	span.SetAttributes(
		attribute.String("quota.key", key),
		attribute.Int64("quota.window_ms", window.Milliseconds()),
	)
	defer span.End()

	redisKey := buildQuotaKey(key)

	count, err := s.client.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		span.RecordError(err)
		return quota.WindowState{}, err
	}

	// 第一次计数时设定窗口过期时间
	if count == 1 {
		if err := s.client.rdb.Expire(ctx, redisKey, window).Err(); err != nil {
			span.RecordError(err)
			return quota.WindowState{}, err
		}
		span.SetAttributes(attribute.Int64("quota.count", count))
		return quota.WindowState{
			Count:   int(count),
			ResetAt: time.Now().Add(window),
		}, nil
	}

	ttl, err := s.client.rdb.PTTL(ctx, redisKey).Result()
	if err != nil {
		span.RecordError(err)
		return quota.WindowState{}, err
	}
	// 兜底：key 意外无过期时间时重建窗口
	if ttl < 0 {
		ttl = window
		_ = s.client.rdb.Expire(ctx, redisKey, window).Err()
	}

	span.SetAttributes(attribute.Int64("quota.count", count))
	return quota.WindowState{
		Count:   int(count),
		ResetAt: time.Now().Add(ttl),
	}, nil
}

func buildQuotaKey(clientKey string) string {
	return fmt.Sprintf("ratelimit:generate:%s", clientKey)
}
