// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"ad-copy-ai-api/internal/application/marketing"
	"ad-copy-ai-api/internal/application/quota"
	"ad-copy-ai-api/internal/config"
	"ad-copy-ai-api/internal/infrastructure/llm"
	"ad-copy-ai-api/internal/infrastructure/persistence/redis"
	"ad-copy-ai-api/internal/interfaces/http/handler"
	"ad-copy-ai-api/internal/interfaces/http/router"
	workflowport "ad-copy-ai-api/internal/workflow/port"
	"ad-copy-ai-api/pkg/logger"
)

// ProvideRedisClient 创建 Redis 客户端
// 未启用时返回 nil，限流窗口回退到进程内存储
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}

	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn(ctx, "failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}

// ProvideQuotaStore 选择限流窗口存储：Redis 优先，否则进程内存
func ProvideQuotaStore(client *redis.Client) quota.Store {
	if client != nil {
		return redis.NewQuotaStore(client)
	}
	return quota.NewMemoryStore()
}

// ProvideLimiter 创建固定窗口限流器
func ProvideLimiter(cfg *config.Config, store quota.Store) quota.Limiter {
	return quota.NewFixedWindowLimiter(store, cfg.Security.RateLimit.Limit, cfg.Security.RateLimit.Window)
}

// ProvideChatModelFactory 创建 LLM 工厂
func ProvideChatModelFactory(cfg *config.Config) workflowport.ChatModelFactory {
	return llm.NewEinoFactory(cfg)
}

// QuotaSet 限流相关依赖
var QuotaSet = wire.NewSet(
	ProvideRedisClient,
	ProvideQuotaStore,
	ProvideLimiter,
)

// MarketingSet 文案生成相关依赖
var MarketingSet = wire.NewSet(
	ProvideChatModelFactory,
	marketing.NewCopyGenerator,
)

// HTTPSet HTTP 层依赖
var HTTPSet = wire.NewSet(
	handler.NewMarketingHandler,
	handler.NewHealthHandler,
	router.New,
)
