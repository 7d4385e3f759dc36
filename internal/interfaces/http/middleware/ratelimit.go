// Package middleware 提供 HTTP 中间件
package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ad-copy-ai-api/internal/application/quota"
	"ad-copy-ai-api/internal/config"
	"ad-copy-ai-api/internal/interfaces/http/dto"
	"ad-copy-ai-api/pkg/logger"
	"ad-copy-ai-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderRateLimitLimit 窗口内允许的请求总数
	HeaderRateLimitLimit = "X-RateLimit-Limit"
	// HeaderRateLimitRemaining 窗口内剩余可用次数
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	// HeaderRateLimitReset 窗口滚动的 Unix 秒
	HeaderRateLimitReset = "X-RateLimit-Reset"

	// ContextRateLimitRemaining 处理器读取限流状态用的 Context Key
	ContextRateLimitRemaining = "ratelimit_remaining"
	// ContextRateLimitReset 处理器读取窗口滚动时间用的 Context Key
	ContextRateLimitReset = "ratelimit_reset"
)

// ClientKey 提取限流用的客户端标识
// 取 X-Forwarded-For 的第一个条目，缺失时归入 "unknown" 共享一个窗口
func ClientKey(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	return "unknown"
}

// RateLimit 固定窗口限流中间件
// 判定委托给 quota.Limiter；无论放行与否都写出 X-RateLimit-* 响应头。
func RateLimit(cfg config.RateLimitConfig, limiter quota.Limiter) gin.HandlerFunc {
	// 未启用时返回空中间件
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := ClientKey(c)

		d, err := limiter.Check(c.Request.Context(), key)
		if err != nil {
			// 限流存储故障时放行，避免影响业务
			logger.Warn(c.Request.Context(), "rate limit store unavailable, allowing request",
				"client", key,
				"error", err.Error(),
			)
			c.Next()
			return
		}

		c.Header(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
		c.Header(HeaderRateLimitReset, strconv.FormatInt(d.ResetAt.Unix(), 10))

		c.Set(ContextRateLimitRemaining, d.Remaining)
		c.Set(ContextRateLimitReset, d.ResetAt.Unix())

		if !d.Allowed {
			metrics.RateLimitDecisions.WithLabelValues("false").Inc()
			retryAfter := int(math.Ceil(d.RetryAfter(time.Now()).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			dto.AbortFail(c, http.StatusTooManyRequests,
				fmt.Sprintf("요청이 너무 많습니다. %d초 후 다시 시도해주세요.", retryAfter))
			return
		}

		metrics.RateLimitDecisions.WithLabelValues("true").Inc()
		c.Next()
	}
}
