// Package quota 提供按客户端的固定窗口限流
package quota

import (
	"context"
	"time"
)

// WindowState 单个客户端在当前窗口内的计数状态
type WindowState struct {
	// Count 本窗口内已观察到的请求数（含本次）
	Count int
	// ResetAt 窗口滚动时间
	ResetAt time.Time
}

// Store 按 key 维护窗口状态的存储
// Incr 必须按 key 原子地执行“读取-判定-写入”：窗口已过期则以 Count=1
// 重建窗口，否则计数加一。返回自增后的状态。
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (WindowState, error)
}

// Decision 一次限流判定结果
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter 距窗口滚动的剩余时长
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.ResetAt.Before(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}

// Limiter 限流器接口
type Limiter interface {
	Check(ctx context.Context, key string) (Decision, error)
}

// FixedWindowLimiter 固定窗口限流器
// 计数与窗口状态全部委托给 Store，便于在进程内存储和
// 分布式存储之间切换而不触碰处理逻辑
type FixedWindowLimiter struct {
	store  Store
	limit  int
	window time.Duration
}

// NewFixedWindowLimiter 创建固定窗口限流器
func NewFixedWindowLimiter(store Store, limit int, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// Check 判定 key 在当前窗口内是否还允许一次请求
func (l *FixedWindowLimiter) Check(ctx context.Context, key string) (Decision, error) {
	state, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{
		Limit:   l.limit,
		ResetAt: state.ResetAt,
	}
	if state.Count > l.limit {
		d.Allowed = false
		d.Remaining = 0
		return d, nil
	}
	d.Allowed = true
	d.Remaining = l.limit - state.Count
	return d, nil
}
