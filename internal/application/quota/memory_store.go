package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 进程内窗口存储
// 互斥锁覆盖整个“读取-判定-写入”序列，并发请求不会同时抢到最后一个名额。
// 条目在窗口过期后的下一次访问时被重建，不做主动清理。
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	// now 可注入，便于测试控制时间
	now func() time.Time
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// NewMemoryStore 创建进程内窗口存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// Incr 实现 Store 接口
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (WindowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &memoryEntry{
			count:   1,
			resetAt: now.Add(window),
		}
		s.entries[key] = e
	} else {
		e.count++
	}

	return WindowState{
		Count:   e.count,
		ResetAt: e.resetAt,
	}, nil
}
