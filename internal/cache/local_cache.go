// Package cache 提供进程内的探测结果缓存（L1 缓存）。
package cache

import (
	"context"
	"sync"
	"time"

	"mailgate/backend/internal/domain"
)

// Local 本地探测结果缓存。
//
// 特点：
// - 使用 sync.Map 实现无锁读取
// - 支持逐条 TTL 过期
// - 后台定期清理过期条目
type Local struct {
	data sync.Map
	ttl  time.Duration
	stop chan struct{}
	once sync.Once
}

type entry struct {
	result    *domain.DiscoveryResult
	expiresAt time.Time
}

// NewLocal 创建本地缓存。ttl 是写入未指定时的默认过期时间。
func NewLocal(ttl time.Duration) *Local {
	c := &Local{ttl: ttl, stop: make(chan struct{})}
	go c.cleanupLoop()
	return c
}

// Get 读取主体的探测结果。
func (c *Local) Get(_ context.Context, principal string) (*domain.DiscoveryResult, bool) {
	val, ok := c.data.Load(principal)
	if !ok {
		return nil, false
	}
	e := val.(*entry)
	if time.Now().After(e.expiresAt) {
		c.data.Delete(principal)
		return nil, false
	}
	return e.result, true
}

// Set 写入主体的探测结果。
func (c *Local) Set(_ context.Context, principal string, result *domain.DiscoveryResult, ttl time.Duration) {
	if ttl == 0 {
		ttl = c.ttl
	}
	c.data.Store(principal, &entry{result: result, expiresAt: time.Now().Add(ttl)})
}

// Delete 删除主体的探测结果。
func (c *Local) Delete(principal string) {
	c.data.Delete(principal)
}

// Close 停止后台清理。
func (c *Local) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Local) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.data.Range(func(key, value any) bool {
				if now.After(value.(*entry).expiresAt) {
					c.data.Delete(key)
				}
				return true
			})
		}
	}
}
