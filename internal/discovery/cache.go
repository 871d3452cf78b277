package discovery

import (
	"context"
	"time"

	"mailgate/backend/internal/domain"
)

// Cache 是按主体键控的探测结果缓存。实现不做主动失效，只靠
// 写入时注入的 TTL 过期。
type Cache interface {
	Get(ctx context.Context, principal string) (*domain.DiscoveryResult, bool)
	Set(ctx context.Context, principal string, result *domain.DiscoveryResult, ttl time.Duration)
}
