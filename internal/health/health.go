package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"mailgate/backend/internal/discovery"
	"mailgate/backend/internal/storage"
)

// HealthChecker 健康检查器
type HealthChecker struct {
	health   healthcheck.Handler
	store    storage.PrincipalStore
	resolver discovery.Resolver
	logger   *zap.Logger
}

// NewHealthChecker 创建健康检查器
func NewHealthChecker(store storage.PrincipalStore, resolver discovery.Resolver, logger *zap.Logger) *HealthChecker {
	hc := &HealthChecker{
		health:   healthcheck.NewHandler(),
		store:    store,
		resolver: resolver,
		logger:   logger,
	}

	hc.addChecks()

	return hc
}

// addChecks 添加健康检查
func (hc *HealthChecker) addChecks() {
	// Goroutine 数量检查
	hc.health.AddLivenessCheck("goroutine-count", healthcheck.GoroutineCountCheck(1000))

	// 主体存储检查
	hc.health.AddLivenessCheck("store", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hc.store.Health(ctx)
	})

	// DNS 解析能力检查：探测层完全依赖解析器可用
	hc.health.AddReadinessCheck("dns", ResolverHealthCheck(hc.resolver))
}

// Handler 返回健康检查处理器
func (hc *HealthChecker) Handler() http.Handler {
	return hc.health
}

// CheckHealth 执行健康检查
func (hc *HealthChecker) CheckHealth() map[string]string {
	results := make(map[string]string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := hc.store.Health(ctx); err != nil {
		results["store"] = fmt.Sprintf("ERROR: %v", err)
	} else {
		results["store"] = "OK"
	}

	if err := ResolverHealthCheck(hc.resolver)(); err != nil {
		results["dns"] = fmt.Sprintf("ERROR: %v", err)
	} else {
		results["dns"] = "OK"
	}

	results["timestamp"] = time.Now().Format(time.RFC3339)

	return results
}

// ResolverHealthCheck DNS 解析健康检查
func ResolverHealthCheck(resolver discovery.Resolver) healthcheck.Check {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// gmail.com 的 MX 是最稳定的公共记录之一
		_, err := resolver.LookupMX(ctx, "gmail.com")
		return err
	}
}
