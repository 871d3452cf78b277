package discovery

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/monitoring"
)

const (
	defaultPort = 443
	defaultTTL  = 30

	// googleTarget Google 托管域统一改写到该域名重新探测。
	googleTarget = "gmail.com"

	outlookHost       = "autodiscover.outlook.com"
	outlookActualHost = "autodiscover-s.outlook.com"
)

// Service 执行端点探测并维护按主体键控的结果缓存。
type Service struct {
	resolver Resolver
	cache    Cache
	cacheTTL time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewService 创建探测服务。cache 可以为 nil，此时不做缓存。
func NewService(resolver Resolver, cache Cache, cacheTTL, timeout time.Duration, logger *zap.Logger, metrics *monitoring.Metrics) *Service {
	return &Service{
		resolver: resolver,
		cache:    cache,
		cacheTTL: cacheTTL,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

// Discover 探测域名的四类服务端点。探测绝不失败：任何解析
// 错误都只表现为对应端点缺失。
func (s *Service) Discover(ctx context.Context, dom string) *domain.DiscoveryResult {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result := &domain.DiscoveryResult{Domain: dom}
	var mx []Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { result.Exchange = s.probeExchange(gctx, dom); return nil })
	g.Go(func() error { result.IMAPS = s.probeSubdomain(gctx, "imaps", "_imaps._tcp.", "imaps.", dom); return nil })
	g.Go(func() error { result.LDAP = s.probeSubdomain(gctx, "ldap", "_ldap._tcp.", "ldap.", dom); return nil })
	g.Go(func() error { result.SMTP = s.probeSMTP(gctx, dom); return nil })
	g.Go(func() error { mx = s.lookupMX(gctx, dom); return nil })
	_ = g.Wait()

	// Google 托管域：对 gmail.com 重新探测全部四类端点。
	if hasGoogleMX(mx) {
		s.metrics.RecordGoogleOverride()
		s.logger.Debug("检测到 Google 托管域", zap.String("domain", dom))

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { result.Exchange = s.probeExchange(gctx, googleTarget); return nil })
		g.Go(func() error {
			result.IMAPS = s.probeSubdomain(gctx, "imaps", "_imaps._tcp.", "imaps.", googleTarget)
			return nil
		})
		g.Go(func() error {
			result.LDAP = s.probeSubdomain(gctx, "ldap", "_ldap._tcp.", "ldap.", googleTarget)
			return nil
		})
		g.Go(func() error { result.SMTP = s.probeSMTP(gctx, googleTarget); return nil })
		_ = g.Wait()
	}

	if result.Exchange != nil && result.Exchange.Host == outlookHost {
		result.Exchange.Host = outlookActualHost
	}
	return result
}

// DiscoverPrincipal 以主体为键做读穿缓存的探测。
func (s *Service) DiscoverPrincipal(ctx context.Context, principal, dom string) *domain.DiscoveryResult {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, principal); ok {
			s.metrics.RecordDiscoveryCacheHit()
			return cached
		}
	}
	result := s.Discover(ctx, dom)
	if s.cache != nil {
		s.cache.Set(ctx, principal, result, s.cacheTTL)
	}
	return result
}

// probeExchange 探测 exchange 端点：SRV 优先，子域名兜底。
func (s *Service) probeExchange(ctx context.Context, dom string) *domain.ServiceEndpoint {
	return s.probeSubdomain(ctx, "exchange", "_autodiscover._tcp.", "autodiscover.", dom)
}

// probeSubdomain 先查 SRV，失败后退回惯用子域名的地址记录。
func (s *Service) probeSubdomain(ctx context.Context, kind, srvPrefix, subPrefix, dom string) *domain.ServiceEndpoint {
	if ep := s.probeSRV(ctx, srvPrefix+dom); ep != nil {
		s.metrics.RecordDiscoveryProbe(kind, "srv")
		return ep
	}
	records, err := s.resolver.LookupAny(ctx, subPrefix+dom)
	if err == nil && len(records) > 0 {
		if ep := standardize(records[0]); ep != nil {
			s.metrics.RecordDiscoveryProbe(kind, "subdomain")
			return ep
		}
	}
	s.metrics.RecordDiscoveryProbe(kind, "miss")
	return nil
}

// probeSMTP 只认 SRV：_smtp 优先，_submission 兜底，没有
// 子域名后备。
func (s *Service) probeSMTP(ctx context.Context, dom string) *domain.ServiceEndpoint {
	if ep := s.probeSRV(ctx, "_smtp._tcp."+dom); ep != nil {
		s.metrics.RecordDiscoveryProbe("smtp", "srv")
		return ep
	}
	if ep := s.probeSRV(ctx, "_submission._tcp."+dom); ep != nil {
		s.metrics.RecordDiscoveryProbe("smtp", "srv")
		return ep
	}
	s.metrics.RecordDiscoveryProbe("smtp", "miss")
	return nil
}

func (s *Service) probeSRV(ctx context.Context, name string) *domain.ServiceEndpoint {
	records, err := s.resolver.LookupSRV(ctx, name)
	if err != nil || len(records) == 0 {
		return nil
	}
	return standardize(records[0])
}

func (s *Service) lookupMX(ctx context.Context, dom string) []Record {
	records, err := s.resolver.LookupMX(ctx, dom)
	if err != nil {
		s.logger.Debug("MX 查询失败", zap.String("domain", dom), zap.Error(err))
		return nil
	}
	return records
}

// standardize 把一条原始记录规范化为端点。
//
// TXT 记录、缺失主机名的记录和 10.* 私网主机一律拒绝；端口
// 默认 443，TTL 默认 30。
func standardize(record Record) *domain.ServiceEndpoint {
	if record.Type == "TXT" {
		return nil
	}
	host := record.Value
	if host == "" {
		host = record.Address
	}
	if host == "" {
		host = record.Name
	}
	if host == "" {
		host = record.Exchange
	}
	if host == "" || strings.HasPrefix(host, "10.") {
		return nil
	}
	ep := &domain.ServiceEndpoint{Host: host, Port: record.Port, TTL: record.TTL}
	if ep.Port == 0 {
		ep.Port = defaultPort
	}
	if ep.TTL == 0 {
		ep.TTL = defaultTTL
	}
	return ep
}

// hasGoogleMX 报告 MX 记录集是否指向 Google 托管。
func hasGoogleMX(records []Record) bool {
	for _, r := range records {
		exchanger := strings.ToLower(r.Exchange)
		if strings.HasSuffix(exchanger, "google.com") || strings.HasSuffix(exchanger, "googlemail.com") {
			return true
		}
	}
	return false
}
