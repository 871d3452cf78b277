package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 探测指标
	DiscoveryProbes  *prometheus.CounterVec
	GoogleOverrides  prometheus.Counter
	DiscoveryCacheOK prometheus.Counter

	// 规范化指标
	MappingFailures *prometheus.CounterVec

	// 提供商调用指标
	ProviderCallDuration *prometheus.HistogramVec
	ProviderCallErrors   *prometheus.CounterVec

	// 认证指标
	AuthAttempts *prometheus.CounterVec

	// 错误指标
	ErrorsTotal *prometheus.CounterVec
	PanicsTotal prometheus.Counter

	// 限流指标
	RateLimitBlocks *prometheus.CounterVec
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailgate_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mailgate_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		DiscoveryProbes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailgate_discovery_probes_total",
				Help: "Total number of DNS discovery probes",
			},
			[]string{"kind", "outcome"},
		),

		GoogleOverrides: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailgate_discovery_google_overrides_total",
				Help: "Total number of Google MX overrides applied",
			},
		),

		DiscoveryCacheOK: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailgate_discovery_cache_hits_total",
				Help: "Total number of discovery cache hits",
			},
		),

		MappingFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailgate_mapping_failures_total",
				Help: "Total number of entity mapping failures",
			},
			[]string{"entity"},
		),

		ProviderCallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mailgate_provider_call_duration_seconds",
				Help:    "Provider call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		ProviderCallErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailgate_provider_call_errors_total",
				Help: "Total number of failed provider calls",
			},
			[]string{"operation"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailgate_auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
			[]string{"outcome"},
		),

		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailgate_errors_total",
				Help: "Total number of errors",
			},
			[]string{"type", "component"},
		),

		PanicsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailgate_panics_total",
				Help: "Total number of panics",
			},
		),

		RateLimitBlocks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailgate_rate_limit_blocks_total",
				Help: "Total number of rate limit blocks",
			},
			[]string{"type"},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDiscoveryProbe 记录一次 DNS 探测结果
func (m *Metrics) RecordDiscoveryProbe(kind, outcome string) {
	if m == nil {
		return
	}
	m.DiscoveryProbes.WithLabelValues(kind, outcome).Inc()
}

// RecordGoogleOverride 记录一次 Google MX 改写
func (m *Metrics) RecordGoogleOverride() {
	if m == nil {
		return
	}
	m.GoogleOverrides.Inc()
}

// RecordDiscoveryCacheHit 记录探测缓存命中
func (m *Metrics) RecordDiscoveryCacheHit() {
	if m == nil {
		return
	}
	m.DiscoveryCacheOK.Inc()
}

// RecordMappingFailure 记录实体映射失败
func (m *Metrics) RecordMappingFailure(entity string) {
	if m == nil {
		return
	}
	m.MappingFailures.WithLabelValues(entity).Inc()
}

// RecordProviderCall 记录提供商调用耗时与结果
func (m *Metrics) RecordProviderCall(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.ProviderCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.ProviderCallErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAuthAttempt 记录认证尝试
func (m *Metrics) RecordAuthAttempt(outcome string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(outcome).Inc()
}

// RecordError 记录错误
func (m *Metrics) RecordError(errorType, component string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType, component).Inc()
}

// RecordPanic 记录 panic
func (m *Metrics) RecordPanic() {
	if m == nil {
		return
	}
	m.PanicsTotal.Inc()
}

// RecordRateLimitBlock 记录限流阻止
func (m *Metrics) RecordRateLimitBlock(limitType string) {
	if m == nil {
		return
	}
	m.RateLimitBlocks.WithLabelValues(limitType).Inc()
}

// HTTPHandler 返回 Prometheus HTTP 处理器
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
