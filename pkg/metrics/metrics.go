// Package metrics 提供基于Prometheus的指标收集
//
// # 指标分类
//
// 1. HTTP指标：请求总数、耗时、正在处理的请求数（由中间件记录）
// 2. 目录业务指标：增删改次数、表单校验失败次数、被依赖拦截的删除次数
// 3. 基础设施指标：熔断器状态、消息发布/消费
//
// # 使用示例
//
//	// 1. 启动时初始化
//	metrics.InitMetrics()
//
//	// 2. 在gin路由上暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 业务代码记录指标（未初始化时为空操作）
//	metrics.RecordMutation("author", "created")
//
// # 命名规范
//
//   - Counter以_total结尾
//   - Histogram以单位结尾（_seconds）
//   - 标签只用有限取值（entity、action、method），不要用ID做标签
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/catalog/author/:id）、status（200/302/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 目录业务指标

	// CatalogMutationsTotal 实体增删改次数
	// 标签：entity（author/book/genre/bookinstance）、action（created/updated/deleted）
	CatalogMutationsTotal *prometheus.CounterVec

	// ValidationFailuresTotal 表单校验失败次数（表单被重新渲染）
	ValidationFailuresTotal *prometheus.CounterVec

	// DeletesBlockedTotal 因存在依赖记录被拦截的删除次数
	DeletesBlockedTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：routing_key、result（success/failure/rejected）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数
	// 标签：queue、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec

	// MessageProcessingDuration 消息处理耗时（Histogram）
	MessageProcessingDuration prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 页面渲染+存储读写，覆盖1ms到10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	CatalogMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "目录实体增删改次数",
		},
		[]string{"entity", "action"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_validation_failures_total",
			Help: "表单校验失败次数",
		},
		[]string{"entity"},
	)

	DeletesBlockedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_deletes_blocked_total",
			Help: "因存在依赖记录被拦截的删除次数",
		},
		[]string{"entity"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"routing_key", "result"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_processing_duration_seconds",
			Help:    "消息处理耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
}

// =========================================
// 业务便捷函数（未初始化时为空操作，测试中无需InitMetrics）
// =========================================

// RecordMutation 记录一次增删改
func RecordMutation(entity, action string) {
	if CatalogMutationsTotal != nil {
		CatalogMutationsTotal.WithLabelValues(entity, action).Inc()
	}
}

// RecordValidationFailure 记录一次表单校验失败
func RecordValidationFailure(entity string) {
	if ValidationFailuresTotal != nil {
		ValidationFailuresTotal.WithLabelValues(entity).Inc()
	}
}

// RecordDeleteBlocked 记录一次被拦截的删除
func RecordDeleteBlocked(entity string) {
	if DeletesBlockedTotal != nil {
		DeletesBlockedTotal.WithLabelValues(entity).Inc()
	}
}

// RecordPublish 记录一次消息发布
func RecordPublish(routingKey, result string) {
	if MessagesPublishedTotal != nil {
		MessagesPublishedTotal.WithLabelValues(routingKey, result).Inc()
	}
}

// SetBreakerState 记录熔断器状态
func SetBreakerState(name string, state float64) {
	if CircuitBreakerState != nil {
		CircuitBreakerState.WithLabelValues(name).Set(state)
	}
}

// =========================================
// 通用便捷函数
// =========================================

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
