package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 广告投放与统计指标
// 每个实例使用独立 Registry，所有方法对 nil 接收者安全。
type Metrics struct {
	registry *prometheus.Registry

	Picks     *prometheus.CounterVec
	Events    *prometheus.CounterVec
	PostViews *prometheus.CounterVec
	PruneRows *prometheus.CounterVec
}

// New 创建并注册指标
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Picks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ads_picks_total",
				Help:      "Total number of ad slot selections by result",
			},
			[]string{"result"},
		),
		Events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ads_events_total",
				Help:      "Total number of tracked ad events by type and result",
			},
			[]string{"type", "result"},
		),
		PostViews: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "post_views_total",
				Help:      "Total number of post view beacons by result",
			},
			[]string{"result"},
		),
		PruneRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ads_events_pruned_total",
				Help:      "Total number of raw ad event rows removed by retention",
			},
			[]string{"type"},
		),
	}
}

// ObservePick 记录一次选取结果
func (m *Metrics) ObservePick(result string) {
	if m == nil {
		return
	}
	m.Picks.WithLabelValues(result).Inc()
}

// ObserveEvent 记录一次曝光/点击处理结果
func (m *Metrics) ObserveEvent(eventType, result string) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(eventType, result).Inc()
}

// ObservePostView 记录一次文章浏览处理结果
func (m *Metrics) ObservePostView(result string) {
	if m == nil {
		return
	}
	m.PostViews.WithLabelValues(result).Inc()
}

// ObservePrune 记录清理的原始日志行数
func (m *Metrics) ObservePrune(eventType string, rows int64) {
	if m == nil || rows <= 0 {
		return
	}
	m.PruneRows.WithLabelValues(eventType).Add(float64(rows))
}

// Gatherer 返回底层采集器
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Gatherer(), promhttp.HandlerOpts{})
}
