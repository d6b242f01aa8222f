// Package metrics provides Prometheus metrics for the staggered grid engine
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector 网格引擎指标集合
type Collector struct {
	LaddersBuilt    prometheus.Counter
	OrdersSubmitted *prometheus.CounterVec
	OrdersDropped   prometheus.Counter
	FillsHandled    prometheus.Counter
	AnchorsMissing  prometheus.Counter
	RealOrders      prometheus.Gauge
	VirtualOrders   prometheus.Gauge
	ReferencePrice  prometheus.Gauge
}

// New 创建指标集合；symbol 作为固定标签
func New(symbol string) *Collector {
	labels := prometheus.Labels{"symbol": symbol}
	return &Collector{
		LaddersBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "grid_ladders_built_total",
			Help:        "完整阶梯生成次数",
			ConstLabels: labels,
		}),
		OrdersSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "grid_orders_submitted_total",
			Help:        "提交成功的订单数量",
			ConstLabels: labels,
		}, []string{"side"}),
		OrdersDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "grid_orders_dropped_total",
			Help:        "提交失败被放弃的订单数量",
			ConstLabels: labels,
		}),
		FillsHandled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "grid_fills_handled_total",
			Help:        "已处理的成交回报数量",
			ConstLabels: labels,
		}),
		AnchorsMissing: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "grid_anchors_missing_total",
			Help:        "补单时对手方向无锚点的次数",
			ConstLabels: labels,
		}),
		RealOrders: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "grid_real_orders",
			Help:        "最近一次生成周期的真实订单数量",
			ConstLabels: labels,
		}),
		VirtualOrders: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "grid_virtual_orders",
			Help:        "最近一次生成周期的虚拟订单数量",
			ConstLabels: labels,
		}),
		ReferencePrice: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "grid_reference_price",
			Help:        "最近一次生成周期使用的参考价",
			ConstLabels: labels,
		}),
	}
}

// StartServer 启动Prometheus指标服务器
func StartServer(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}
