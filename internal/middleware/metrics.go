package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/garage-coop/internal/domain/role"
)

// Metrics holds the HTTP and authorization collectors:
//
//	http_request_duration_seconds{method,path,status}
//	http_requests_inflight
//	http_request_errors_total{method,path,status}
//	gate_decisions_total{threshold,decision}
type Metrics struct {
	reqDuration   *prometheus.HistogramVec
	reqInflight   prometheus.Gauge
	reqErrors     *prometheus.CounterVec
	gateDecisions *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers its collectors on reg. Tests pass a fresh
// prometheus.NewRegistry().
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "path", "status"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_inflight",
			Help:      "HTTP requests currently being served.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_request_errors_total",
			Help:      "Requests that finished with a 4xx or 5xx status.",
		}, []string{"method", "path", "status"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Authorization gate outcomes by threshold.",
		}, []string{"threshold", "decision"}),
		gatherer: reg,
	}

	reg.MustRegister(m.reqDuration, m.reqInflight, m.reqErrors, m.gateDecisions)
	return m
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.reqInflight.Inc()
		c.Next()
		m.reqInflight.Dec()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.reqDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

		if c.Writer.Status() >= 400 {
			m.reqErrors.WithLabelValues(method, path, status).Inc()
		}
	}
}

// ObserveGate matches usecase/role.DecisionObserver.
func (m *Metrics) ObserveGate(threshold role.Threshold, decision string) {
	m.gateDecisions.WithLabelValues(string(threshold), decision).Inc()
}

func (m *Metrics) RegisterMetricsEndpoint(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})))
}
