package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "itijobs_admin"

// Metrics - набор счетчиков сервиса. Все методы безопасны для nil.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	EmployerDecisions    *prometheus.CounterVec
	UsersDeleted         prometheus.Counter
	NotificationFailures prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		EmployerDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "employer_decisions_total",
			Help:      "Employer registration decisions by outcome.",
		}, []string{"decision"}),
		UsersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_deleted_total",
			Help:      "Users deleted by administrators.",
		}),
		NotificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Registration review emails that could not be sent.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.EmployerDecisions,
		m.UsersDeleted,
		m.NotificationFailures,
	)
	return m
}

func (m *Metrics) EmployerApproved() {
	if m != nil {
		m.EmployerDecisions.WithLabelValues("approved").Inc()
	}
}

func (m *Metrics) EmployerRejected() {
	if m != nil {
		m.EmployerDecisions.WithLabelValues("rejected").Inc()
	}
}

func (m *Metrics) UserDeleted() {
	if m != nil {
		m.UsersDeleted.Inc()
	}
}

func (m *Metrics) NotificationFailed() {
	if m != nil {
		m.NotificationFailures.Inc()
	}
}

// Middleware считает запросы по шаблону маршрута, а не по сырому пути
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
