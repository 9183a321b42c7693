// Package metrics provides Prometheus instrumentation.
//
// It pre-defines the standard HTTP metrics plus the order-workflow counters
// the operators watch: placements by result, stock reservation conflicts,
// and cart reconciliation jobs.
//
// Wire it up once during server boot:
//
//	r.Use(metrics.Middleware)
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tukoshop"

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route pattern, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = counterVec("http", "requests_total",
		"Total number of HTTP requests.", "method", "path", "status")

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// OrdersPlaced counts order placement attempts by terminal result:
	// "cleared" | "rejected" | "fatal".
	OrdersPlaced = counterVec("orders", "placed_total",
		"Order placement attempts by terminal state.", "result")

	// StockConflicts counts conditional stock decrements that lost the race
	// to a concurrent placement. Expected contention, not an error.
	StockConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "stock_conflicts_total",
		Help:      "Conditional stock decrements rejected due to contention.",
	})

	// CartReconciliations counts cart-clear retries queued after an order
	// committed but its cart lines could not be deleted in-request.
	// Status: "queued" | "success" | "failed".
	CartReconciliations = counterVec("orders", "cart_reconciliations_total",
		"Cart-clear reconciliation jobs by status.", "status")

	// QueueJobsProcessed counts processed queue jobs by status:
	// "success" | "failed".
	QueueJobsProcessed = counterVec("queue", "jobs_processed_total",
		"Total queue jobs processed.", "status")
)

// DefaultRegistry is the Prometheus registry used by the app.
// Register your own metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		// Go runtime (GC, goroutines, memory) and OS process (CPU, FDs).
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),

		RequestDuration,
		RequestTotal,
		RequestInFlight,
		OrdersPlaced,
		StockConflicts,
		CartReconciliations,
		QueueJobsProcessed,
	)
}

// Register adds a prometheus.Collector to the registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// routePattern returns the chi route pattern ("/api/products/{id}") rather
// than the concrete path, keeping label cardinality bounded.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// Middleware records the duration histogram, total counter, and in-flight
// gauge for every request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		RequestInFlight.Inc()
		defer RequestInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		status := strconv.Itoa(rec.status)
		path := routePattern(r)
		RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		RequestTotal.WithLabelValues(r.Method, path, status).Inc()
	})
}

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics
// page. Mount it on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
