// Package metrics exposes the server's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "foodstore",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodstore",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodstore",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	storeAppends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodstore",
			Subsystem: "store",
			Name:      "appends_total",
			Help:      "Append cycles per collection, by outcome.",
		},
		[]string{"collection", "outcome"},
	)

	storeAppendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodstore",
			Subsystem: "store",
			Name:      "append_duration_seconds",
			Help:      "Duration of the locked load-build-persist cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"collection"},
	)

	storeDegradations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodstore",
			Subsystem: "store",
			Name:      "read_degradations_total",
			Help:      "Reads that found an unparsable collection file.",
		},
		[]string{"collection"},
	)
)

// Append outcomes.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		storeAppends,
		storeAppendDuration,
		storeDegradations,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// UnmatchedRoute is the path label of requests no route matched.
const UnmatchedRoute = "unmatched"

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
// Install it with mux.Router.Use so requests are labelled by route template;
// outside a matched route every request is labelled UnmatchedRoute, which
// keeps the number of series independent of client-chosen URLs.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeLabel(r)
		if route == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return UnmatchedRoute
}

// RecordAppend records the outcome and duration of one append cycle.
func RecordAppend(collection, outcome string, duration time.Duration) {
	storeAppends.WithLabelValues(collection, outcome).Inc()
	storeAppendDuration.WithLabelValues(collection).Observe(duration.Seconds())
}

// RecordDegradation counts a read that fell back to an empty collection.
func RecordDegradation(collection string) {
	storeDegradations.WithLabelValues(collection).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
