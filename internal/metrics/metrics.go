// Package metrics exposes Prometheus collectors for the course API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the course API collectors.
	Registry = prometheus.NewRegistry()

	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courseapi",
			Subsystem: "dispatch",
			Name:      "requests_total",
			Help:      "Dispatched requests by matched route and response status.",
		},
		[]string{"route", "status"},
	)

	ratingUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "courseapi",
			Subsystem: "catalog",
			Name:      "rating_updates_total",
			Help:      "Ratings replaced through POST /rating/.",
		},
	)

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "courseapi",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "courseapi",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"method", "status"},
	)
)

func init() {
	Registry.MustRegister(
		dispatchTotal,
		ratingUpdates,
		httpInFlight,
		httpDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordDispatch counts one dispatched request.
func RecordDispatch(route string, status int) {
	dispatchTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func RecordRatingUpdate() {
	ratingUpdates.Inc()
}

// InstrumentHandler wraps next with in-flight and latency collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		httpDuration.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
