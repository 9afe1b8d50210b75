// Package metrics holds the Prometheus collectors for the service and the
// HTTP instrumentation middleware.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mediateam"

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	notificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "created_total",
			Help:      "Notifications persisted, by type.",
		},
		[]string{"type"},
	)

	notificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "dispatch_failures_total",
			Help:      "Notification dispatches that failed after the triggering change was saved.",
		},
		[]string{"type"},
	)

	notificationsCleaned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "cleanup_deleted_total",
			Help:      "Read notifications removed by the retention sweep.",
		},
	)

	activityOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activity",
			Name:      "records_total",
			Help:      "Admin activity log attempts, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		notificationsCreated,
		notificationFailures,
		notificationsCleaned,
		activityOutcomes,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler exposes the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Instrument records request counts and latency by chi route pattern.
// Unmatched routes are grouped under "unmatched" to bound cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// NotificationsCreated counts n persisted notifications of type typ.
func NotificationsCreated(typ string, n int) {
	if n > 0 {
		notificationsCreated.WithLabelValues(typ).Add(float64(n))
	}
}

// NotificationFailed counts a dispatch that failed after its domain change.
func NotificationFailed(typ string) {
	notificationFailures.WithLabelValues(typ).Inc()
}

// NotificationsCleaned counts retention deletions.
func NotificationsCleaned(n int64) {
	if n > 0 {
		notificationsCleaned.Add(float64(n))
	}
}

// Activity outcomes.
const (
	OutcomeLogged = "logged"
	OutcomeFailed = "failed"
)

// ActivityRecorded counts one activity log attempt.
func ActivityRecorded(outcome string) {
	activityOutcomes.WithLabelValues(outcome).Inc()
}
