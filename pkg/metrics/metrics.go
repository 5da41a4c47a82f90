// Package metrics collects Prometheus metrics for the HTTP layer and the
// application workflow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkflowRecorder is what the application workflow reports to.
type WorkflowRecorder interface {
	RecordApplicationSubmitted()
	RecordDuplicateApplication()
	RecordStatusChange(from, to string)
}

// HTTPRecorder is what the request middleware reports to.
type HTTPRecorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
}

type Collector struct {
	applicationsSubmitted prometheus.Counter
	duplicateApplications prometheus.Counter
	statusChanges         *prometheus.CounterVec
	httpRequests          *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
}

// NewCollector registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		applicationsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_applications_submitted_total",
			Help: "Applications created.",
		}),
		duplicateApplications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_applications_duplicate_total",
			Help: "Apply attempts rejected because the student already applied.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_application_status_changes_total",
			Help: "Application status updates by previous and new status.",
		}, []string{"from", "to"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.applicationsSubmitted,
		c.duplicateApplications,
		c.statusChanges,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

func (c *Collector) RecordApplicationSubmitted() {
	c.applicationsSubmitted.Inc()
}

func (c *Collector) RecordDuplicateApplication() {
	c.duplicateApplications.Inc()
}

func (c *Collector) RecordStatusChange(from, to string) {
	c.statusChanges.WithLabelValues(from, to).Inc()
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used when metrics are not wired.
type Nop struct{}

func (Nop) RecordApplicationSubmitted()                      {}
func (Nop) RecordDuplicateApplication()                      {}
func (Nop) RecordStatusChange(from, to string)               {}
func (Nop) RecordRequest(string, string, int, time.Duration) {}
