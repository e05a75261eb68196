// Package metrics exposes Prometheus counters for the HTTP layer and the
// solar computations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suntimes_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suntimes_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	computationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suntimes_computations_total",
			Help: "Solar computations by day condition.",
		},
		[]string{"condition"},
	)

	memoLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suntimes_memo_lookups_total",
			Help: "Memo lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(computationsTotal)
	prometheus.MustRegister(memoLookupsTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and duration for each request, labelled
// by the matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := normalizeRoute(c.FullPath())
		code := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(path, c.Request.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// normalizeRoute keeps label cardinality bounded: unmatched paths, such as
// scanner traffic, collapse to "other".
func normalizeRoute(fullPath string) string {
	if fullPath == "" {
		return "other"
	}
	return fullPath
}

// ObserveComputation counts one computed day by its condition name.
func ObserveComputation(condition string) {
	computationsTotal.WithLabelValues(condition).Inc()
}

// ObserveMemoLookup counts one memo lookup.
func ObserveMemoLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	memoLookupsTotal.WithLabelValues(result).Inc()
}
