package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts served requests by route and status.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "memorial",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency.
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "memorial",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// StoreCalls counts calls to the media store by operation and outcome.
	StoreCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "memorial",
		Name:      "store_calls_total",
		Help:      "Media store calls, by operation and outcome.",
	}, []string{"op", "outcome"})

	// StoreDuration observes media store call latency.
	StoreDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "memorial",
		Name:      "store_call_duration_seconds",
		Help:      "Media store call latency.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"op"})

	// Uploads counts stored uploads by kind and folder.
	Uploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "memorial",
		Name:      "uploads_total",
		Help:      "Assets stored through the upload endpoints.",
	}, []string{"kind", "folder"})
)

var registerOnce sync.Once

// InitMetrics registers the collectors with the default registry. Safe to call repeatedly.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequests, HTTPDuration, StoreCalls, StoreDuration, Uploads)
	})
}

// Middleware records request counts and latencies keyed by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveStoreCall records one media store call.
func ObserveStoreCall(op string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreCalls.WithLabelValues(op, outcome).Inc()
	StoreDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}
