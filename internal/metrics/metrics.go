package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// PostMutationsTotal counts post store mutations by operation (create, update, delete).
	PostMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_post_mutations_total",
			Help: "Total number of post store mutations by operation",
		},
		[]string{"op"},
	)

	// StoreRewritesTotal counts whole-file rewrites of the backing JSON files.
	StoreRewritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_store_rewrites_total",
			Help: "Total number of whole-file rewrites of backing JSON files",
		},
		[]string{"file"},
	)
)

var (
	slugPathSegment = regexp.MustCompile(`^/(posts|uploads|post|edit|delete)/[^/]+`)
	initOnce        sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, PostMutationsTotal, StoreRewritesTotal)
	})
}

// NormalizePath reduces cardinality by replacing slug path segments with {slug}.
// E.g. /posts/hello-world-2024 -> /posts/{slug}.
func NormalizePath(path string) string {
	return slugPathSegment.ReplaceAllString(path, "/$1/{slug}")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncPostMutation increments the mutation counter for op (create, update, delete).
func IncPostMutation(op string) {
	PostMutationsTotal.WithLabelValues(op).Inc()
}

// IncStoreRewrite increments the rewrite counter for the given backing file.
func IncStoreRewrite(file string) {
	StoreRewritesTotal.WithLabelValues(file).Inc()
}
