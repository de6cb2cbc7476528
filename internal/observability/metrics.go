// Package observability holds Prometheus metrics and OpenTelemetry tracing
// bootstrap for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ImageUploads counts recipe image uploads by outcome (accepted, rejected, failed).
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_image_uploads_total",
		Help: "Total number of recipe image uploads by outcome",
	}, []string{"outcome"})

	// CacheHits counts cache-aside lookups by result (hit, miss, bypass).
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_cache_lookups_total",
		Help: "Total number of cache-aside lookups by result",
	}, []string{"result"})
)
