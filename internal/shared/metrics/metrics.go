package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shop_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"method", "route"})

	ProvinceTreeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_province_tree_cache_hits_total",
		Help: "Province tree snapshot cache hits",
	})
	ProvinceTreeCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_province_tree_cache_misses_total",
		Help: "Province tree snapshot cache misses",
	})
	ProvinceTreeRebuildDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shop_province_tree_rebuild_duration_seconds",
		Help:    "Time to rebuild a province tree snapshot from the store",
		Buckets: []float64{.0005, .001, .005, .01, .02, .05, .1, .2, .5, 1},
	})
	ProvinceTreeInvalidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_province_tree_invalidations_total",
		Help: "Province tree invalidations by outcome",
	}, []string{"outcome"})

	SeedRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_seed_rows_total",
		Help: "Location seed rows by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
	prometheus.MustRegister(ProvinceTreeCacheHitsTotal)
	prometheus.MustRegister(ProvinceTreeCacheMissesTotal)
	prometheus.MustRegister(ProvinceTreeRebuildDurationSeconds)
	prometheus.MustRegister(ProvinceTreeInvalidationsTotal)
	prometheus.MustRegister(SeedRowsTotal)
}

// Handler expose registered metrics tại /metrics
func Handler() http.Handler { return promhttp.Handler() }
