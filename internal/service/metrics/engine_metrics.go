package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	EngineLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dealsense",
			Subsystem: "engine",
			Name:      "latency_seconds",
			Help:      "Latency of engine operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	EngineErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealsense",
			Subsystem: "engine",
			Name:      "errors_total",
			Help:      "Errors by engine operation",
		},
		[]string{"operation"},
	)

	ProfileCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealsense",
			Subsystem: "engine",
			Name:      "profile_cache_total",
			Help:      "Preference-profile cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(EngineLatency, EngineErrors, ProfileCacheHits)
	})
}
