package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Advisory outcome labels.
const (
	OutcomeGrounded   = "grounded"
	OutcomeUngrounded = "ungrounded"
	OutcomeFailed     = "failed"
)

type collector struct {
	AdvisoryOutcomes *prometheus.CounterVec
	StreamedTokens   prometheus.Counter
	ProviderLatency  *prometheus.HistogramVec
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
	CacheRequests    *prometheus.CounterVec
	CacheHitRatio    *prometheus.GaugeVec
}

var (
	globalCollector *collector
	collectorOnce   sync.Once
)

func getCollector() *collector {
	collectorOnce.Do(func() {
		globalCollector = &collector{
			AdvisoryOutcomes: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "advisor_requests_total",
					Help: "The total number of advisory requests by outcome",
				},
				[]string{"outcome"},
			),
			StreamedTokens: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "advisor_streamed_tokens_total",
					Help: "The total number of model tokens streamed to clients",
				},
			),
			ProviderLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "advisor_provider_duration_seconds",
					Help:    "Upstream provider call duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider", "operation"},
			),
			CacheHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "advisor_snapshot_cache_hits_total",
					Help: "The total number of weather snapshot cache hits",
				},
				[]string{"cache_type"},
			),
			CacheMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "advisor_snapshot_cache_misses_total",
					Help: "The total number of weather snapshot cache misses",
				},
				[]string{"cache_type"},
			),
			CacheRequests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "advisor_snapshot_cache_requests_total",
					Help: "The total number of weather snapshot cache requests",
				},
				[]string{"cache_type"},
			),
			CacheHitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "advisor_snapshot_cache_hit_ratio",
					Help: "Weather snapshot cache hit ratio (hits/total requests)",
				},
				[]string{"cache_type"},
			),
		}
	})
	return globalCollector
}

// AdvisoryMetrics records request outcomes and upstream latency.
type AdvisoryMetrics struct {
	collector *collector
}

func NewAdvisoryMetrics() *AdvisoryMetrics {
	return &AdvisoryMetrics{collector: getCollector()}
}

func (m *AdvisoryMetrics) RecordOutcome(outcome string) {
	m.collector.AdvisoryOutcomes.WithLabelValues(outcome).Inc()
}

func (m *AdvisoryMetrics) RecordStreamedTokens(count int) {
	m.collector.StreamedTokens.Add(float64(count))
}

func (m *AdvisoryMetrics) RecordProviderLatency(provider, operation string, seconds float64) {
	m.collector.ProviderLatency.WithLabelValues(provider, operation).Observe(seconds)
}

type CacheMetrics struct {
	cacheType string
	hits      int64
	misses    int64
	total     int64
	collector *collector
	mu        sync.RWMutex
}

func NewCacheMetrics(cacheType string) *CacheMetrics {
	return &CacheMetrics{
		cacheType: cacheType,
		collector: getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.CacheHits.WithLabelValues(m.cacheType).Inc()
	m.collector.CacheRequests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.CacheMisses.WithLabelValues(m.cacheType).Inc()
	m.collector.CacheRequests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

// updateHitRatio updates the Prometheus hit ratio gauge.
// Must be called while holding the mutex.
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		ratio := float64(m.hits) / float64(m.total)
		m.collector.CacheHitRatio.WithLabelValues(m.cacheType).Set(ratio)
	}
}

func (m *CacheMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hitRatio float64
	if m.total > 0 {
		hitRatio = float64(m.hits) / float64(m.total)
	}

	return map[string]interface{}{
		"cache_type": m.cacheType,
		"hits":       m.hits,
		"misses":     m.misses,
		"total":      m.total,
		"hit_ratio":  hitRatio,
	}
}
