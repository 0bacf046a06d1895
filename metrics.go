package dataparser

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofhir/dataparser/value"
)

// Metrics tracks parse metrics using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	// Parse counts
	parsesTotal     atomic.Uint64
	parsesMatched   atomic.Uint64
	parsesCancelled atomic.Uint64
	resultsTotal    atomic.Uint64

	// Timing (stored as nanoseconds)
	parseTimeTotal atomic.Uint64
	parseTimeMin   atomic.Uint64
	parseTimeMax   atomic.Uint64

	// Registry metrics
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64

	// Batch metrics
	batchesTotal atomic.Uint64

	// Result counts by kind
	kinds sync.Map // map[value.Kind]*atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so first value becomes the minimum
	m.parseTimeMin.Store(^uint64(0))
	return m
}

// --- Recording Methods ---

// RecordParse records a completed parse and the values it produced.
func (m *Metrics) RecordParse(duration time.Duration, values []any) {
	m.parsesTotal.Add(1)
	if len(values) > 0 {
		m.parsesMatched.Add(1)
		m.resultsTotal.Add(uint64(len(values)))
	}
	for _, v := range values {
		m.kindCounter(value.KindOf(v)).Add(1)
	}

	ns := uint64(duration.Nanoseconds()) //nolint:gosec // Safe: nanoseconds are always positive for valid durations
	m.parseTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.parseTimeMin.Load()
		if ns >= old {
			break
		}
		if m.parseTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.parseTimeMax.Load()
		if ns <= old {
			break
		}
		if m.parseTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordCancelled records a parse stopped by its context.
func (m *Metrics) RecordCancelled() {
	m.parsesCancelled.Add(1)
}

// RecordCacheHit records a registry hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a registry miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// RecordBatch records a batch submitted to ParseBatch.
func (m *Metrics) RecordBatch() {
	m.batchesTotal.Add(1)
}

func (m *Metrics) kindCounter(k value.Kind) *atomic.Uint64 {
	if v, ok := m.kinds.Load(k); ok {
		return v.(*atomic.Uint64)
	}
	actual, _ := m.kinds.LoadOrStore(k, new(atomic.Uint64))
	return actual.(*atomic.Uint64)
}

// --- Query Methods ---

// ParsesTotal returns the total number of parses performed.
func (m *Metrics) ParsesTotal() uint64 {
	return m.parsesTotal.Load()
}

// ParsesMatched returns the number of parses that produced at least one value.
func (m *Metrics) ParsesMatched() uint64 {
	return m.parsesMatched.Load()
}

// ParsesCancelled returns the number of cancelled parses.
func (m *Metrics) ParsesCancelled() uint64 {
	return m.parsesCancelled.Load()
}

// ResultsTotal returns the number of values produced.
func (m *Metrics) ResultsTotal() uint64 {
	return m.resultsTotal.Load()
}

// MatchRate returns the share of parses that produced a value (0.0 to 1.0).
func (m *Metrics) MatchRate() float64 {
	total := m.parsesTotal.Load()
	if total == 0 {
		return 0
	}
	return float64(m.parsesMatched.Load()) / float64(total)
}

// AverageParseTime returns the average parse duration.
func (m *Metrics) AverageParseTime() time.Duration {
	total := m.parsesTotal.Load()
	if total == 0 {
		return 0
	}
	avgNs := m.parseTimeTotal.Load() / total
	return time.Duration(avgNs) //nolint:gosec // Safe: avgNs represents nanoseconds within int64 range
}

// MinParseTime returns the minimum parse duration.
func (m *Metrics) MinParseTime() time.Duration {
	minVal := m.parseTimeMin.Load()
	if minVal == ^uint64(0) {
		return 0
	}
	return time.Duration(minVal) //nolint:gosec // Safe: minVal represents nanoseconds within int64 range
}

// MaxParseTime returns the maximum parse duration.
func (m *Metrics) MaxParseTime() time.Duration {
	return time.Duration(m.parseTimeMax.Load()) //nolint:gosec // Safe: nanoseconds within int64 range
}

// CacheHits returns the registry hits.
func (m *Metrics) CacheHits() uint64 {
	return m.cacheHits.Load()
}

// CacheMisses returns the registry misses.
func (m *Metrics) CacheMisses() uint64 {
	return m.cacheMisses.Load()
}

// CacheHitRate returns the registry hit rate (0.0 to 1.0).
func (m *Metrics) CacheHitRate() float64 {
	hits := m.cacheHits.Load()
	misses := m.cacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// BatchesTotal returns the number of batches parsed.
func (m *Metrics) BatchesTotal() uint64 {
	return m.batchesTotal.Load()
}

// Results returns the number of values of kind k produced.
func (m *Metrics) Results(k value.Kind) uint64 {
	if v, ok := m.kinds.Load(k); ok {
		return v.(*atomic.Uint64).Load()
	}
	return 0
}

// KindStats holds the result count of one value kind.
type KindStats struct {
	Kind    value.Kind `json:"kind"`
	Results uint64     `json:"results"`
}

// AllKindStats returns the result counts of all kinds seen, sorted by kind.
func (m *Metrics) AllKindStats() []KindStats {
	var stats []KindStats
	m.kinds.Range(func(key, v any) bool {
		stats = append(stats, KindStats{
			Kind:    key.(value.Kind),
			Results: v.(*atomic.Uint64).Load(),
		})
		return true
	})
	sort.Slice(stats, func(i, j int) bool { return stats[i].Kind < stats[j].Kind })
	return stats
}

// --- Export Methods ---

// Snapshot represents a point-in-time snapshot of all metrics.
type Snapshot struct {
	// Timestamp when the snapshot was taken
	Timestamp time.Time `json:"timestamp"`

	// Parse metrics
	ParsesTotal     uint64  `json:"parses_total"`
	ParsesMatched   uint64  `json:"parses_matched"`
	ParsesCancelled uint64  `json:"parses_cancelled"`
	MatchRate       float64 `json:"match_rate"`
	ResultsTotal    uint64  `json:"results_total"`

	// Timing metrics (in nanoseconds for precision)
	AvgParseTimeNs uint64 `json:"avg_parse_time_ns"`
	MinParseTimeNs uint64 `json:"min_parse_time_ns"`
	MaxParseTimeNs uint64 `json:"max_parse_time_ns"`

	// Registry metrics
	CacheHits    uint64  `json:"cache_hits"`
	CacheMisses  uint64  `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`

	// Batch metrics
	BatchesTotal uint64 `json:"batches_total"`

	// Results by kind
	Kinds []KindStats `json:"kinds,omitempty"`
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	total := m.parsesTotal.Load()
	matched := m.parsesMatched.Load()

	var avgTime, matchRate float64
	if total > 0 {
		avgTime = float64(m.parseTimeTotal.Load()) / float64(total)
		matchRate = float64(matched) / float64(total)
	}

	minTime := m.parseTimeMin.Load()
	if minTime == ^uint64(0) {
		minTime = 0
	}

	return Snapshot{
		Timestamp:       time.Now(),
		ParsesTotal:     total,
		ParsesMatched:   matched,
		ParsesCancelled: m.parsesCancelled.Load(),
		MatchRate:       matchRate,
		ResultsTotal:    m.resultsTotal.Load(),
		AvgParseTimeNs:  uint64(avgTime),
		MinParseTimeNs:  minTime,
		MaxParseTimeNs:  m.parseTimeMax.Load(),
		CacheHits:       m.cacheHits.Load(),
		CacheMisses:     m.cacheMisses.Load(),
		CacheHitRate:    m.CacheHitRate(),
		BatchesTotal:    m.batchesTotal.Load(),
		Kinds:           m.AllKindStats(),
	}
}

// Export returns metrics as a flat map suitable for external systems.
// Per-kind counts appear as "results_<kind>".
func (m *Metrics) Export() map[string]any {
	s := m.Snapshot()
	out := map[string]any{
		"parses_total":      s.ParsesTotal,
		"parses_matched":    s.ParsesMatched,
		"parses_cancelled":  s.ParsesCancelled,
		"match_rate":        s.MatchRate,
		"results_total":     s.ResultsTotal,
		"avg_parse_time_ns": s.AvgParseTimeNs,
		"min_parse_time_ns": s.MinParseTimeNs,
		"max_parse_time_ns": s.MaxParseTimeNs,
		"cache_hits":        s.CacheHits,
		"cache_misses":      s.CacheMisses,
		"cache_hit_rate":    s.CacheHitRate,
		"batches_total":     s.BatchesTotal,
	}
	for _, k := range s.Kinds {
		out["results_"+string(k.Kind)] = k.Results
	}
	return out
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.parsesTotal.Store(0)
	m.parsesMatched.Store(0)
	m.parsesCancelled.Store(0)
	m.resultsTotal.Store(0)
	m.parseTimeTotal.Store(0)
	m.parseTimeMin.Store(^uint64(0))
	m.parseTimeMax.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.batchesTotal.Store(0)

	m.kinds.Range(func(key, _ any) bool {
		m.kinds.Delete(key)
		return true
	})
}
