package dataparser

import (
	"sync"
	"testing"
	"time"

	"github.com/gofhir/dataparser/value"
)

func TestMetrics_Basic(t *testing.T) {
	m := NewMetrics()

	if m.ParsesTotal() != 0 {
		t.Errorf("ParsesTotal() = %d; want 0", m.ParsesTotal())
	}

	m.RecordParse(100*time.Millisecond, []any{value.Boolean{Value: true}})

	if m.ParsesTotal() != 1 {
		t.Errorf("ParsesTotal() = %d; want 1", m.ParsesTotal())
	}
	if m.ParsesMatched() != 1 {
		t.Errorf("ParsesMatched() = %d; want 1", m.ParsesMatched())
	}
	if m.ResultsTotal() != 1 {
		t.Errorf("ResultsTotal() = %d; want 1", m.ResultsTotal())
	}
}

func TestMetrics_MatchRate(t *testing.T) {
	m := NewMetrics()

	// No parses yet
	if rate := m.MatchRate(); rate != 0 {
		t.Errorf("MatchRate() = %f; want 0", rate)
	}

	m.RecordParse(time.Millisecond, []any{"a"})
	m.RecordParse(time.Millisecond, []any{"b"})
	m.RecordParse(time.Millisecond, nil)

	rate := m.MatchRate()
	expected := 2.0 / 3.0
	if rate < expected-0.01 || rate > expected+0.01 {
		t.Errorf("MatchRate() = %f; want ~%f", rate, expected)
	}
}

func TestMetrics_ParseTime(t *testing.T) {
	m := NewMetrics()

	if avg := m.AverageParseTime(); avg != 0 {
		t.Errorf("AverageParseTime() = %v; want 0", avg)
	}
	if minTime := m.MinParseTime(); minTime != 0 {
		t.Errorf("MinParseTime() = %v; want 0", minTime)
	}
	if maxTime := m.MaxParseTime(); maxTime != 0 {
		t.Errorf("MaxParseTime() = %v; want 0", maxTime)
	}

	m.RecordParse(100*time.Millisecond, nil)
	m.RecordParse(200*time.Millisecond, nil)
	m.RecordParse(300*time.Millisecond, nil)

	avg := m.AverageParseTime()
	expectedAvg := 200 * time.Millisecond
	if avg < expectedAvg-time.Millisecond || avg > expectedAvg+time.Millisecond {
		t.Errorf("AverageParseTime() = %v; want ~%v", avg, expectedAvg)
	}
	if minTime := m.MinParseTime(); minTime != 100*time.Millisecond {
		t.Errorf("MinParseTime() = %v; want %v", minTime, 100*time.Millisecond)
	}
	if maxTime := m.MaxParseTime(); maxTime != 300*time.Millisecond {
		t.Errorf("MaxParseTime() = %v; want %v", maxTime, 300*time.Millisecond)
	}
}

func TestMetrics_Cache(t *testing.T) {
	m := NewMetrics()

	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()

	if m.CacheHits() != 3 {
		t.Errorf("CacheHits() = %d; want 3", m.CacheHits())
	}
	if m.CacheMisses() != 1 {
		t.Errorf("CacheMisses() = %d; want 1", m.CacheMisses())
	}
	if rate := m.CacheHitRate(); rate != 0.75 {
		t.Errorf("CacheHitRate() = %f; want 0.75", rate)
	}
}

func TestMetrics_CacheHitRate_NoDivByZero(t *testing.T) {
	m := NewMetrics()
	if rate := m.CacheHitRate(); rate != 0 {
		t.Errorf("CacheHitRate() = %f; want 0", rate)
	}
}

func TestMetrics_ResultsByKind(t *testing.T) {
	m := NewMetrics()

	d, _ := value.NewDate(2024, 1, 15)
	m.RecordParse(time.Millisecond, []any{value.Boolean{Value: true}, d})
	m.RecordParse(time.Millisecond, []any{value.Boolean{Value: false}, "raw"})

	tests := []struct {
		kind value.Kind
		want uint64
	}{
		{value.KindBoolean, 2},
		{value.KindDate, 1},
		{value.KindOther, 1},
		{value.KindNumber, 0},
	}
	for _, tt := range tests {
		if got := m.Results(tt.kind); got != tt.want {
			t.Errorf("Results(%s) = %d; want %d", tt.kind, got, tt.want)
		}
	}

	stats := m.AllKindStats()
	if len(stats) != 3 {
		t.Fatalf("len(AllKindStats()) = %d; want 3", len(stats))
	}
	if stats[0].Kind != value.KindBoolean {
		t.Errorf("AllKindStats()[0].Kind = %s; want boolean", stats[0].Kind)
	}
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordParse(100*time.Millisecond, []any{value.Boolean{Value: true}})
	m.RecordParse(200*time.Millisecond, nil)
	m.RecordCancelled()
	m.RecordCacheMiss()
	m.RecordBatch()

	s := m.Snapshot()

	if s.Timestamp.IsZero() {
		t.Error("Snapshot.Timestamp should not be zero")
	}
	if s.ParsesTotal != 2 {
		t.Errorf("Snapshot.ParsesTotal = %d; want 2", s.ParsesTotal)
	}
	if s.ParsesMatched != 1 {
		t.Errorf("Snapshot.ParsesMatched = %d; want 1", s.ParsesMatched)
	}
	if s.ParsesCancelled != 1 {
		t.Errorf("Snapshot.ParsesCancelled = %d; want 1", s.ParsesCancelled)
	}
	if s.MatchRate != 0.5 {
		t.Errorf("Snapshot.MatchRate = %f; want 0.5", s.MatchRate)
	}
	if s.MinParseTimeNs != uint64(100*time.Millisecond) {
		t.Errorf("Snapshot.MinParseTimeNs = %d; want %d", s.MinParseTimeNs, uint64(100*time.Millisecond))
	}
	if s.CacheMisses != 1 {
		t.Errorf("Snapshot.CacheMisses = %d; want 1", s.CacheMisses)
	}
	if s.BatchesTotal != 1 {
		t.Errorf("Snapshot.BatchesTotal = %d; want 1", s.BatchesTotal)
	}
	if len(s.Kinds) != 1 {
		t.Errorf("len(Snapshot.Kinds) = %d; want 1", len(s.Kinds))
	}
}

func TestMetrics_Export(t *testing.T) {
	m := NewMetrics()
	m.RecordParse(time.Millisecond, []any{value.Boolean{Value: true}})

	exported := m.Export()

	for _, key := range []string{"parses_total", "match_rate", "cache_hit_rate", "results_boolean"} {
		if _, ok := exported[key]; !ok {
			t.Errorf("Export() missing key %q", key)
		}
	}
	if exported["parses_total"] != uint64(1) {
		t.Errorf("Export()[parses_total] = %v; want 1", exported["parses_total"])
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()

	m.RecordParse(100*time.Millisecond, []any{value.Boolean{Value: true}})
	m.RecordCacheHit()
	m.RecordBatch()

	m.Reset()

	if m.ParsesTotal() != 0 {
		t.Errorf("ParsesTotal() after Reset = %d; want 0", m.ParsesTotal())
	}
	if m.CacheHits() != 0 {
		t.Errorf("CacheHits() after Reset = %d; want 0", m.CacheHits())
	}
	if m.BatchesTotal() != 0 {
		t.Errorf("BatchesTotal() after Reset = %d; want 0", m.BatchesTotal())
	}
	if m.MinParseTime() != 0 {
		t.Errorf("MinParseTime() after Reset = %v; want 0", m.MinParseTime())
	}
	if stats := m.AllKindStats(); len(stats) != 0 {
		t.Errorf("len(AllKindStats()) after Reset = %d; want 0", len(stats))
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	n := 100

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var values []any
			if i%2 == 0 {
				values = []any{value.Boolean{Value: true}}
			}
			m.RecordParse(time.Duration(i)*time.Millisecond, values)
		}(i)
	}

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				m.RecordCacheHit()
			} else {
				m.RecordCacheMiss()
			}
		}(i)
	}

	wg.Wait()

	if m.ParsesTotal() != uint64(n) {
		t.Errorf("ParsesTotal() = %d; want %d", m.ParsesTotal(), n)
	}
	if m.ParsesMatched() != uint64(n/2) {
		t.Errorf("ParsesMatched() = %d; want %d", m.ParsesMatched(), n/2)
	}
	if got := m.Results(value.KindBoolean); got != uint64(n/2) {
		t.Errorf("Results(boolean) = %d; want %d", got, n/2)
	}
	if total := m.CacheHits() + m.CacheMisses(); total != uint64(n) {
		t.Errorf("CacheHits + CacheMisses = %d; want %d", total, n)
	}
}
