package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestRecordAxis(t *testing.T) {
	m := NewAnalysisMetrics(10)

	m.RecordAxis("sentiment", true)
	m.RecordAxis("sentiment", true)
	m.RecordAxis("sentiment", false)
	m.RecordAxis("classification", false)

	snapshot := m.Snapshot()
	axes, ok := snapshot["axes"].(map[string]AxisCounts)
	if !ok {
		t.Fatalf("axes has unexpected type %T", snapshot["axes"])
	}

	if got := axes["sentiment"]; got.Remote != 2 || got.Fallback != 1 {
		t.Errorf("sentiment = %+v, want 2 remote / 1 fallback", got)
	}
	if got := axes["classification"]; got.Remote != 0 || got.Fallback != 1 {
		t.Errorf("classification = %+v, want 0 remote / 1 fallback", got)
	}
}

func TestRecordAxisConcurrent(t *testing.T) {
	m := NewAnalysisMetrics(10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(remote bool) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordAxis("emotion", remote)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	axes := m.Snapshot()["axes"].(map[string]AxisCounts)
	counts := axes["emotion"]
	if counts.Remote+counts.Fallback != 5000 {
		t.Errorf("total = %d, want 5000", counts.Remote+counts.Fallback)
	}
}

func TestLatencyTracker(t *testing.T) {
	lt := NewLatencyTracker(100)

	if got := lt.Stats(); got.Count != 0 {
		t.Errorf("empty tracker count = %d, want 0", got.Count)
	}

	for i := 1; i <= 10; i++ {
		lt.Record(time.Duration(i) * time.Millisecond)
	}

	stats := lt.Stats()
	if stats.Count != 10 {
		t.Errorf("count = %d, want 10", stats.Count)
	}
	if stats.Min != time.Millisecond {
		t.Errorf("min = %v, want 1ms", stats.Min)
	}
	if stats.Max != 10*time.Millisecond {
		t.Errorf("max = %v, want 10ms", stats.Max)
	}
	if stats.P50 < stats.Min || stats.P50 > stats.Max {
		t.Errorf("p50 = %v outside [min, max]", stats.P50)
	}
	if stats.P95 < stats.P50 {
		t.Errorf("p95 = %v below p50 %v", stats.P95, stats.P50)
	}
}

func TestLatencyTrackerWindowBound(t *testing.T) {
	lt := NewLatencyTracker(10)

	for i := 0; i < 100; i++ {
		lt.Record(time.Millisecond)
	}

	if stats := lt.Stats(); stats.Count > 10 {
		t.Errorf("count = %d, window must stay bounded at 10", stats.Count)
	}
}
