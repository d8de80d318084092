// Package metrics provides in-process counters for the enrichment pipeline.
package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Analysis Metrics
// =============================================================================

// AxisCounts holds remote-vs-fallback counts for one classification axis.
type AxisCounts struct {
	Remote   int64 `json:"remote"`
	Fallback int64 `json:"fallback"`
}

// AnalysisMetrics tracks how often each axis resolved remotely versus via the
// local heuristic, plus end-to-end analysis latency.
type AnalysisMetrics struct {
	mu      sync.RWMutex
	axes    map[string]*axisCounter
	latency *LatencyTracker
}

type axisCounter struct {
	remote   atomic.Int64
	fallback atomic.Int64
}

// NewAnalysisMetrics creates a metrics collector with a latency window of
// the given size.
func NewAnalysisMetrics(windowSize int) *AnalysisMetrics {
	return &AnalysisMetrics{
		axes:    make(map[string]*axisCounter),
		latency: NewLatencyTracker(windowSize),
	}
}

// RecordAxis counts one axis resolution.
func (m *AnalysisMetrics) RecordAxis(axis string, remote bool) {
	m.mu.RLock()
	c, ok := m.axes[axis]
	m.mu.RUnlock()

	if !ok {
		m.mu.Lock()
		if c, ok = m.axes[axis]; !ok {
			c = &axisCounter{}
			m.axes[axis] = c
		}
		m.mu.Unlock()
	}

	if remote {
		c.remote.Add(1)
	} else {
		c.fallback.Add(1)
	}
}

// RecordAnalysis records one full pipeline run.
func (m *AnalysisMetrics) RecordAnalysis(d time.Duration) {
	m.latency.Record(d)
}

// Snapshot returns current counts and latency stats.
func (m *AnalysisMetrics) Snapshot() map[string]any {
	m.mu.RLock()
	axes := make(map[string]AxisCounts, len(m.axes))
	for name, c := range m.axes {
		axes[name] = AxisCounts{
			Remote:   c.remote.Load(),
			Fallback: c.fallback.Load(),
		}
	}
	m.mu.RUnlock()

	stats := m.latency.Stats()
	return map[string]any{
		"axes": axes,
		"latency": map[string]any{
			"count":  stats.Count,
			"avg_ms": float64(stats.Avg.Microseconds()) / 1000.0,
			"p50_ms": float64(stats.P50.Microseconds()) / 1000.0,
			"p95_ms": float64(stats.P95.Microseconds()) / 1000.0,
			"p99_ms": float64(stats.P99.Microseconds()) / 1000.0,
		},
	}
}

// =============================================================================
// Latency Tracker
// =============================================================================

// LatencyStats summarizes a latency window.
type LatencyStats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// LatencyTracker keeps a sliding window of recent latencies for percentile
// calculation.
type LatencyTracker struct {
	mu         sync.Mutex
	samples    []int64 // microseconds
	maxSamples int
}

// NewLatencyTracker creates a tracker keeping at most windowSize samples.
func NewLatencyTracker(windowSize int) *LatencyTracker {
	if windowSize <= 0 {
		windowSize = 1000
	}
	return &LatencyTracker{
		samples:    make([]int64, 0, windowSize),
		maxSamples: windowSize,
	}
}

// Record adds one measurement.
func (lt *LatencyTracker) Record(d time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if len(lt.samples) >= lt.maxSamples {
		// Drop the oldest tenth to avoid shifting on every record.
		drop := lt.maxSamples / 10
		if drop < 1 {
			drop = 1
		}
		lt.samples = lt.samples[drop:]
	}
	lt.samples = append(lt.samples, d.Microseconds())
}

// Stats returns statistics over the current window.
func (lt *LatencyTracker) Stats() LatencyStats {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	n := len(lt.samples)
	if n == 0 {
		return LatencyStats{}
	}

	sorted := make([]int64, n)
	copy(sorted, lt.samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	for _, v := range sorted {
		sum += v
	}

	micros := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }
	pct := func(p float64) int64 {
		idx := int(p * float64(n))
		if idx >= n {
			idx = n - 1
		}
		return sorted[idx]
	}

	return LatencyStats{
		Count: int64(n),
		Min:   micros(sorted[0]),
		Max:   micros(sorted[n-1]),
		Avg:   micros(sum / int64(n)),
		P50:   micros(pct(0.50)),
		P95:   micros(pct(0.95)),
		P99:   micros(pct(0.99)),
	}
}
