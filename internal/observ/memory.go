package observ

import (
	"runtime"
	"sync"
	"time"
)

// DefaultGCThreshold is the heap size above which a sample hints the
// runtime to collect.
const DefaultGCThreshold = 2 << 30 // 2 GiB

// MemSample is one point-in-time heap measurement.
type MemSample struct {
	At        time.Time
	HeapBytes uint64
}

// MemSampler records heap usage during long generation loops. Above the
// threshold it hints a collection. Sampling is an optimization signal
// only; removing it never changes generated output. All methods are
// nil-safe so call sites need no guards.
type MemSampler struct {
	// GCThreshold is the heap size that triggers a collection hint.
	// <= 0 uses DefaultGCThreshold.
	GCThreshold uint64

	mu      sync.Mutex
	samples []MemSample
}

// Sample records the current heap size and hints a collection when the
// heap exceeds the threshold.
func (m *MemSampler) Sample() {
	if m == nil {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m.mu.Lock()
	m.samples = append(m.samples, MemSample{At: time.Now(), HeapBytes: ms.HeapAlloc})
	m.mu.Unlock()

	threshold := m.GCThreshold
	if threshold <= 0 {
		threshold = DefaultGCThreshold
	}
	if ms.HeapAlloc > threshold {
		runtime.GC()
	}
}

// PeakMB returns the largest sampled heap size in MiB.
func (m *MemSampler) PeakMB() float64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var peak uint64
	for _, s := range m.samples {
		if s.HeapBytes > peak {
			peak = s.HeapBytes
		}
	}
	return float64(peak) / (1 << 20)
}

// AverageMB returns the mean sampled heap size in MiB.
func (m *MemSampler) AverageMB() float64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.samples) == 0 {
		return 0
	}
	var sum uint64
	for _, s := range m.samples {
		sum += s.HeapBytes
	}
	return float64(sum) / float64(len(m.samples)) / (1 << 20)
}
