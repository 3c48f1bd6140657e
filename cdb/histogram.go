package cdb

import "sync"

// Histogram counts clauses by length, bucketing everything beyond
// maxLength into one overflow bucket. Grounded on ClauseHistogram's
// use throughout default_sharing_manager.cpp (hist.increment(size) at
// produce/admit/discard points) and reimplemented lock-protected since
// multiple producer goroutines share one Database.
type Histogram struct {
	mu      sync.Mutex
	buckets []int64 // index 0 unused, 1..maxLength exact, maxLength+1 overflow
}

// NewHistogram creates a histogram sized for clause lengths up to
// maxLength.
func NewHistogram(maxLength int32) *Histogram {
	if maxLength < 1 {
		maxLength = 1
	}
	return &Histogram{buckets: make([]int64, maxLength+2)}
}

// Increment records one clause of the given length.
func (h *Histogram) Increment(length int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if length >= len(h.buckets) {
		length = len(h.buckets) - 1
	}
	if length < 0 {
		length = 0
	}
	h.buckets[length]++
}

// Snapshot returns a copy of the current bucket counts, index i
// holding the count of clauses of length i (last index is overflow).
func (h *Histogram) Snapshot() []int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]int64, len(h.buckets))
	copy(out, h.buckets)
	return out
}

// Total returns the sum of all recorded clauses.
func (h *Histogram) Total() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	var t int64
	for _, v := range h.buckets {
		t += v
	}
	return t
}
