// Package filter implements the duplicate filter: an approximate,
// thread-safe set of recently-seen clauses, partitioned by clause
// length exactly as spec.md §4.2 requires. A novel clause is rejected
// only when its 64-bit fingerprint collides with one already held.
// Each length bucket holds a bounded number of fingerprints and forgets
// the oldest when full, so a clause registered long enough ago is
// admitted again.
//
// Grounded on default_sharing_manager.cpp's _process_filter /
// _solver_filters usage (registerClause / clear / setClear) and on
// the module's xxhash dependency for the per-clause fingerprint.
package filter

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/xDarkicex/sharesat/clause"
)

// bucket is one length partition's exact-fingerprint set. A real
// Bloom/cuckoo sketch would trade memory for a nonzero false-positive
// rate at fixed size; this implementation instead bounds memory by
// capping bucket size and evicting the oldest fingerprint: false
// positives come only from fingerprint collisions, and a clause whose
// fingerprint was evicted is no longer recognised as a duplicate.
type bucket struct {
	mu       sync.Mutex
	seen     map[uint64]struct{}
	order    []uint64
	capacity int
}

func newBucket(capacity int) *bucket {
	return &bucket{seen: make(map[uint64]struct{}, capacity), capacity: capacity}
}

func (b *bucket) register(h uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.seen[h]; ok {
		return false
	}
	if len(b.order) >= b.capacity {
		oldest := b.order[0]
		b.order = b.order[1:]
		delete(b.seen, oldest)
	}
	b.seen[h] = struct{}{}
	b.order = append(b.order, h)
	return true
}

func (b *bucket) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seen = make(map[uint64]struct{}, b.capacity)
	b.order = b.order[:0]
}

// Filter is the duplicate filter for one scope (one solver, or the
// process-wide filter shared by a sharing manager), partitioned into
// one bucket per clause length up to maxLength.
type Filter struct {
	buckets      []*bucket // index 1..maxLength used, 0 unused
	capacity     int
	pendingClear atomic.Bool
}

// New creates a filter covering clause lengths [1, maxLength], each
// partition capped at capacityPerLength fingerprints.
func New(maxLength, capacityPerLength int32) *Filter {
	if maxLength < 1 {
		maxLength = 1
	}
	f := &Filter{buckets: make([]*bucket, maxLength+1), capacity: int(capacityPerLength)}
	for i := range f.buckets {
		f.buckets[i] = newBucket(f.capacity)
	}
	return f
}

func fingerprint(lits []clause.Literal) uint64 {
	h := xxhash.New()
	buf := make([]byte, 4)
	for _, lit := range lits {
		v := uint32(lit)
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

func (f *Filter) bucketFor(length int) *bucket {
	if length >= len(f.buckets) {
		length = len(f.buckets) - 1
	}
	if length < 1 {
		length = 1
	}
	return f.buckets[length]
}

// Register records c and reports true exactly when it was novel for
// this filter's scope. c.Literals must already be sorted (clause.New
// / clause.Sort guarantee this) so that identical clauses always hash
// identically regardless of learning order.
func (f *Filter) Register(c clause.Clause) bool {
	if f.pendingClear.CompareAndSwap(true, false) {
		f.clearNow()
	}
	b := f.bucketFor(c.Len())
	return b.register(fingerprint(c.Literals))
}

// Clear immediately empties every length partition.
func (f *Filter) Clear() { f.clearNow() }

func (f *Filter) clearNow() {
	for _, b := range f.buckets {
		if b != nil {
			b.clear()
		}
	}
}

// SetClear defers a Clear to the next call to Register, matching
// DefaultSharingManager's setClear(): a filter clear must not race a
// concurrent in-flight registration, so producers request it and the
// next register performs it before recording its own clause.
func (f *Filter) SetClear() { f.pendingClear.Store(true) }
