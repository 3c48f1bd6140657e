// Package taskpool provides sync.Pool-backed scratch buffers for the
// hot conversion and merge paths that would otherwise allocate a
// fresh slice per clause, grounded on the teacher's SATPool literal-
// slice pool (GetLiteralSlice/PutLiteralSlice), not itself carried
// into this module since nothing outside sat's own internals used it.
package taskpool

import "sync"

// Int32Pool hands out []int32 scratch buffers of at least a requested
// capacity, for packed clause buffers and all-reduce elements that
// are built once and discarded per call.
type Int32Pool struct {
	pool   sync.Pool
	maxCap int
}

// NewInt32Pool creates a pool whose New func pre-sizes buffers to
// defaultCap; buffers larger than maxCap on return are dropped instead
// of pooled, mirroring SATPool's "don't pool extremely large slices"
// guards.
func NewInt32Pool(defaultCap, maxCap int) *Int32Pool {
	p := &Int32Pool{maxCap: maxCap}
	p.pool.New = func() interface{} {
		return make([]int32, 0, defaultCap)
	}
	return p
}

// Get returns a zero-length buffer with at least size capacity.
func (p *Int32Pool) Get(size int) []int32 {
	buf := p.pool.Get().([]int32)
	if cap(buf) < size {
		return make([]int32, 0, size)
	}
	return buf[:0]
}

// Put returns buf to the pool, unless it has grown past maxCap.
func (p *Int32Pool) Put(buf []int32) {
	if buf == nil || cap(buf) > p.maxCap {
		return
	}
	p.pool.Put(buf[:0])
}
