package cdb

import "github.com/xDarkicex/sharesat/clause"

// chunk is a fixed-capacity, FIFO store of clauses belonging to one
// slot. Clauses are appended at the tail and exported from the head,
// matching the ring-of-chunks layout of AdaptiveClauseDatabase.
type chunk struct {
	clauses []clause.Clause
	cap     int
}

func newChunk(capacity int) *chunk {
	return &chunk{clauses: make([]clause.Clause, 0, capacity), cap: capacity}
}

func (c *chunk) full() bool { return len(c.clauses) >= c.cap }

func (c *chunk) tryAdd(cl clause.Clause) bool {
	if c.full() {
		return false
	}
	c.clauses = append(c.clauses, cl)
	return true
}

func (c *chunk) drained() bool { return len(c.clauses) == 0 }

// popFront removes and returns the oldest clause, or ok=false if empty.
func (c *chunk) popFront() (clause.Clause, bool) {
	if len(c.clauses) == 0 {
		return clause.Clause{}, false
	}
	cl := c.clauses[0]
	c.clauses = c.clauses[1:]
	return cl, true
}

// ring holds every chunk currently allocated for one slot, oldest
// chunk first.
type ring struct {
	chunks    []*chunk
	chunkSize int
	maxChunks int
}

func newRing(chunkSize, maxChunks int) *ring {
	return &ring{chunkSize: chunkSize, maxChunks: maxChunks}
}

// add appends a clause to the newest chunk, allocating a fresh one
// only if room remains under maxChunks. Returns false if the ring is
// full at the chunk level (caller must consult the database's global
// eviction policy).
func (r *ring) add(cl clause.Clause) bool {
	if n := len(r.chunks); n > 0 {
		if r.chunks[n-1].tryAdd(cl) {
			return true
		}
	}
	if len(r.chunks) >= r.maxChunks {
		return false
	}
	nc := newChunk(r.chunkSize)
	nc.tryAdd(cl)
	r.chunks = append(r.chunks, nc)
	return true
}

// forceGrow allocates a new chunk regardless of maxChunks, used when
// the database has freed global chunk budget via eviction elsewhere.
func (r *ring) forceGrow(cl clause.Clause) {
	nc := newChunk(r.chunkSize)
	nc.tryAdd(cl)
	r.chunks = append(r.chunks, nc)
}

func (r *ring) numChunks() int { return len(r.chunks) }

func (r *ring) size() int {
	n := 0
	for _, c := range r.chunks {
		n += len(c.clauses)
	}
	return n
}

// evictOldestChunk drops the ring's oldest chunk entirely, returning
// the number of clauses discarded. Used only as a last resort when a
// slot must shrink to make room elsewhere.
func (r *ring) evictOldestChunk() int {
	if len(r.chunks) == 0 {
		return 0
	}
	n := len(r.chunks[0].clauses)
	r.chunks = r.chunks[1:]
	return n
}

// drainInto pops clauses from the oldest chunk forward, appending them
// to w under slot s, until budget literals have been spent or the
// ring empties. Fully drained leading chunks are dropped so numChunks
// reflects the freed capacity. Returns the number of literals spent.
func (r *ring) drainInto(w *clause.Writer, s clause.Slot, budget int) int {
	spent := 0
	for len(r.chunks) > 0 {
		c := r.chunks[0]
		for !c.drained() {
			cl := c.clauses[0]
			cost := cl.Len()
			if spent+cost > budget {
				return spent
			}
			c.clauses = c.clauses[1:]
			w.Add(s, cl)
			spent += cost
		}
		r.chunks = r.chunks[1:]
	}
	return spent
}
