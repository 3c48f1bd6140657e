package cdb

import (
	"sync"

	"github.com/xDarkicex/sharesat/clause"
)

// Database is the bounded, multi-producer clause store. One Database
// backs one solver job; every producer (solver thread) calls AddClause
// concurrently and the sharing manager calls ExportBuffer between
// sharing rounds.
type Database struct {
	opts Options

	mu          sync.Mutex
	rings       map[clause.Slot]*ring
	order       []clause.Slot // insertion order of rings seen so far
	chunksInUse int

	produced  *Histogram
	admitted  *Histogram
	discarded *Histogram
}

// New builds an empty Database.
func New(opts Options) *Database {
	return &Database{
		opts:      opts,
		rings:     make(map[clause.Slot]*ring),
		produced:  NewHistogram(opts.MaxClauseLength),
		admitted:  NewHistogram(opts.MaxClauseLength),
		discarded: NewHistogram(opts.MaxClauseLength),
	}
}

// Stats exposes the three histograms the sharing manager reports
// through telemetry: clauses produced, admitted, and discarded for
// lack of capacity.
func (db *Database) Stats() (produced, admitted, discarded *Histogram) {
	return db.produced, db.admitted, db.discarded
}

func (db *Database) ringFor(s clause.Slot) *ring {
	r, ok := db.rings[s]
	if !ok {
		r = newRing(db.opts.ChunkSize, db.opts.MaxChunksPerSlot)
		db.rings[s] = r
		db.order = append(db.order, s)
	}
	return r
}

// AddClause admits one clause produced by producerID. It returns
// clause.ErrCapacity if the database is full and no worse-quality
// slot could be evicted to make room. producerID is accepted for
// parity with the multi-producer setup in the original design; this
// implementation does not partition storage per producer since a
// single shared ring-of-chunks per slot already serializes access
// correctly under the database lock.
func (db *Database) AddClause(producerID int, c clause.Clause) error {
	c.MustValidate("cdb.AddClause")
	slot := clause.ForClause(c, db.opts.MaxLBDPartitioningSize, db.opts.GroupClausesBySum)

	db.mu.Lock()
	defer db.mu.Unlock()

	db.produced.Increment(c.Len())

	r := db.ringFor(slot)
	n := r.numChunks()
	needsChunk := n == 0 || r.chunks[n-1].full()
	if !needsChunk || db.chunksInUse < db.opts.MaxTotalChunks {
		if r.add(c) {
			if needsChunk {
				db.chunksInUse++
			}
			db.admitted.Increment(c.Len())
			return nil
		}
	}

	// Ring itself is at its per-slot chunk cap. Try to grow it if the
	// database still has global chunk budget, otherwise evict a chunk
	// from the worst-quality slot that is strictly worse than this one.
	if db.chunksInUse < db.opts.MaxTotalChunks {
		r.forceGrow(c)
		db.chunksInUse++
		db.admitted.Increment(c.Len())
		return nil
	}

	if db.evictWorse(slot) {
		r.forceGrow(c)
		db.chunksInUse++
		db.admitted.Increment(c.Len())
		return nil
	}

	db.discarded.Increment(c.Len())
	return clause.ErrCapacity
}

// evictWorse drops one chunk from the lowest-quality slot whose
// quality is strictly worse than candidate's, provided that slot has at
// least one chunk to spare. Reports whether a chunk was freed.
func (db *Database) evictWorse(candidate clause.Slot) bool {
	var worst clause.Slot
	found := false
	for s, r := range db.rings {
		if r.numChunks() == 0 {
			continue
		}
		if candidate.Less(s) {
			if !found || worst.Less(s) {
				worst = s
				found = true
			}
		}
	}
	if !found {
		return false
	}
	db.rings[worst].evictOldestChunk()
	db.chunksInUse--
	return true
}

// BulkAddClauses imports every clause out of buf (as produced by
// another node's ExportBuffer), admitting what it can and returning
// the clauses that could not be admitted for capacity reasons so the
// caller can decide whether to retry them (mirrors returnClauses in
// the sharing manager).
func (db *Database) BulkAddClauses(producerID int, buf []int32) (rejected []clause.Clause) {
	r := clause.NewReader(buf)
	for {
		c, _, ok := r.Next()
		if !ok {
			break
		}
		if err := db.AddClause(producerID, c); err != nil {
			rejected = append(rejected, c)
		}
	}
	return rejected
}

// ExportBuffer drains clauses in quality order (best first) into a
// packed buffer until totalLiteralLimit packed literals have been
// spent, removing every exported clause from the database. Returns
// the buffer and the number of clauses it contains.
func (db *Database) ExportBuffer(totalLiteralLimit int) ([]int32, int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	slots := append([]clause.Slot(nil), db.order...)
	clause.SortSlots(slots)

	w := clause.NewWriter()
	budget := totalLiteralLimit
	count := 0
	for _, s := range slots {
		if budget <= 0 {
			break
		}
		r, ok := db.rings[s]
		if !ok {
			continue
		}
		before := r.size()
		chunksBefore := r.numChunks()
		spent := r.drainInto(w, s, budget)
		budget -= spent
		chunksAfter := r.numChunks()
		db.chunksInUse -= chunksBefore - chunksAfter
		count += before - r.size()
	}
	return w.Bytes(), count
}

// GetBufferReader wraps a packed buffer for iteration without
// importing it into the database (used by the sharing manager to
// convert an incoming buffer to plain clauses before per-solver
// filtering).
func GetBufferReader(buf []int32) *clause.Reader { return clause.NewReader(buf) }

// Size returns the total number of clauses currently stored.
func (db *Database) Size() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, r := range db.rings {
		n += r.size()
	}
	return n
}
