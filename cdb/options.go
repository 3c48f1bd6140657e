// Package cdb implements the clause database: a bounded, multi-producer
// store that groups learned clauses into quality slots (see package
// clause) and exposes them for export into packed buffers, grounded on
// the AdaptiveClauseDatabase usage in
// default_sharing_manager.cpp (original_source/src/app/sat/hordesat/sharing).
package cdb

// Options configures a Database. Field names mirror the
// AdaptiveClauseDatabase::Setup struct the sharing manager builds from
// its config (original_source default_sharing_manager.cpp), renamed to
// Go conventions.
type Options struct {
	// MaxClauseLength sizes the database's produced/admitted/discarded
	// histograms. AddClause does not check a clause's length against
	// it, so a longer clause is not rejected.
	MaxClauseLength int32
	// MaxLBDPartitioningSize is the clause length threshold at or below
	// which clauses get an exact (length, LBD) slot; beyond it they
	// fall into a coarser bucket (see clause.ForClause).
	MaxLBDPartitioningSize int32
	// GroupClausesBySum selects the coarser bucket's shape: true sums
	// length+LBD into one key, false buckets by length alone.
	GroupClausesBySum bool
	// ChunkSize is the number of clauses held per chunk.
	ChunkSize int
	// MaxChunksPerSlot is how many chunks a single slot allocates
	// through its ordinary growth path. A slot at this cap still takes
	// further chunks while MaxTotalChunks has room, or by evicting a
	// chunk from a worse slot.
	MaxChunksPerSlot int
	// MaxTotalChunks bounds the database's overall footprint across
	// every slot; once reached, admitting a clause into a new chunk
	// requires evicting a chunk from the worst-quality eligible slot.
	MaxTotalChunks int
}

// DefaultOptions returns conservative defaults suitable for tests and
// for the demo CLI harness.
func DefaultOptions() Options {
	return Options{
		MaxClauseLength:        30,
		MaxLBDPartitioningSize: 2,
		GroupClausesBySum:      false,
		ChunkSize:              128,
		MaxChunksPerSlot:       4,
		MaxTotalChunks:         64,
	}
}
