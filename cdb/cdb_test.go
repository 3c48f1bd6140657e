package cdb

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xDarkicex/sharesat/clause"
)

func smallOpts() Options {
	return Options{
		MaxClauseLength:        10,
		MaxLBDPartitioningSize: 4,
		ChunkSize:              2,
		MaxChunksPerSlot:       2,
		MaxTotalChunks:         4,
	}
}

func TestAddAndExportRoundTrip(t *testing.T) {
	db := New(smallOpts())
	c1 := clause.New([]clause.Literal{1}, 1)
	c2 := clause.New([]clause.Literal{2, 3}, 2)
	require.NoError(t, db.AddClause(0, c1))
	require.NoError(t, db.AddClause(0, c2))
	require.Equal(t, 2, db.Size())

	buf, n := db.ExportBuffer(1000)
	require.Equal(t, 2, n)
	require.Equal(t, 0, db.Size())

	got := clause.NewReader(buf).All()
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].Len()) // unit clause exported first
}

func TestExportRespectsBudget(t *testing.T) {
	db := New(smallOpts())
	for i := int32(1); i <= 3; i++ {
		c := clause.New([]clause.Literal{i, -(i + 10)}, 2)
		require.NoError(t, db.AddClause(0, c))
	}
	buf, n := db.ExportBuffer(4) // room for exactly 2 clauses
	require.Equal(t, 2, n)
	require.Equal(t, 1, db.Size())
	require.NotEmpty(t, buf)
}

func TestCapacityExhaustionWithoutEviction(t *testing.T) {
	opts := smallOpts()
	opts.MaxTotalChunks = 1
	opts.MaxChunksPerSlot = 1
	opts.ChunkSize = 1
	db := New(opts)

	// First clause of the best quality slot fills the only chunk.
	best := clause.New([]clause.Literal{1}, 1)
	require.NoError(t, db.AddClause(0, best))

	// A worse clause cannot evict the already-best occupant and there
	// is no free chunk budget, so it is rejected.
	worse := clause.New([]clause.Literal{5, 6, 7}, 3)
	err := db.AddClause(0, worse)
	require.ErrorIs(t, err, clause.ErrCapacity)
}

func TestEvictionMakesRoomForBetterQuality(t *testing.T) {
	opts := smallOpts()
	opts.MaxTotalChunks = 1
	opts.MaxChunksPerSlot = 1
	opts.ChunkSize = 1
	db := New(opts)

	worse := clause.New([]clause.Literal{5, 6, 7}, 3)
	require.NoError(t, db.AddClause(0, worse))

	better := clause.New([]clause.Literal{1}, 1)
	require.NoError(t, db.AddClause(0, better))

	require.Equal(t, 1, db.Size())
	buf, _ := db.ExportBuffer(1000)
	got := clause.NewReader(buf).All()
	require.Len(t, got, 1)
	require.True(t, got[0].Equal(better))
}

func TestBulkAddClausesReturnsRejected(t *testing.T) {
	opts := smallOpts()
	opts.MaxTotalChunks = 1
	opts.MaxChunksPerSlot = 1
	opts.ChunkSize = 1
	db := New(opts)

	w := clause.NewWriter()
	c1 := clause.New([]clause.Literal{1}, 1)
	c2 := clause.New([]clause.Literal{2}, 1)
	w.Add(clause.ForClause(c1, opts.MaxLBDPartitioningSize, false), c1)
	w.Add(clause.ForClause(c2, opts.MaxLBDPartitioningSize, false), c2)

	rejected := db.BulkAddClauses(0, w.Bytes())
	require.Len(t, rejected, 1)
	require.Equal(t, 1, db.Size())
}

func TestConcurrentProducers(t *testing.T) {
	db := New(DefaultOptions())
	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := int32(1); i <= 20; i++ {
				c := clause.New([]clause.Literal{i*100 + int32(p), -(i*100 + int32(p) + 1)}, 2)
				_ = db.AddClause(p, c)
			}
		}(p)
	}
	wg.Wait()
	require.True(t, db.Size() > 0)
}

func TestHistogramTracksProducedAdmittedDiscarded(t *testing.T) {
	opts := smallOpts()
	opts.MaxTotalChunks = 1
	opts.MaxChunksPerSlot = 1
	opts.ChunkSize = 1
	db := New(opts)

	best := clause.New([]clause.Literal{1}, 1)
	require.NoError(t, db.AddClause(0, best))
	worse := clause.New([]clause.Literal{5, 6, 7}, 3)
	_ = db.AddClause(0, worse)

	produced, admitted, discarded := db.Stats()
	require.EqualValues(t, 2, produced.Total())
	require.EqualValues(t, 1, admitted.Total())
	require.EqualValues(t, 1, discarded.Total())
}
