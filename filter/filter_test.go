package filter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xDarkicex/sharesat/clause"
)

func TestRegisterRejectsDuplicate(t *testing.T) {
	f := New(8, 100)
	c := clause.New([]clause.Literal{1, 2, 3}, 2)
	require.True(t, f.Register(c))
	require.False(t, f.Register(c))
}

func TestRegisterIsPartitionedByLength(t *testing.T) {
	f := New(8, 100)
	c2 := clause.New([]clause.Literal{1, 2}, 2)
	c3 := clause.New([]clause.Literal{1, 2, 3}, 2)
	require.True(t, f.Register(c2))
	// Same prefix, different length: must not collide across buckets.
	require.True(t, f.Register(c3))
}

func TestClearResetsState(t *testing.T) {
	f := New(8, 100)
	c := clause.New([]clause.Literal{4, 5}, 2)
	require.True(t, f.Register(c))
	f.Clear()
	require.True(t, f.Register(c))
}

func TestSetClearDefersUntilNextRegister(t *testing.T) {
	f := New(8, 100)
	c := clause.New([]clause.Literal{4, 5}, 2)
	require.True(t, f.Register(c))

	f.SetClear()
	other := clause.New([]clause.Literal{9, 10}, 2)
	// The next Register performs the deferred clear first, then
	// records its own clause, so c is forgotten afterward.
	require.True(t, f.Register(other))
	require.True(t, f.Register(c))
}

func TestCapacityEvictsOldestFingerprint(t *testing.T) {
	f := New(8, 2)
	c1 := clause.New([]clause.Literal{1}, 1)
	c2 := clause.New([]clause.Literal{2}, 1)
	c3 := clause.New([]clause.Literal{3}, 1)
	require.True(t, f.Register(c1))
	require.True(t, f.Register(c2))
	require.True(t, f.Register(c3)) // evicts c1's fingerprint
	require.True(t, f.Register(c1)) // re-admitted: its fingerprint was evicted
}

func TestConcurrentRegister(t *testing.T) {
	f := New(8, 10000)
	var wg sync.WaitGroup
	var novel int64
	var mu sync.Mutex
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := int32(0); i < 50; i++ {
				c := clause.New([]clause.Literal{i + 1, -(i + 2)}, 2)
				if f.Register(c) {
					mu.Lock()
					novel++
					mu.Unlock()
				}
			}
		}(g)
	}
	wg.Wait()
	// Every goroutine registers the same 50 clauses; exactly 50 should
	// win the race to be "novel" despite 16-way concurrent contention.
	require.EqualValues(t, 50, novel)
}
