package clause

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	c1 := New([]Literal{1, -2, 3}, 2)
	c2 := New([]Literal{5}, 1)
	c3 := New([]Literal{-1, 2}, 2)

	w.Add(ForClause(c1, 8, false), c1)
	w.Add(ForClause(c2, 8, false), c2)
	w.Add(ForClause(c3, 8, false), c3)

	buf := w.Bytes()
	require.NotEmpty(t, buf)

	got := NewReader(buf).All()
	require.Len(t, got, 3)

	// Quality order: unit clause first (shortest), then the two length-2
	// clauses in the order they were grouped under their (length,LBD) slot.
	require.Equal(t, 1, got[0].Len())
	require.Equal(t, int32(1), got[0].LBD)
}

func TestMergerRespectsLiteralLimit(t *testing.T) {
	w := NewWriter()
	for i := int32(1); i <= 5; i++ {
		c := New([]Literal{Literal(i), Literal(-(i + 100))}, 2)
		w.Add(ForClause(c, 8, false), c)
	}
	buf := w.Bytes()

	m := NewMerger(6) // room for exactly 3 clauses (2 literals each)
	m.Add(NewReader(buf))
	merged, excess := m.Merge(nil)

	got := NewReader(merged).All()
	require.Len(t, got, 3)
	require.Len(t, excess, 2)
}

func TestMergerDropsDuplicates(t *testing.T) {
	c := New([]Literal{1, 2, 3}, 2)

	w1 := NewWriter()
	w1.Add(ForClause(c, 8, false), c)
	w2 := NewWriter()
	w2.Add(ForClause(c, 8, false), c)
	w3 := NewWriter()
	w3.Add(ForClause(c, 8, false), c)

	seen := make(map[string]bool)
	admit := func(cl Clause) bool {
		k := cl.Key()
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	}

	m := NewMerger(1000)
	m.Add(NewReader(w1.Bytes()))
	m.Add(NewReader(w2.Bytes()))
	m.Add(NewReader(w3.Bytes()))
	merged, excess := m.Merge(admit)

	require.Empty(t, excess)
	got := NewReader(merged).All()
	require.Len(t, got, 1)
}

func TestClauseValidate(t *testing.T) {
	require.NoError(t, New([]Literal{4}, 1).Validate())
	require.Error(t, New([]Literal{4}, 2).Validate())
	require.NoError(t, New([]Literal{1, 2, 3}, 2).Validate())
	require.Error(t, New([]Literal{1, 2, 3}, 1).Validate())
	require.Error(t, New([]Literal{1, 2, 3}, 4).Validate())
}

func TestSlotQualityOrder(t *testing.T) {
	slots := []Slot{
		{Length: 5, LBD: 3},
		{Length: 1, LBD: 1},
		{Length: 3, LBD: 2},
		{Length: 3, LBD: 3},
	}
	SortSlots(slots)
	require.Equal(t, Slot{Length: 1, LBD: 1}, slots[0])
	require.Equal(t, Slot{Length: 3, LBD: 2}, slots[1])
	require.Equal(t, Slot{Length: 3, LBD: 3}, slots[2])
	require.Equal(t, Slot{Length: 5, LBD: 3}, slots[3])
}
