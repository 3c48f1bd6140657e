package clause

import "sort"

// Slot identifies one partition of the clause database: either an
// exact (Length, LBD) pair, or — once the clause length exceeds the
// configured LBD-partitioning threshold — a coarser bucket keyed
// either by Length alone (BySum == false) or by Length+LBD summed
// together (BySum == true), per the config.Options.
// GroupClausesByLengthLBDSum toggle described in spec.md §6.
type Slot struct {
	Length int32
	LBD    int32
	BySum  bool
}

// ForClause returns the slot a clause belongs to, given the
// partitioning parameters.
func ForClause(c Clause, maxLBDPartitioningSize int32, groupBySum bool) Slot {
	n := int32(c.Len())
	if n <= maxLBDPartitioningSize {
		return Slot{Length: n, LBD: c.LBD}
	}
	if groupBySum {
		return Slot{Length: n + c.LBD, BySum: true}
	}
	return Slot{Length: n, LBD: 0}
}

// quality returns a tuple that sorts ascending exactly in the order
// spec.md §3 demands: "shorter length first, lower LBD first", with
// sum-bucketed slots ranked after all explicitly LBD-partitioned
// slots of at most the same nominal size.
func (s Slot) quality() (tier, primary, secondary int32) {
	if s.BySum {
		return 2, s.Length, 0
	}
	if s.LBD == 0 {
		return 1, s.Length, 0
	}
	return 0, s.Length, s.LBD
}

// Less reports whether s is strictly higher quality (sorts earlier)
// than o.
func (s Slot) Less(o Slot) bool {
	st, sp, ss := s.quality()
	ot, op, os := o.quality()
	if st != ot {
		return st < ot
	}
	if sp != op {
		return sp < op
	}
	return ss < os
}

// SortSlots orders a slice of slots best-quality-first, matching the
// export order exportBuffer (spec.md §4.1) must produce.
func SortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].Less(slots[j]) })
}
