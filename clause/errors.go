package clause

import (
	"errors"
	"fmt"
)

// Sentinel errors for the statistical, non-fatal rejection kinds named
// in spec.md §7. None of these are ever returned to a solver thread —
// they are only used internally so every call site can classify a
// rejection with errors.Is instead of string matching.
var (
	// ErrCapacity means the clause database had no room and no
	// evictable slot for the incoming clause.
	ErrCapacity = errors.New("clause: capacity exhausted")
	// ErrFiltered means a duplicate filter rejected the clause.
	ErrFiltered = errors.New("clause: rejected by duplicate filter")
	// ErrStaleRevision means the producing or consuming solver's
	// revision no longer matches the clause's revision.
	ErrStaleRevision = errors.New("clause: stale revision")
)

// invariantViolation reports a bug, not a runtime condition: per
// spec.md §7, these abort the process rather than propagate as an
// error value.
func invariantViolation(op, detail string) {
	panic(fmt.Sprintf("clause: fatal invariant violation in %s: %s", op, detail))
}
