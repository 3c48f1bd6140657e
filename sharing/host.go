// Package sharing implements the sharing manager: the solver-facing
// front end that turns learned clauses into clause-database entries
// and turns shared buffers back into clauses solver threads can
// import, grounded on DefaultSharingManager in
// original_source/src/app/sat/hordesat/sharing/default_sharing_manager.cpp.
package sharing

import "github.com/xDarkicex/sharesat/clause"

// Role distinguishes which subset of the job tree a buffer limit
// applies to, matching MyMpi::ALL vs a narrower scope in
// BaseSatJob::getBufferLimit.
type Role int

const (
	RoleAll Role = iota
	RoleSelfAndChildren
)

// Host is everything the sharing manager needs from the surrounding
// job to drive its solver threads: per-solver revision tracking,
// clause delivery, and the literal budget a given number of
// aggregated contributors is entitled to.
type Host interface {
	// CurrentRevision returns solverID's currently loaded revision.
	CurrentRevision(solverID int) int32
	// ImportClauseBatch hands clauses to solverID, keeping only the
	// ones accept returns true for (the solver-local duplicate
	// filter).
	ImportClauseBatch(solverID int, clauses []clause.Clause, accept func(clause.Clause) bool)
	// SubmitLearnedClause notifies the host that a clause produced by
	// solverID has cleared both filters and been admitted to the
	// database, for statistics bookkeeping.
	SubmitLearnedClause(solverID int, c clause.Clause)
	// BufferLimit returns the literal budget a buffer aggregated from
	// `aggregated` contributing tree nodes should be capped at.
	BufferLimit(aggregated int, role Role) int
}
