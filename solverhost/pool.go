package solverhost

import (
	"sync"

	"github.com/xDarkicex/sharesat/clause"
	"github.com/xDarkicex/sharesat/sat"
	"github.com/xDarkicex/sharesat/sharing"
)

// Worker pairs one CDCL solver with the bookkeeping a Pool needs to
// treat it as one addressable participant: its own revision counter.
// Keeping a clause away from the solver that produced it is left to
// the sharing manager's per-solver filter; Worker keeps no record of
// its own.
type Worker struct {
	Solver   *sat.CDCLSolver
	mu       sync.Mutex
	revision int32
}

// Pool adapts a fixed set of CDCL solvers, sharing one VarRegistry, to
// sharing.Host: every learned clause any solver produces is forwarded
// into the manager, and every clause the manager digests is added
// back into every other solver as a permanent clause.
type Pool struct {
	Registry *VarRegistry
	Workers  []*Worker
	Manager  *sharing.Manager
}

// NewPool builds numSolvers fresh CDCL solvers sharing one
// VarRegistry. The pool is a ready sharing.Host as soon as it is
// built; call BindManager once the manager that will own this pool as
// its Host has been constructed, to wire each solver's OnLearnedClause
// hook through to it.
func NewPool(numSolvers int) *Pool {
	p := &Pool{
		Registry: NewVarRegistry(),
		Workers:  make([]*Worker, numSolvers),
	}
	for i := 0; i < numSolvers; i++ {
		solver := sat.NewCDCLSolver()
		solver.LoadCNF(sat.NewCNF())
		p.Workers[i] = &Worker{Solver: solver}
	}
	return p
}

// BindManager wires every solver's OnLearnedClause hook to mgr and
// records mgr so Restart can notify it of revision bumps. The two-step
// construction (NewPool, then BindManager) exists because
// sharing.NewManager requires a Host, and this Pool is that Host, so
// the Pool must exist before the Manager that then needs to be wired
// back into it.
func (p *Pool) BindManager(mgr *sharing.Manager) {
	p.Manager = mgr
	for i, w := range p.Workers {
		solverID, worker := i, w
		worker.Solver.OnLearnedClause = func(c *sat.Clause) {
			worker.mu.Lock()
			rev := worker.revision
			worker.mu.Unlock()
			shared := toShared(p.Registry, c)
			mgr.LearnedClauseCallback(solverID, rev, shared, 0)
		}
	}
}

// CurrentRevision implements sharing.Host.
func (p *Pool) CurrentRevision(solverID int) int32 {
	w := p.Workers[solverID]
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.revision
}

// Restart bumps solverID's revision, the signal LearnedClauseCallback
// and DigestSharing use to discard anything from before the restart.
func (p *Pool) Restart(solverID int) int32 {
	w := p.Workers[solverID]
	w.mu.Lock()
	w.revision++
	rev := w.revision
	w.mu.Unlock()
	p.Manager.ContinueClauseImport(solverID, rev)
	return rev
}

// ImportClauseBatch implements sharing.Host by adding every accepted
// clause to solverID's solver through AddClause, as a permanent
// clause flagged as learned and tagged with its LBD.
func (p *Pool) ImportClauseBatch(solverID int, clauses []clause.Clause, accept func(clause.Clause) bool) {
	w := p.Workers[solverID]
	for _, c := range clauses {
		if !accept(c) {
			continue
		}
		native := fromShared(p.Registry, c)
		_ = w.Solver.AddClause(native)
	}
}

// SubmitLearnedClause implements sharing.Host; bookkeeping only, the
// clause has already been added to the CDB by the time this fires.
func (p *Pool) SubmitLearnedClause(solverID int, c clause.Clause) {}

// BufferLimit implements sharing.Host with a fixed per-contributor
// budget, a simplification of getBufferLimit's job-size-aware formula
// since this pool has no broader job-volume signal to scale against.
func (p *Pool) BufferLimit(aggregated int, role sharing.Role) int {
	const perContributor = 1500
	limit := aggregated * perContributor
	if limit <= 0 {
		limit = perContributor
	}
	return limit
}
