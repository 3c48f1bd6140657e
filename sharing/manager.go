package sharing

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xDarkicex/sharesat/cdb"
	"github.com/xDarkicex/sharesat/clause"
	"github.com/xDarkicex/sharesat/filter"
	"github.com/xDarkicex/sharesat/telemetry"
)

// stoppedRevision marks a solver whose clause import has been paused
// via StopClauseImport, mirroring _solver_revisions[id] = -1.
const stoppedRevision = int32(-1)

// futureEntry holds one sharing round's buffer that could not yet be
// imported into every solver because some solver's revision lagged
// the sharing round's revision, matching _future_clauses.
type futureEntry struct {
	clauses         []clause.Clause
	revision        int32
	involvedSolvers []bool
}

// Manager is the sharing front end for one job: it owns the clause
// database, the process-wide duplicate filter, and one duplicate
// filter per solver thread.
type Manager struct {
	mu sync.Mutex

	host Host
	cdb  *cdb.Database
	hist *telemetry.Histograms
	log  zerolog.Logger

	processFilter   *filter.Filter
	solverFilters   []*filter.Filter
	solverRevisions []int32

	currentRevision int32
	clearInterval   float64 // seconds; 0 means clear every round
	lastClear       time.Time

	futureClauses []futureEntry

	faultInjectionRate float64
	rng                *rand.Rand
}

// Config bundles the construction parameters the manager needs beyond
// the Host callback, mirroring the fields DefaultSharingManager reads
// out of Parameters.
type Config struct {
	NumSolvers            int
	CDB                   cdb.Options
	FilterCapacityPerLen  int32
	ClauseFilterClearSecs float64
}

// NewManager builds a Manager wired to host, with one duplicate
// filter per solver plus a process-wide one, all sized to
// cfg.CDB.MaxClauseLength.
func NewManager(host Host, cfg Config, hist *telemetry.Histograms, log zerolog.Logger) *Manager {
	m := &Manager{
		host:            host,
		cdb:             cdb.New(cfg.CDB),
		hist:            hist,
		log:             log,
		processFilter:   filter.New(cfg.CDB.MaxClauseLength, cfg.FilterCapacityPerLen),
		solverFilters:   make([]*filter.Filter, cfg.NumSolvers),
		solverRevisions: make([]int32, cfg.NumSolvers),
		clearInterval:   cfg.ClauseFilterClearSecs,
		lastClear:       time.Now(),
		rng:             rand.New(rand.NewSource(1)),
	}
	for i := range m.solverFilters {
		m.solverFilters[i] = filter.New(cfg.CDB.MaxClauseLength, cfg.FilterCapacityPerLen)
	}
	return m
}

// SetFaultInjectionRate configures the probability, in [0,1], that
// LearnedClauseCallback silently drops an incoming clause instead of
// processing it. The original simulates a hard process crash
// (raise(SIGSEGV)) to exercise restart logic; this port instead drops
// the clause, since crashing the whole demo process on every call
// site is not a useful fault to inject from a library.
func (m *Manager) SetFaultInjectionRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faultInjectionRate = rate
}

// CDB exposes the underlying clause database for components (the
// clause communicator) that need to export or merge buffers directly.
func (m *Manager) CDB() *cdb.Database { return m.cdb }

// SetCurrentRevision advances the sharing round's reference revision,
// the value DigestSharing compares every solver's CurrentRevision
// against to decide whether to defer.
func (m *Manager) SetCurrentRevision(rev int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentRevision = rev
}

// LearnedClauseCallback is registered as each solver thread's learned
// clause sink. revision must match the solver's currently tracked
// revision or the clause is silently discarded (a solver restart
// raced the callback).
func (m *Manager) LearnedClauseCallback(solverID int, revision int32, c clause.Clause, condVarOrZero int32) {
	m.mu.Lock()
	if m.solverRevisions[solverID] != revision {
		m.mu.Unlock()
		return
	}
	if m.faultInjectionRate > 0 && m.rng.Float64() < m.faultInjectionRate {
		m.mu.Unlock()
		m.log.Warn().Int("solver", solverID).Msg("simulated fault: dropping learned clause")
		return
	}
	m.mu.Unlock()

	m.hist.Produce(c.Len())

	if condVarOrZero != 0 {
		lits := append(append([]clause.Literal(nil), c.Literals...), clause.Literal(-condVarOrZero))
		c = clause.New(lits, c.LBD)
	}
	c.MustValidate("sharing.LearnedClauseCallback")

	m.mu.Lock()
	sf := m.solverFilters[solverID]
	pf := m.processFilter
	m.mu.Unlock()

	if !sf.Register(c) {
		m.hist.FailFilter(c.Len())
		return
	}
	if !pf.Register(c) {
		m.hist.FailFilter(c.Len())
		return
	}

	if err := m.cdb.AddClause(solverID, c); err != nil {
		m.hist.DropBeforeDB(c.Len())
		return
	}
	m.hist.Admit(c.Len())
	m.host.SubmitLearnedClause(solverID, c)
}

// PrepareSharing drains the database into a packed buffer capped at
// literalLimit packed literals, the payload handed to the clause
// all-reduce as this node's local contribution.
func (m *Manager) PrepareSharing(literalLimit int) ([]int32, int) {
	return m.cdb.ExportBuffer(literalLimit)
}

// DigestSharing imports a merged, filtered buffer produced by one
// sharing epoch into every solver ready for it, deferring solvers
// whose revision lags the round this buffer belongs to, and runs the
// periodic filter clear.
func (m *Manager) DigestSharing(buf []int32) {
	m.digestDeferredFutureClauses()

	clauses := cdb.GetBufferReader(buf).All()

	m.mu.Lock()
	currentRevision := m.currentRevision
	numSolvers := len(m.solverRevisions)
	m.mu.Unlock()

	var deferring *futureEntry
	for sid := 0; sid < numSolvers; sid++ {
		m.mu.Lock()
		rev := m.solverRevisions[sid]
		m.mu.Unlock()
		if rev == stoppedRevision {
			continue
		}
		if m.host.CurrentRevision(sid) < currentRevision {
			if deferring == nil {
				m.mu.Lock()
				m.futureClauses = append(m.futureClauses, futureEntry{
					clauses:         clauses,
					revision:        currentRevision,
					involvedSolvers: make([]bool, numSolvers),
				})
				deferring = &m.futureClauses[len(m.futureClauses)-1]
				m.mu.Unlock()
			}
			deferring.involvedSolvers[sid] = true
			continue
		}
		sid := sid
		m.host.ImportClauseBatch(sid, clauses, func(c clause.Clause) bool {
			return m.solverFilters[sid].Register(c)
		})
	}

	m.maybeClearFilters()
}

// digestDeferredFutureClauses replays the deferred queue in
// insertion order, importing into any solver that has now reached the
// entry's revision, and drops entries no solver still needs. A pass
// that makes no progress at all halts early.
func (m *Manager) digestDeferredFutureClauses() {
	m.mu.Lock()
	entries := m.futureClauses
	m.mu.Unlock()

	kept := entries[:0]
	for i := range entries {
		e := &entries[i]
		solversRemaining := false
		progress := false
		for sid, involved := range e.involvedSolvers {
			if !involved {
				continue
			}
			if m.host.CurrentRevision(sid) < e.revision {
				solversRemaining = true
				continue
			}
			sid := sid
			m.host.ImportClauseBatch(sid, e.clauses, func(c clause.Clause) bool {
				return m.solverFilters[sid].Register(c)
			})
			progress = true
		}
		if solversRemaining {
			kept = append(kept, *e)
		}
		if !progress {
			break
		}
	}

	m.mu.Lock()
	m.futureClauses = kept
	m.mu.Unlock()
}

func (m *Manager) maybeClearFilters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	due := m.clearInterval == 0 || time.Since(m.lastClear).Seconds() > m.clearInterval
	if !due {
		return
	}
	m.processFilter.Clear()
	for _, f := range m.solverFilters {
		f.SetClear()
	}
	m.lastClear = time.Now()
}

// ReturnClauses re-admits clauses a downstream merge step excluded,
// subject to the process filter, matching returnClauses's
// process-filter-only admission lambda.
func (m *Manager) ReturnClauses(excess []clause.Clause) {
	for _, c := range excess {
		m.hist.ReturnToDB(c.Len())
		if !m.processFilter.Register(c) {
			continue
		}
		_ = m.cdb.AddClause(len(m.solverRevisions), c)
	}
}

// StopClauseImport pauses solverID's participation in DigestSharing.
func (m *Manager) StopClauseImport(solverID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.solverRevisions[solverID] = stoppedRevision
}

// ContinueClauseImport resumes solverID's participation at the given
// revision.
func (m *Manager) ContinueClauseImport(solverID int, revision int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.solverRevisions[solverID] = revision
}
