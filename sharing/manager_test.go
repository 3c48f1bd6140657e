package sharing

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xDarkicex/sharesat/cdb"
	"github.com/xDarkicex/sharesat/clause"
	"github.com/xDarkicex/sharesat/telemetry"
)

type fakeHost struct {
	mu        sync.Mutex
	revisions map[int]int32
	imported  map[int][]clause.Clause
	submitted []clause.Clause
}

func newFakeHost(numSolvers int) *fakeHost {
	h := &fakeHost{revisions: make(map[int]int32), imported: make(map[int][]clause.Clause)}
	for i := 0; i < numSolvers; i++ {
		h.revisions[i] = 0
	}
	return h
}

func (h *fakeHost) CurrentRevision(solverID int) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.revisions[solverID]
}

func (h *fakeHost) ImportClauseBatch(solverID int, clauses []clause.Clause, accept func(clause.Clause) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range clauses {
		if accept(c) {
			h.imported[solverID] = append(h.imported[solverID], c)
		}
	}
}

func (h *fakeHost) SubmitLearnedClause(solverID int, c clause.Clause) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.submitted = append(h.submitted, c)
}

func (h *fakeHost) BufferLimit(aggregated int, role Role) int { return 1 << 20 }

func (h *fakeHost) setRevision(solverID int, rev int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.revisions[solverID] = rev
}

func newTestManager(t *testing.T, numSolvers int, host Host) *Manager {
	hist := telemetry.NewHistograms(prometheus.NewRegistry(), "sharing_test")
	log := zerolog.Nop()
	cfg := Config{
		NumSolvers:            numSolvers,
		CDB:                   cdb.DefaultOptions(),
		FilterCapacityPerLen:  1000,
		ClauseFilterClearSecs: 3600,
	}
	return NewManager(host, cfg, hist, log)
}

func TestLearnedClauseFlowsToExportAndDigest(t *testing.T) {
	host := newFakeHost(2)
	m := newTestManager(t, 2, host)

	c := clause.New([]clause.Literal{1, 2, 3}, 2)
	m.LearnedClauseCallback(0, 0, c, 0)
	require.Len(t, host.submitted, 1)

	buf, n := m.PrepareSharing(1000)
	require.Equal(t, 1, n)

	m.DigestSharing(buf)
	require.Len(t, host.imported[1], 1)
}

func TestRevisionMismatchDiscardsClause(t *testing.T) {
	host := newFakeHost(1)
	m := newTestManager(t, 1, host)
	m.ContinueClauseImport(0, 5)

	c := clause.New([]clause.Literal{1}, 1)
	m.LearnedClauseCallback(0, 4, c, 0) // stale revision
	require.Empty(t, host.submitted)
}

func TestConditionalVariableIsAppendedNegated(t *testing.T) {
	host := newFakeHost(1)
	m := newTestManager(t, 1, host)

	c := clause.New([]clause.Literal{1, 2}, 2)
	m.LearnedClauseCallback(0, 0, c, 5)
	require.Len(t, host.submitted, 1)
	found := false
	for _, lit := range host.submitted[0].Literals {
		if lit == -5 {
			found = true
		}
	}
	require.True(t, found)
}

func TestDeferredFutureClausesImportOnceRevisionCatchesUp(t *testing.T) {
	host := newFakeHost(2)
	m := newTestManager(t, 2, host)
	host.setRevision(1, 0)

	c := clause.New([]clause.Literal{7, 8}, 2)
	m.LearnedClauseCallback(0, 0, c, 0)
	buf, _ := m.PrepareSharing(1000)

	m.SetCurrentRevision(1) // solver 1 is behind: current=1, solver1 rev=0
	m.DigestSharing(buf)
	require.Empty(t, host.imported[1])

	host.setRevision(1, 1) // solver 1 catches up
	m.DigestSharing([]int32{})
	require.Len(t, host.imported[1], 1)
}

func TestStopClauseImportPausesSolver(t *testing.T) {
	host := newFakeHost(2)
	m := newTestManager(t, 2, host)
	m.StopClauseImport(1)

	c := clause.New([]clause.Literal{9}, 1)
	m.LearnedClauseCallback(0, 0, c, 0)
	buf, _ := m.PrepareSharing(1000)
	m.DigestSharing(buf)
	require.Empty(t, host.imported[1])
}

func TestReturnClausesGoesThroughProcessFilter(t *testing.T) {
	host := newFakeHost(1)
	m := newTestManager(t, 1, host)

	c := clause.New([]clause.Literal{11, 12}, 2)
	m.ReturnClauses([]clause.Clause{c})
	require.Equal(t, 1, m.CDB().Size())

	// Returning the same clause again is filtered by the process
	// filter and must not double-admit.
	m.ReturnClauses([]clause.Clause{c})
	require.Equal(t, 1, m.CDB().Size())
}
