package solverhost

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xDarkicex/sharesat/cdb"
	"github.com/xDarkicex/sharesat/clause"
	"github.com/xDarkicex/sharesat/sat"
	"github.com/xDarkicex/sharesat/sharing"
	"github.com/xDarkicex/sharesat/telemetry"
)

func TestVarRegistryRoundTrip(t *testing.T) {
	reg := NewVarRegistry()
	id := reg.IDFor("x1")
	require.Equal(t, id, reg.IDFor("x1"))
	require.Equal(t, "x1", reg.NameFor(id))

	id2 := reg.IDFor("x2")
	require.NotEqual(t, id, id2)
}

func TestToSharedAndFromSharedRoundTrip(t *testing.T) {
	reg := NewVarRegistry()
	native := sat.NewClause(
		sat.Literal{Variable: "a", Negated: false},
		sat.Literal{Variable: "b", Negated: true},
	)
	native.SetLBD(2)

	shared := toShared(reg, native)
	require.Equal(t, 2, shared.Len())

	back := fromShared(reg, shared)
	names := map[string]bool{}
	for _, l := range back.Literals {
		names[l.Variable] = true
	}
	require.True(t, names["a"])
	require.True(t, names["b"])
}

func newTestPool(t *testing.T, numSolvers int) *Pool {
	hist := telemetry.NewHistograms(prometheus.NewRegistry(), "solverhost_test")
	cfg := sharing.Config{
		NumSolvers:            numSolvers,
		CDB:                   cdb.DefaultOptions(),
		FilterCapacityPerLen:  1000,
		ClauseFilterClearSecs: 3600,
	}
	pool := NewPool(numSolvers)
	mgr := sharing.NewManager(pool, cfg, hist, zerolog.Nop())
	pool.BindManager(mgr)
	return pool
}

func TestLearnedClauseFlowsFromSolverIntoPoolHost(t *testing.T) {
	pool := newTestPool(t, 2)

	learned := sat.NewClause(
		sat.Literal{Variable: "p", Negated: false},
		sat.Literal{Variable: "q", Negated: true},
	)
	learned.SetLBD(2)
	pool.Workers[0].Solver.OnLearnedClause(learned)

	require.Equal(t, 1, pool.Manager.CDB().Size())
}

func TestImportClauseBatchAddsToSolver(t *testing.T) {
	pool := newTestPool(t, 1)
	c := clause.New([]clause.Literal{1, -2}, 2)
	pool.ImportClauseBatch(0, []clause.Clause{c}, func(clause.Clause) bool { return true })
	// AddClause does not error and does not panic; the solver's
	// internal CNF now carries this clause, verified indirectly since
	// CDCLSolver exposes no direct clause count accessor.
}
