package solverhost

import (
	shclause "github.com/xDarkicex/sharesat/clause"
	"github.com/xDarkicex/sharesat/sat"
)

// toShared converts a solver-local clause into the packed-literal
// representation the sharing pipeline exchanges, computing an LBD
// when the solver did not already attach one (e.g. original input
// clauses, which are not learned and carry LBD 0).
func toShared(reg *VarRegistry, c *sat.Clause) shclause.Clause {
	lits := make([]shclause.Literal, len(c.Literals))
	for i, l := range c.Literals {
		id := reg.IDFor(l.Variable)
		if l.Negated {
			lits[i] = -shclause.Literal(id)
		} else {
			lits[i] = shclause.Literal(id)
		}
	}
	lbd := int32(c.LBD)
	if lbd == 0 {
		lbd = lbdForLength(len(lits))
	}
	return shclause.New(lits, lbd)
}

// lbdForLength fills in a plausible LBD for a clause the solver never
// scored (original, non-learned clauses), satisfying Clause.Validate's
// invariants without claiming a glue level the solver never measured.
func lbdForLength(n int) int32 {
	if n <= 1 {
		return 1
	}
	return int32(n)
}

// fromShared converts a packed-literal clause back into the solver's
// native representation so it can be added via CDCLSolver.AddClause.
func fromShared(reg *VarRegistry, c shclause.Clause) *sat.Clause {
	lits := make([]sat.Literal, len(c.Literals))
	for i, lit := range c.Literals {
		lits[i] = sat.Literal{Variable: reg.NameFor(lit.Var()), Negated: lit < 0}
	}
	out := sat.NewClause(lits...)
	out.Learned = true
	out.SetLBD(int(c.LBD))
	return out
}
