package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolver() *Solver {
	return New(DefaultConfig(), nil)
}

func TestSolverTrivialSat(t *testing.T) {
	s := newTestSolver()
	x1, x2 := s.NewLit(), s.NewLit()
	require.True(t, s.AddClause(x1, x2))
	require.True(t, s.AddClause(x1.Negation(), x2))

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, Sat, status)
	assertSatisfies(t, s, [][]Lit{{x1, x2}, {x1.Negation(), x2}})
}

func TestSolverTrivialUnsat(t *testing.T) {
	s := newTestSolver()
	x1 := s.NewLit()
	require.True(t, s.AddClause(x1))
	// x1 is already forced true at decision level 0, so adding its
	// negation simplifies to the empty clause: AddClause reports the
	// contradiction immediately rather than waiting for Solve.
	require.False(t, s.AddClause(x1.Negation()))

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, Unsat, status)
}

func TestSolverUnitPropagationDetectsConflict(t *testing.T) {
	s := newTestSolver()
	x1, x2 := s.NewLit(), s.NewLit()
	require.True(t, s.AddClause(x1))
	// Simplifies to the forced unit x2 at level 0: no contradiction yet.
	require.True(t, s.AddClause(x1.Negation(), x2))
	// x2 is now forced true, so its negation is the empty clause.
	require.False(t, s.AddClause(x2.Negation()))

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, Unsat, status)
}

func TestSolverPigeonholeTwoIntoOneIsUnsat(t *testing.T) {
	// Two pigeons, one hole: p1 in hole, p2 in hole, but not both.
	s := newTestSolver()
	p1, p2 := s.NewLit(), s.NewLit()
	require.True(t, s.AddClause(p1))
	require.True(t, s.AddClause(p2))
	require.False(t, s.AddClause(p1.Negation(), p2.Negation()))

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, Unsat, status)
}

func TestSolverAddClauseAfterUnsatIsNoop(t *testing.T) {
	s := newTestSolver()
	x1 := s.NewLit()
	require.True(t, s.AddClause(x1))
	require.False(t, s.AddClause(x1.Negation()))
	assert.False(t, s.AddClause(x1))
}

func TestSolverLarger3SATChain(t *testing.T) {
	s := newTestSolver()
	n := 30
	lits := make([]Lit, n)
	for i := range lits {
		lits[i] = s.NewLit()
	}
	// A satisfiable chain: each clause links consecutive variables so
	// that assigning every literal true satisfies all of them.
	for i := 0; i+2 < n; i++ {
		require.True(t, s.AddClause(lits[i], lits[i+1], lits[i+2]))
	}
	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, Sat, status)
}

func TestSolverConflictBudgetYieldsIndet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConflictBudget = 0
	s := New(cfg, nil)
	// A problem that cannot be solved by unit propagation alone, so a
	// zero conflict budget forces Indet rather than an instant verdict.
	a, b, c := s.NewLit(), s.NewLit(), s.NewLit()
	require.True(t, s.AddClause(a, b, c))
	require.True(t, s.AddClause(a.Negation(), b))
	require.True(t, s.AddClause(b.Negation(), c))
	require.True(t, s.AddClause(a.Negation(), c.Negation()))

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, Indet, status)
}

func TestSolverInterruptIsSafeToCallConcurrently(t *testing.T) {
	s := newTestSolver()
	x1, x2 := s.NewLit(), s.NewLit()
	require.True(t, s.AddClause(x1, x2))
	done := make(chan struct{})
	go func() {
		<-done
		s.Interrupt()
	}()
	close(done)
	status, err := s.Solve()
	require.NoError(t, err)
	assert.Contains(t, []Status{Sat, Indet}, status)
}

func TestSolverDefaultPolarityIsTrue(t *testing.T) {
	// p cnf 2 0: two variables, no clauses at all. With no clause ever
	// forcing a value, every decision falls back to phase-saving's
	// default, which must resolve to True.
	s := newTestSolver()
	s.NewLit()
	s.NewLit()

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	model := s.Model()
	assert.Equal(t, LTrue, model[0])
	assert.Equal(t, LTrue, model[1])
}

func TestSolverPigeonholeFourIntoThreeIsUnsat(t *testing.T) {
	// Four pigeons, three holes. Unlike the two-into-one case above,
	// deciding a single pigeon's hole never cascades by unit propagation
	// alone into a violated clause: each remaining pigeon still has two
	// free holes after one is ruled out, so a real conflict here can only
	// be reached after multiple decisions, forcing analyze/computeLBD to
	// run against a trail spanning more than one decision level.
	s := newTestSolver()
	const pigeons, holes = 4, 3
	lit := make([][]Lit, pigeons)
	for p := 0; p < pigeons; p++ {
		lit[p] = make([]Lit, holes)
		for h := 0; h < holes; h++ {
			lit[p][h] = s.NewLit()
		}
	}
	for p := 0; p < pigeons; p++ {
		require.True(t, s.AddClause(lit[p]...))
	}
	for h := 0; h < holes; h++ {
		for p1 := 0; p1 < pigeons; p1++ {
			for p2 := p1 + 1; p2 < pigeons; p2++ {
				require.True(t, s.AddClause(lit[p1][h].Negation(), lit[p2][h].Negation()))
			}
		}
	}

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, Unsat, status)
	// Unsolvable by propagation alone, so reaching Unsat necessarily went
	// through at least one real conflict analysis.
	assert.Greater(t, s.Stats.Conflicts, int64(0))
}

func TestSolverReduceDBDropsWorstLearnts(t *testing.T) {
	// Builds the learnt database directly, the way search would over the
	// course of several conflicts, and fires reduceDB without needing a
	// search deep enough to trip it naturally.
	s := newTestSolver()
	vars := make([]Lit, 6)
	for i := range vars {
		vars[i] = s.NewLit()
	}
	addLearnt := func(lits []Lit, lbd uint32) {
		cr := s.ca.Alloc(lits, true)
		c := s.ca.Clause(cr)
		c.setLBD(lbd)
		s.learnts = append(s.learnts, cr)
	}
	addLearnt([]Lit{vars[0], vars[1], vars[2]}, 5)
	addLearnt([]Lit{vars[1], vars[2], vars[3]}, 2)
	addLearnt([]Lit{vars[2], vars[3], vars[4]}, 4)
	addLearnt([]Lit{vars[3], vars[4], vars[5]}, 3)
	require.Len(t, s.learnts, 4)

	s.Stats.Conflicts = 100
	s.reduceDB()

	assert.Equal(t, int64(1), s.Stats.ReduceDBCalls)
	assert.Equal(t, int64(1), s.nbReducedb)
	// The two highest-LBD clauses (5 and 4) are in the worse half and are
	// size > 2, so reduceDB discards them, keeping LBD 3 and 2.
	assert.Len(t, s.learnts, 2)
	for _, cr := range s.learnts {
		assert.LessOrEqual(t, s.ca.Clause(cr).LBD(), uint32(3))
	}
	// Freeing those two clauses, each over GarbageFrac's threshold on
	// this small arena, must have triggered a compacting collection.
	assert.Equal(t, 0, s.ca.Wasted())
}

// assertSatisfies checks that s.Model() satisfies every clause in cnf.
func assertSatisfies(t *testing.T, s *Solver, cnf [][]Lit) {
	t.Helper()
	model := s.Model()
	for _, clause := range cnf {
		ok := false
		for _, l := range clause {
			v := l.Var()
			bound := model[v]
			if (bound == LTrue) == l.IsPositive() {
				ok = true
				break
			}
		}
		assert.True(t, ok, "clause %v not satisfied by model %v", clause, model)
	}
}
