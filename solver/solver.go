package solver

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Solver is a single incremental CDCL instance: its own variable space,
// clause arena, and trail. It is not safe for concurrent use by multiple
// goroutines except for Interrupt, which may be called from any goroutine
// at any time.
type Solver struct {
	cfg Config
	log *logrus.Logger

	ca       *ClauseAllocator
	clauses  []CRef
	learnts  []CRef
	watches  *watches

	trail    []Lit
	trailLim []int
	qhead    int

	assigns  []LBool
	varLevel []int
	reason   []CRef
	polarity []bool

	activity []float64
	varInc   float64
	clauseInc float32
	order    *orderHeap

	seen    []bool
	lbdSeen []int32
	lbdGen  int32

	lbdQueue   *boundedQueue
	trailQueue *boundedQueue
	sumLBD     float64

	nextReduceDB int64
	nbReducedb   int64

	nVars int
	ok    bool

	model []LBool

	asynchInterrupt atomic.Bool

	// Stats mirrors the fields of core/Solver.cc's printIntermediateStats.
	Stats struct {
		Conflicts      int64
		Decisions      int64
		Restarts       int64
		Propagations   int64
		Deleted        int64
		ReduceDBCalls  int64
	}
	nClauses     int
	clauseLits   int
	nLearnts     int
	learntLits   int
}

// New returns a ready-to-use Solver. A nil logger defaults to
// logrus.StandardLogger().
func New(cfg Config, log *logrus.Logger) *Solver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Solver{
		cfg:          cfg,
		log:          log,
		ca:           NewClauseAllocator(1 << 16),
		varInc:       1,
		clauseInc:    1,
		ok:           true,
		lbdQueue:     newBoundedQueue(50),
		trailQueue:   newBoundedQueue(5000),
		nextReduceDB: 2000,
		// lbdSeen is indexed by decision level, which can reach nVars (one
		// decision per variable); sized one larger than varLevel/activity
		// so that top index stays in bounds.
		lbdSeen: []int32{0},
	}
	s.watches = newWatches(s.ca)
	s.order = newOrderHeap(&s.activity)
	return s
}

// NewVar declares a fresh variable and returns it, growing every per-variable array, following core/Solver.cc's newVar.
func (s *Solver) NewVar() Var {
	v := Var(s.nVars)
	s.nVars++
	s.watches.grow(s.nVars)
	s.assigns = append(s.assigns, LUndef)
	s.varLevel = append(s.varLevel, 0)
	s.reason = append(s.reason, CRefUndef)
	s.polarity = append(s.polarity, false) // SignedLit(false) is the positive literal; default phase is True
	s.activity = append(s.activity, 0)
	s.seen = append(s.seen, false)
	s.lbdSeen = append(s.lbdSeen, 0)
	s.order.grow(s.nVars)
	s.order.Insert(v)
	return v
}

// NewLit is a convenience wrapper returning v's positive literal directly.
func (s *Solver) NewLit() Lit {
	return s.NewVar().Lit()
}

// AddClause adds a clause over the given literals to the problem. It
// returns false, and leaves the solver permanently unsatisfiable, if the
// clause (after removing duplicates and already-falsified literals at
// decision level 0) is empty or contradictory. It must only be called at
// decision level 0, matching core/Solver.cc's addClause_.
func (s *Solver) AddClause(lits ...Lit) bool {
	if !s.ok {
		return false
	}
	if s.decisionLevel() != 0 {
		panic(errors.New("minicdcl: AddClause called below decision level 0"))
	}
	cp := append([]Lit(nil), lits...)
	sortLits(cp)
	out := cp[:0]
	var prev Lit = LitUndef
	for _, l := range cp {
		if s.value(l) == LTrue || l == prev.Negation() {
			return true // already satisfied, or p and -p both present
		}
		if s.value(l) == LFalse || l == prev {
			continue // falsified at level 0, or duplicate: drop
		}
		out = append(out, l)
		prev = l
	}
	if len(out) == 0 {
		s.ok = false
		return false
	}
	if len(out) == 1 {
		s.uncheckedEnqueue(out[0], CRefUndef)
		if s.propagate() != CRefUndef {
			s.ok = false
			return false
		}
		return true
	}
	cr := s.ca.Alloc(out, false)
	s.clauses = append(s.clauses, cr)
	s.attachClause(cr)
	return true
}

func sortLits(lits []Lit) {
	for i := 1; i < len(lits); i++ {
		for j := i; j > 0 && lits[j-1] > lits[j]; j-- {
			lits[j-1], lits[j] = lits[j], lits[j-1]
		}
	}
}

// Interrupt asynchronously requests that a running Solve return Indet as
// soon as it next checks its budget. It is safe to call from any
// goroutine, including one triggered by os/signal.Notify.
func (s *Solver) Interrupt() {
	s.asynchInterrupt.Store(true)
}

// clearInterrupt resets the flag Interrupt sets, called at the start of
// Solve so a stale interrupt from a previous call doesn't abort this one.
func (s *Solver) clearInterrupt() {
	s.asynchInterrupt.Store(false)
}

func (s *Solver) withinBudget() bool {
	if s.asynchInterrupt.Load() {
		return false
	}
	if s.cfg.ConflictBudget >= 0 && s.Stats.Conflicts >= s.cfg.ConflictBudget {
		return false
	}
	if s.cfg.PropagationBudget >= 0 && s.Stats.Propagations >= s.cfg.PropagationBudget {
		return false
	}
	return true
}

// Progress returns a rough estimate, between 0 and 1, of how much of the
// search space the current trail covers, each deeper decision level's
// assignments weighted 32 times less than the level above. It is computed
// from the current trail alone, so it falls again after a backjump or a
// restart. The original source's
// own comment calls this measure "not very useful"; it is kept because
// it is cheap to compute.
func (s *Solver) Progress() float64 {
	progress := 0.0
	f := 1.0 / float64(s.nVars)
	for i := 0; i <= s.decisionLevel(); i++ {
		var beg int
		if i == 0 {
			beg = 0
		} else {
			beg = s.trailLim[i-1]
		}
		var end int
		if i < len(s.trailLim) {
			end = s.trailLim[i]
		} else {
			end = len(s.trail)
		}
		progress += f * float64(end-beg)
		f *= 1.0 / 32
	}
	return progress / float64(s.nVars)
}

// Model returns the last satisfying assignment found, indexed by Var.
// Its contents are only meaningful after Solve has returned Sat.
func (s *Solver) Model() []LBool {
	return s.model
}

// varBumpActivity increases v's VSIDS activity by the current increment,
// rescaling every variable's activity down if it would overflow float64's
// useful range, per core/Solver.h's varBumpActivity (1e100 rescale
// threshold carried over unchanged from the original).
func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 {
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.order.Contains(v) {
		s.order.Decrease(v)
	}
}

func (s *Solver) varDecayActivity() {
	s.varInc /= s.cfg.VarDecay
}

// clauseBumpActivity mirrors varBumpActivity for learnt clause activity,
// with the 1e20 rescale threshold core/Solver.h's claBumpActivity uses.
func (s *Solver) clauseBumpActivity(cr CRef) {
	c := s.ca.Clause(cr)
	a := c.activity() + s.clauseInc
	c.setActivity(a)
	if a > 1e20 {
		for _, lcr := range s.learnts {
			lc := s.ca.Clause(lcr)
			lc.setActivity(lc.activity() * 1e-20)
		}
		s.clauseInc *= 1e-20
	}
}

func (s *Solver) clauseDecayActivity() {
	s.clauseInc /= float32(s.cfg.ClauseDecay)
}

// pickBranchLit chooses the next decision literal by popping the
// highest-activity unassigned variable off the order heap, applying
// phase-saving (the polarity it held the last time it was unbound), or
// LitUndef once every variable is assigned, matching
// core/Solver.cc's pickBranchLit.
func (s *Solver) pickBranchLit() Lit {
	var v Var = VarUndef
	for !s.order.Empty() {
		v = s.order.RemoveMin()
		if s.valueVar(v) == LUndef {
			break
		}
		v = VarUndef
	}
	if v == VarUndef {
		return LitUndef
	}
	return v.SignedLit(s.polarity[v])
}
