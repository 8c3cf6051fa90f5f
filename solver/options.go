package solver

// Config holds every tunable of the solver, passed explicitly to New
// rather than read from a process-wide registry — the original source's
// utils/Options.cc keeps a global table of command-line options that every
// Solver reads from; threading an explicit struct instead means two
// solvers in the same process can run with different settings and the
// settings are visible at the call site.
type Config struct {
	// VarDecay is the per-conflict decay factor applied to variable
	// activity before bumping, in (0,1). Default 0.95.
	VarDecay float64
	// ClauseDecay is the per-conflict decay factor applied to learnt
	// clause activity, in (0,1). Default 0.999.
	ClauseDecay float64
	// LubyRestart selects the Luby restart sequence (base 2, scaled by
	// 32 conflicts); when false, restart budgets grow geometrically
	// instead (32 * 1.5^r), per core/Solver.cc's solve_(). Default true.
	LubyRestart bool
	// GarbageFrac is the fraction of wasted arena space that triggers a
	// garbage collection. Default 0.20.
	GarbageFrac float64
	// Verbosity controls stats logging: 0 silent, 1 periodic stats lines,
	// 2 additionally logs every garbage collection and restart.
	Verbosity int
	// ConflictBudget caps the number of conflicts Solve will tolerate
	// before giving up with Indet; -1 means unbounded.
	ConflictBudget int64
	// PropagationBudget caps the number of unit propagations; -1 means
	// unbounded.
	PropagationBudget int64
}

// DefaultConfig returns the solver's default tuning, matching the
// defaults declared in core/Solver.cc's static Option variables.
func DefaultConfig() Config {
	return Config{
		VarDecay:          0.95,
		ClauseDecay:       0.999,
		LubyRestart:       true,
		GarbageFrac:       0.20,
		Verbosity:         0,
		ConflictBudget:    -1,
		PropagationBudget: -1,
	}
}
