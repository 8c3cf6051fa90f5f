package solver

import "math"

// search runs one restart's worth of the CDCL loop: propagate, and on
// conflict analyze/learn/backjump; on no conflict, restart or decide.
// It returns Sat once every variable is bound, Unsat once the empty
// clause is derived, or Indet if the restart's conflict budget is spent
// or the solver is interrupted, in which case the caller (Solve) starts
// another restart with a larger budget. Grounded directly on
// core/Solver.cc's search(nof_conflicts).
func (s *Solver) search(nofConflicts int) Status {
	if !s.ok {
		return Unsat
	}
	conflictC := 0
	for {
		confl := s.propagate()
		if confl != CRefUndef {
			s.Stats.Conflicts++
			conflictC++
			if s.decisionLevel() == 0 {
				return Unsat
			}
			s.trailQueue.Push(float64(len(s.trail)))
			// Block restart (CP 2012): a deep trail this late in the search
			// suggests search is close to a solution, so invalidate the lbd
			// queue rather than let the Glucose check below fire a restart.
			if s.Stats.Conflicts > 10000 && s.lbdQueue.Full() && float64(len(s.trail)) > 1.4*s.trailQueue.Avg() {
				s.lbdQueue.clear()
			}

			learnt, btLevel := s.analyze(confl)
			lbd := s.computeLBD(learnt)
			s.lbdQueue.Push(float64(lbd))
			s.sumLBD += float64(lbd)
			s.cancelUntil(btLevel)

			if len(learnt) == 1 {
				s.uncheckedEnqueue(learnt[0], CRefUndef)
			} else {
				cr := s.ca.Alloc(learnt, true)
				c := s.ca.Clause(cr)
				c.setLBD(lbd)
				s.learnts = append(s.learnts, cr)
				s.attachClause(cr)
				s.clauseBumpActivity(cr)
				s.uncheckedEnqueue(learnt[0], cr)
			}
			s.varDecayActivity()
			s.clauseDecayActivity()

			if s.cfg.Verbosity >= 1 && s.Stats.Conflicts%1000 == 0 {
				s.logStats()
			}
			continue
		}

		if !s.withinBudget() {
			return Indet
		}

		// Glucose restart: force a restart once the recent-LBD average
		// runs high relative to the all-time average. The block-restart
		// check above, by clearing the queue, is what keeps this from
		// firing during a deep, promising trail.
		if s.lbdQueue.Full() && s.lbdQueue.Avg()*0.8 > s.sumLBD/float64(s.Stats.Conflicts) {
			s.cancelUntil(0)
			s.lbdQueue.clear()
			s.Stats.Restarts++
			return Indet
		}

		if nofConflicts > 0 && conflictC >= nofConflicts {
			s.cancelUntil(0)
			s.Stats.Restarts++
			return Indet
		}

		if s.Stats.Conflicts >= s.nextReduceDB {
			s.reduceDB()
		}

		lit := s.pickBranchLit()
		if lit == LitUndef {
			return Sat
		}
		s.Stats.Decisions++
		s.newDecisionLevel()
		s.uncheckedEnqueue(lit, CRefUndef)
	}
}

func (s *Solver) logStats() {
	s.log.WithFields(map[string]interface{}{
		"restarts":     s.Stats.Restarts,
		"conflicts":    s.Stats.Conflicts,
		"decisions":    s.Stats.Decisions,
		"clauses":      s.nClauses,
		"learnts":      s.nLearnts,
		"reduce_calls": s.Stats.ReduceDBCalls,
		"deleted":      s.Stats.Deleted,
		"progress":     s.Progress(),
	}).Info("search progress")
}

// Solve runs search to completion, restarting with a growing conflict
// allowance (the Luby sequence, or a geometric one per Config.LubyRestart)
// each time search returns Indet without being interrupted or exhausting
// an external budget, until a verdict or an external stop condition is
// reached. It follows core/Solver.cc's solve_(), and recovers an OOMError
// panic from the clause arena the way Main.cc catches std::bad_alloc.
func (s *Solver) Solve() (status Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			if oom, ok := r.(*OOMError); ok {
				status, err = Indet, oom
				return
			}
			panic(r)
		}
	}()

	s.clearInterrupt()
	if !s.ok {
		return Unsat, nil
	}

	curRestart := 0
	for {
		var restBase float64
		if s.cfg.LubyRestart {
			restBase = luby(2, curRestart)
		} else {
			restBase = math.Pow(1.5, float64(curRestart))
		}
		st := s.search(int(restBase * 32))
		curRestart++
		if st != Indet {
			if st == Sat {
				s.extractModel()
			}
			s.cancelUntil(0)
			return st, nil
		}
		if !s.withinBudget() {
			s.cancelUntil(0)
			return Indet, nil
		}
		if s.cfg.Verbosity >= 2 {
			s.log.WithField("restarts", s.Stats.Restarts).Info("restart")
		}
	}
}

// extractModel snapshots the current total assignment into s.model once
// search reports Sat.
func (s *Solver) extractModel() {
	s.model = make([]LBool, s.nVars)
	copy(s.model, s.assigns)
}
