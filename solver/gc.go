package solver

// garbageCollect compacts the clause arena: every live clause is copied,
// in order, into a freshly allocated ClauseAllocator, and every CRef that
// refers to it (watchers, reasons, the original and learnt clause lists)
// is relocated to point at the new location. It runs when
// ClauseAllocator.CheckGarbage reports wasted space above Config.GarbageFrac,
// following core/Solver.cc's garbageCollect()/relocAll() exactly, including
// the visitation order: watchers, then reasons, then learnts, then
// original clauses, so that every CRef still reachable from the solver's
// own state is relocated before the old arena is dropped.
func (s *Solver) garbageCollect() {
	to := NewClauseAllocator(s.ca.Size() - s.ca.Wasted())

	s.watches.cleanAll()
	for l := Lit(0); int(l) < len(s.watches.lists); l++ {
		ws := s.watches.lists[l]
		for i := range ws {
			s.ca.Reloc(&ws[i].Cref, to)
		}
	}

	for _, l := range s.trail {
		v := l.Var()
		if s.reason[v] != CRefUndef && (s.ca.Clause(s.reason[v]).relocated() || s.locked(s.reason[v])) {
			s.ca.Reloc(&s.reason[v], to)
		}
	}

	j := 0
	for _, cr := range s.learnts {
		c := s.ca.Clause(cr)
		if c.Deleted() {
			continue
		}
		s.ca.Reloc(&cr, to)
		s.learnts[j] = cr
		j++
	}
	s.learnts = s.learnts[:j]

	j = 0
	for _, cr := range s.clauses {
		c := s.ca.Clause(cr)
		if c.Deleted() {
			continue
		}
		s.ca.Reloc(&cr, to)
		s.clauses[j] = cr
		j++
	}
	s.clauses = s.clauses[:j]

	if s.cfg.Verbosity >= 2 {
		s.log.WithFields(map[string]interface{}{
			"before": s.ca.Size(),
			"after":  to.Size(),
		}).Info("garbage collection")
	}
	s.ca = to
	s.watches.ca = to
}
