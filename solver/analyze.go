package solver

// analyze performs First-UIP conflict analysis starting from the clause
// confl that propagate found falsified, following the reason chain
// backwards along the trail until exactly one literal of the current
// decision level remains in the working set (the first unique implication
// point). It returns the learnt clause (asserting literal first) and the
// backjump level to cancelUntil to, grounded directly on
// core/Solver.cc's analyze().
func (s *Solver) analyze(confl CRef) (learnt []Lit, btLevel int) {
	pathC := 0
	p := LitUndef
	learnt = append(learnt, LitUndef) // placeholder for the asserting literal
	idx := len(s.trail) - 1

	for {
		c := s.ca.Clause(confl)
		if c.Learnt() {
			s.clauseBumpActivity(confl)
		}
		start := 0
		if p != LitUndef {
			start = 1 // position 0 of a reason clause is the implied literal itself
		}
		for j := start; j < c.Len(); j++ {
			q := c.Get(j)
			v := q.Var()
			if s.seen[v] || s.varLevel[v] == 0 {
				continue
			}
			s.seen[v] = true
			s.varBumpActivity(v)
			if s.varLevel[v] >= s.decisionLevel() {
				pathC++
			} else {
				learnt = append(learnt, q)
			}
		}

		for !s.seen[s.trail[idx].Var()] {
			idx--
		}
		p = s.trail[idx]
		pv := p.Var()
		idx--
		confl = s.reason[pv]
		s.seen[pv] = false
		pathC--
		if pathC <= 0 {
			break
		}
	}
	learnt[0] = p.Negation()

	if len(learnt) == 1 {
		btLevel = 0
	} else {
		maxI := 1
		for i := 2; i < len(learnt); i++ {
			if s.varLevel[learnt[i].Var()] > s.varLevel[learnt[maxI].Var()] {
				maxI = i
			}
		}
		learnt[1], learnt[maxI] = learnt[maxI], learnt[1]
		btLevel = s.varLevel[learnt[1].Var()]
	}

	for _, l := range learnt {
		s.seen[l.Var()] = false
	}

	return learnt, btLevel
}

// computeLBD returns the number of distinct decision levels represented
// among lits, the "glue" measure Glucose uses to prioritize learnt
// clauses. It uses s.lbdSeen as a generation-tagged scratch array (bumping
// s.lbdGen instead of clearing the array) for O(len(lits)) computation,
// grounded on core/Solver.cc's computeLBD.
func (s *Solver) computeLBD(lits []Lit) uint32 {
	s.lbdGen++
	gen := s.lbdGen
	var nLevels uint32
	for _, l := range lits {
		lv := s.varLevel[l.Var()]
		if s.lbdSeen[lv] != gen {
			s.lbdSeen[lv] = gen
			nLevels++
		}
	}
	return nLevels
}
