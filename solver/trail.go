package solver

// value returns the current three-valued binding of literal l, derived
// from its variable's assignment by flipping on sign:
// value(lit) = value(var(lit)) xor sign(lit).
func (s *Solver) value(l Lit) LBool {
	return s.assigns[l.Var()].xor(!l.IsPositive())
}

// valueVar returns v's current binding, independent of any literal sign.
func (s *Solver) valueVar(v Var) LBool {
	return s.assigns[v]
}

// decisionLevel is the number of decisions currently on the trail.
func (s *Solver) decisionLevel() int { return len(s.trailLim) }

// newDecisionLevel records the current trail length as the start of a new
// decision level, the point cancelUntil rewinds to.
func (s *Solver) newDecisionLevel() {
	s.trailLim = append(s.trailLim, len(s.trail))
}

// uncheckedEnqueue binds l true without checking it against the current
// assignment (the caller must already know l is unassigned or this would
// silently corrupt the trail), recording from as its reason clause
// (CRefUndef for a decision literal).
func (s *Solver) uncheckedEnqueue(l Lit, from CRef) {
	v := l.Var()
	if l.IsPositive() {
		s.assigns[v] = LTrue
	} else {
		s.assigns[v] = LFalse
	}
	s.varLevel[v] = s.decisionLevel()
	s.reason[v] = from
	s.trail = append(s.trail, l)
}

// cancelUntil rewinds the trail to the start of level, undoing every
// assignment made since, saving each undone variable's last polarity for
// phase-saving, and reinserting it into the branching order heap.
func (s *Solver) cancelUntil(level int) {
	if s.decisionLevel() <= level {
		return
	}
	for i := len(s.trail) - 1; i >= s.trailLim[level]; i-- {
		l := s.trail[i]
		v := l.Var()
		s.polarity[v] = !l.IsPositive()
		s.assigns[v] = LUndef
		if !s.order.Contains(v) {
			s.order.Insert(v)
		}
	}
	s.qhead = s.trailLim[level]
	s.trail = s.trail[:s.trailLim[level]]
	s.trailLim = s.trailLim[:level]
}
