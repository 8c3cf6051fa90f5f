package solver

// Watcher records that a clause currently watches one of its own literals:
// whenever that literal's negation is assigned, propagate must visit cref
// to look for a new watch or a unit/conflict. Blocker caches the clause's
// other watched literal so propagate can skip the clause entirely when
// blocker is already satisfied, without touching the arena at all.
type Watcher struct {
	Cref    CRef
	Blocker Lit
}

// watches is an index from literal to the watchers triggered by that
// literal becoming true, that is, by the watched literal (its negation)
// becoming false. Detaching a clause only marks its watcher stale
// (via the clause's Deleted bit); the stale entry is swept out lazily by
// clean, the idiomatic analogue of MiniSat's OccLists<Lit,Watcher,...>.
type watches struct {
	ca      *ClauseAllocator
	lists   [][]Watcher
	dirty   []bool
	dirties []Lit
}

func newWatches(ca *ClauseAllocator) *watches {
	return &watches{ca: ca}
}

// grow extends the index to cover literals of newly declared variables.
func (w *watches) grow(nVars int) {
	n := 2 * nVars
	for len(w.lists) < n {
		w.lists = append(w.lists, nil)
		w.dirty = append(w.dirty, false)
	}
}

func (w *watches) push(l Lit, wa Watcher) {
	w.lists[l] = append(w.lists[l], wa)
}

// smudge marks l's watcher list as containing at least one stale entry,
// to be swept the next time it is read.
func (w *watches) smudge(l Lit) {
	if !w.dirty[l] {
		w.dirty[l] = true
		w.dirties = append(w.dirties, l)
	}
}

func (w *watches) clean(l Lit) {
	ws := w.lists[l]
	j := 0
	for _, wa := range ws {
		if !w.ca.Clause(wa.Cref).Deleted() {
			ws[j] = wa
			j++
		}
	}
	w.lists[l] = ws[:j]
	w.dirty[l] = false
}

// get returns l's watcher list, sweeping stale entries first if needed.
func (w *watches) get(l Lit) []Watcher {
	if w.dirty[l] {
		w.clean(l)
	}
	return w.lists[l]
}

func (w *watches) setList(l Lit, ws []Watcher) {
	w.lists[l] = ws
}

// cleanAll sweeps every watcher list touched by smudge since the last call.
func (w *watches) cleanAll() {
	for _, l := range w.dirties {
		if w.dirty[l] {
			w.clean(l)
		}
	}
	w.dirties = w.dirties[:0]
}

// attachClause registers the clause's first two literals as its watched
// pair, each blocked by the other. Every clause of two or more literals
// must hold exactly one entry in each of its two watched literals' lists;
// a unit clause is never attached, since it is enqueued directly instead.
func (s *Solver) attachClause(cr CRef) {
	c := s.ca.Clause(cr)
	l0, l1 := c.Get(0), c.Get(1)
	s.watches.push(l0.Negation(), Watcher{Cref: cr, Blocker: l1})
	s.watches.push(l1.Negation(), Watcher{Cref: cr, Blocker: l0})
	if c.Learnt() {
		s.nLearnts++
		s.learntLits += c.Len()
	} else {
		s.nClauses++
		s.clauseLits += c.Len()
	}
}

// detachClause removes the clause from its two watcher lists lazily: it
// smudges both lists so the stale entries are swept on next read, rather
// than scanning and compacting them immediately.
func (s *Solver) detachClause(cr CRef) {
	c := s.ca.Clause(cr)
	l0, l1 := c.Get(0), c.Get(1)
	s.watches.smudge(l0.Negation())
	s.watches.smudge(l1.Negation())
	if c.Learnt() {
		s.nLearnts--
		s.learntLits -= c.Len()
	} else {
		s.nClauses--
		s.clauseLits -= c.Len()
	}
}

// removeClause detaches, marks deleted, and frees the clause's arena units.
func (s *Solver) removeClause(cr CRef) {
	c := s.ca.Clause(cr)
	if c.Len() >= 2 {
		s.detachClause(cr)
	}
	c.markDeleted()
	s.ca.Free(cr)
}

// locked reports whether cr is the reason some currently-assigned literal
// is on the trail, and so must not be removed by reduceDB or GC'd away.
func (s *Solver) locked(cr CRef) bool {
	c := s.ca.Clause(cr)
	if c.Len() == 0 {
		return false
	}
	l0 := c.Get(0)
	return s.value(l0) == LTrue && s.reason[l0.Var()] == cr
}

// propagate performs unit propagation (BCP) over the watched-literal
// index until the trail is exhausted or a clause is falsified, returning
// CRefUndef in the former case and the conflicting clause in the latter.
// It follows core/Solver.cc's propagate(): each literal popped off the
// trail visits
// only the clauses that watch its negation, using the blocker cache to
// skip clauses already satisfied without touching the arena.
func (s *Solver) propagate() CRef {
	confl := CRefUndef
	nProps := 0
	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead]
		s.qhead++
		nProps++
		ws := s.watches.get(p)
		i, j := 0, 0
		keep := ws
	watchLoop:
		for i < len(ws) {
			w := ws[i]
			if s.value(w.Blocker) == LTrue {
				keep[j] = w
				j++
				i++
				continue
			}
			cr := w.Cref
			c := s.ca.Clause(cr)
			falseLit := p.Negation()
			if c.Get(0) == falseLit {
				c.Swap(0, 1)
			}
			first := c.Get(0)
			newW := Watcher{Cref: cr, Blocker: first}
			if first != w.Blocker && s.value(first) == LTrue {
				keep[j] = newW
				j++
				i++
				continue
			}
			for k := 2; k < c.Len(); k++ {
				if s.value(c.Get(k)) != LFalse {
					c.Swap(1, k)
					s.watches.push(c.Get(1).Negation(), newW)
					i++
					continue watchLoop
				}
			}
			keep[j] = newW
			j++
			i++
			if s.value(first) == LFalse {
				confl = cr
				s.qhead = len(s.trail)
				for i < len(ws) {
					keep[j] = ws[i]
					j++
					i++
				}
				break watchLoop
			}
			s.uncheckedEnqueue(first, cr)
		}
		s.watches.setList(p, keep[:j])
	}
	s.Stats.Propagations += int64(nProps)
	return confl
}
