package solver

import "sort"

// reduceDB discards roughly the least useful half of the learnt clause
// database: clauses of size > 2 always rank worse than binary clauses
// (binaries are never touched), and among the rest higher LBD (fewer
// shared decision levels, i.e. worse "glue") ranks worse, ties broken by
// lower activity ranking worse. Locked clauses (currently serving as some
// literal's reason) are never removed. Grounded directly on
// core/Solver.cc's reduceDB_lt comparator and reduceDB().
func (s *Solver) reduceDB() {
	s.Stats.ReduceDBCalls++
	s.nbReducedb++
	s.nextReduceDB = s.Stats.Conflicts + 2000 + 1000*s.nbReducedb

	sort.SliceStable(s.learnts, func(i, j int) bool {
		ci, cj := s.ca.Clause(s.learnts[i]), s.ca.Clause(s.learnts[j])
		if ci.Len() > 2 && cj.Len() == 2 {
			return true
		}
		if cj.Len() > 2 && ci.Len() == 2 {
			return false
		}
		if ci.Len() == 2 && cj.Len() == 2 {
			return false
		}
		if ci.LBD() != cj.LBD() {
			return ci.LBD() > cj.LBD()
		}
		return ci.activity() < cj.activity()
	})

	limit := len(s.learnts) / 2
	kept := s.learnts[:0]
	for i, cr := range s.learnts {
		c := s.ca.Clause(cr)
		if c.Len() > 2 && !s.locked(cr) && i < limit {
			s.removeClause(cr)
			s.Stats.Deleted++
			continue
		}
		kept = append(kept, cr)
	}
	s.learnts = kept

	if s.ca.CheckGarbage(s.cfg.GarbageFrac) {
		s.garbageCollect()
	}
}
