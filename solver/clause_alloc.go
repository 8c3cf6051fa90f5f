package solver

import (
	"math"

	"github.com/pkg/errors"
)

// CRef is an index into a ClauseAllocator's backing arena. Clauses are
// referred to by CRef rather than by pointer throughout the solver so that
// a garbage collection can relocate the arena without invalidating every
// holder of a reference (see Solver.garbageCollect and ClauseAllocator.Reloc).
type CRef uint32

// CRefUndef is the sentinel "no clause" reference, returned by propagate
// when no clause falsified, and stored as the reason for decision literals
// and literals implied by nothing (i.e. none).
const CRefUndef CRef = 1<<32 - 1

// Clause header bits, packed into the single 32-bit unit preceding a
// clause's literals.
const (
	hdrLearntBit    uint32 = 1 << 31
	hdrDeletedBit   uint32 = 1 << 30
	hdrRelocatedBit uint32 = 1 << 29
	hdrSizeMask     uint32 = hdrRelocatedBit - 1
)

// clauseUnits returns the number of 32-bit units a clause of nLits literals
// occupies in the arena: one header unit, one per literal, and, for learnt
// clauses, one for the floating activity and one for the LBD.
func clauseUnits(nLits int, learnt bool) int {
	units := 1 + nLits
	if learnt {
		units += 2
	}
	return units
}

// ClauseAllocator is the contiguous, bump-allocated arena backing every
// clause in the solver. Clauses are appended and never moved in place;
// removed clauses are merely marked deleted and their units counted as
// wasted until a garbage collection compacts the arena into a fresh one.
type ClauseAllocator struct {
	data   []uint32
	wasted uint32
}

// NewClauseAllocator returns an empty arena sized for roughly capHint units
// of initial clause storage.
func NewClauseAllocator(capHint int) *ClauseAllocator {
	if capHint < 1024 {
		capHint = 1024
	}
	return &ClauseAllocator{data: make([]uint32, 0, capHint)}
}

// Size is the number of units currently occupied by live and wasted clauses.
func (ca *ClauseAllocator) Size() int { return len(ca.data) }

// Wasted is the number of units occupied by clauses freed since the last
// garbage collection.
func (ca *ClauseAllocator) Wasted() int { return int(ca.wasted) }

// Alloc appends a new clause made of lits and returns a reference to it.
// Learnt clauses get a zeroed activity and LBD; callers set those
// separately once the clause is fully built.
func (ca *ClauseAllocator) Alloc(lits []Lit, learnt bool) CRef {
	units := clauseUnits(len(lits), learnt)
	if uint64(len(ca.data))+uint64(units) >= uint64(CRefUndef) {
		panic(newOOMError(errors.New("clause arena exhausted")))
	}
	cr := CRef(len(ca.data))
	hdr := uint32(len(lits)) & hdrSizeMask
	if learnt {
		hdr |= hdrLearntBit
	}
	ca.data = append(ca.data, hdr)
	for _, l := range lits {
		ca.data = append(ca.data, uint32(l))
	}
	if learnt {
		ca.data = append(ca.data, 0, 0)
	}
	return cr
}

// Clause returns a view onto the clause at cr. The view aliases the arena's
// backing storage: mutating it through Set/setActivity/setLBD mutates the
// arena in place.
func (ca *ClauseAllocator) Clause(cr CRef) Clause {
	return Clause{ca: ca, cr: cr}
}

// Free accounts a clause's units as wasted. It does not move or zero the
// underlying storage; callers must have already marked the clause deleted
// (Clause.markDeleted) so that lazy watcher cleanup and relocAll skip it.
func (ca *ClauseAllocator) Free(cr CRef) {
	c := ca.Clause(cr)
	ca.wasted += uint32(clauseUnits(c.Len(), c.Learnt()))
}

// CheckGarbage reports whether wasted space exceeds frac of the arena's
// total size, the trigger reduceDB uses to call Solver.garbageCollect.
func (ca *ClauseAllocator) CheckGarbage(frac float64) bool {
	return float64(ca.wasted) > float64(len(ca.data))*frac
}

// Reloc copies the clause at *cr into to, leaving a forwarding reference
// behind so that any other CRef still pointing at the old location can be
// relocated too, and rewrites *cr to the new location.
func (ca *ClauseAllocator) Reloc(cr *CRef, to *ClauseAllocator) {
	c := ca.Clause(*cr)
	if c.relocated() {
		*cr = c.relocationTarget()
		return
	}
	lits := make([]Lit, c.Len())
	for i := range lits {
		lits[i] = c.Get(i)
	}
	dst := to.Alloc(lits, c.Learnt())
	if c.Learnt() {
		nc := to.Clause(dst)
		nc.setActivity(c.activity())
		nc.setLBD(c.LBD())
	}
	c.setRelocationTarget(dst)
	*cr = dst
}

// Clause is a thin, mutable view onto a clause stored in a ClauseAllocator.
// Two Clause values constructed from the same (ca, cr) alias the same
// storage; there is no separate ownership.
type Clause struct {
	ca *ClauseAllocator
	cr CRef
}

func (c Clause) header() uint32     { return c.ca.data[c.cr] }
func (c Clause) setHeaderBit(b uint32, v bool) {
	if v {
		c.ca.data[c.cr] |= b
	} else {
		c.ca.data[c.cr] &^= b
	}
}

// Len is the number of literals in the clause.
func (c Clause) Len() int { return int(c.header() & hdrSizeMask) }

// Learnt reports whether the clause was derived by conflict analysis
// rather than given as part of the original problem.
func (c Clause) Learnt() bool { return c.header()&hdrLearntBit != 0 }

// Deleted reports whether the clause has been logically removed. Deleted
// clauses remain in the arena, counted as wasted, until the next GC.
func (c Clause) Deleted() bool { return c.header()&hdrDeletedBit != 0 }

func (c Clause) markDeleted()      { c.setHeaderBit(hdrDeletedBit, true) }
func (c Clause) relocated() bool   { return c.header()&hdrRelocatedBit != 0 }

func (c Clause) setRelocationTarget(to CRef) {
	c.setHeaderBit(hdrRelocatedBit, true)
	c.ca.data[c.cr+1] = uint32(to)
}

func (c Clause) relocationTarget() CRef {
	return CRef(c.ca.data[c.cr+1])
}

// Get returns the i-th literal.
func (c Clause) Get(i int) Lit { return Lit(c.ca.data[uint32(c.cr)+1+uint32(i)]) }

// Set overwrites the i-th literal.
func (c Clause) Set(i int, l Lit) { c.ca.data[uint32(c.cr)+1+uint32(i)] = uint32(l) }

// Swap exchanges the i-th and j-th literals, used to keep the two watched
// literals at positions 0 and 1.
func (c Clause) Swap(i, j int) {
	a, b := c.Get(i), c.Get(j)
	c.Set(i, b)
	c.Set(j, a)
}

func (c Clause) trailerBase() uint32 { return uint32(c.cr) + 1 + uint32(c.Len()) }

func (c Clause) activity() float32 {
	return math.Float32frombits(c.ca.data[c.trailerBase()])
}

func (c Clause) setActivity(v float32) {
	c.ca.data[c.trailerBase()] = math.Float32bits(v)
}

// LBD is the Literal Block Distance recorded for a learnt clause at the
// moment it was derived.
func (c Clause) LBD() uint32 { return c.ca.data[c.trailerBase()+1] }

func (c Clause) setLBD(v uint32) { c.ca.data[c.trailerBase()+1] = v }

// Lits materializes the clause's literals as an owned slice, for callers
// (logging, CNF export) that must not alias arena storage.
func (c Clause) Lits() []Lit {
	out := make([]Lit, c.Len())
	for i := range out {
		out[i] = c.Get(i)
	}
	return out
}
