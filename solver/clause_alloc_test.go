package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauseAllocatorAllocAndGet(t *testing.T) {
	ca := NewClauseAllocator(64)
	lits := []Lit{4, 5, 8}
	cr := ca.Alloc(lits, false)
	c := ca.Clause(cr)

	require.Equal(t, 3, c.Len())
	assert.False(t, c.Learnt())
	assert.False(t, c.Deleted())
	for i, l := range lits {
		assert.Equal(t, l, c.Get(i))
	}
}

func TestClauseAllocatorLearntTrailer(t *testing.T) {
	ca := NewClauseAllocator(64)
	cr := ca.Alloc([]Lit{2, 3}, true)
	c := ca.Clause(cr)

	require.True(t, c.Learnt())
	c.setActivity(1.5)
	c.setLBD(3)
	assert.Equal(t, float32(1.5), c.activity())
	assert.Equal(t, uint32(3), c.LBD())
}

func TestClauseAllocatorSwap(t *testing.T) {
	ca := NewClauseAllocator(64)
	cr := ca.Alloc([]Lit{10, 20, 30}, false)
	c := ca.Clause(cr)
	c.Swap(0, 2)
	assert.Equal(t, Lit(30), c.Get(0))
	assert.Equal(t, Lit(20), c.Get(1))
	assert.Equal(t, Lit(10), c.Get(2))
}

func TestClauseAllocatorFreeAccountsWasted(t *testing.T) {
	ca := NewClauseAllocator(64)
	cr := ca.Alloc([]Lit{0, 1, 2}, false)
	before := ca.Wasted()
	ca.Clause(cr).markDeleted()
	ca.Free(cr)
	assert.Greater(t, ca.Wasted(), before)
	assert.True(t, ca.Clause(cr).Deleted())
}

func TestClauseAllocatorReloc(t *testing.T) {
	ca := NewClauseAllocator(64)
	cr := ca.Alloc([]Lit{6, 7}, true)
	c := ca.Clause(cr)
	c.setActivity(9)
	c.setLBD(2)

	to := NewClauseAllocator(64)
	oldCR := cr
	ca.Reloc(&cr, to)
	moved := to.Clause(cr)
	assert.Equal(t, Lit(6), moved.Get(0))
	assert.Equal(t, Lit(7), moved.Get(1))
	assert.Equal(t, float32(9), moved.activity())
	assert.Equal(t, uint32(2), moved.LBD())

	// Relocating the same original reference again must land on the same
	// new location, via the forwarding pointer left in the old arena,
	// rather than allocating a duplicate clause.
	sizeBefore := to.Size()
	cr2 := oldCR
	ca.Reloc(&cr2, to)
	assert.Equal(t, cr, cr2)
	assert.Equal(t, sizeBefore, to.Size())
}

func TestClauseAllocatorCheckGarbage(t *testing.T) {
	ca := NewClauseAllocator(8)
	cr := ca.Alloc([]Lit{0, 1, 2}, false)
	assert.False(t, ca.CheckGarbage(0.20))
	ca.Clause(cr).markDeleted()
	ca.Free(cr)
	assert.True(t, ca.CheckGarbage(0.20))
}
