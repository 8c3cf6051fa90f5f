package solver

import "container/heap"

// orderHeap is the VSIDS priority queue: a max-heap over variables ordered
// by a caller-owned activity slice, exposing the decrease/increase-key
// operations branching needs when an already-queued variable's activity
// changes. The decrease-key scheme (track each variable's heap position in
// indices, percolate from there) follows MiniSat's mtl/Heap.h, which
// gophersat's queue.go also credits; here the percolation itself is
// delegated to container/heap rather than hand-rolled, with Less inverted
// so heap.Pop surfaces the highest-activity variable.
type orderHeap struct {
	activity *[]float64
	items    []Var
	indices  []int32 // indices[v] is v's position in items, or -1 if absent
}

func newOrderHeap(activity *[]float64) *orderHeap {
	return &orderHeap{activity: activity}
}

func (h *orderHeap) Len() int { return len(h.items) }

func (h *orderHeap) Less(i, j int) bool {
	return (*h.activity)[h.items[i]] > (*h.activity)[h.items[j]]
}

func (h *orderHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.indices[h.items[i]] = int32(i)
	h.indices[h.items[j]] = int32(j)
}

func (h *orderHeap) Push(x interface{}) {
	v := x.(Var)
	h.indices[v] = int32(len(h.items))
	h.items = append(h.items, v)
}

func (h *orderHeap) Pop() interface{} {
	n := len(h.items)
	v := h.items[n-1]
	h.items = h.items[:n-1]
	h.indices[v] = -1
	return v
}

func (h *orderHeap) grow(nVars int) {
	for len(h.indices) < nVars {
		h.indices = append(h.indices, -1)
	}
}

// Empty reports whether the heap holds no variables.
func (h *orderHeap) Empty() bool { return len(h.items) == 0 }

// Contains reports whether v is currently in the heap.
func (h *orderHeap) Contains(v Var) bool {
	return int(v) < len(h.indices) && h.indices[v] >= 0
}

// Insert adds v, which must not already be present.
func (h *orderHeap) Insert(v Var) {
	h.grow(int(v) + 1)
	heap.Push(h, v)
}

// Decrease re-establishes heap order after v's key has increased (named
// Decrease after MiniSat's decrease-key convention, where the comparison
// is inverted so a larger activity sorts first).
func (h *orderHeap) Decrease(v Var) {
	heap.Fix(h, int(h.indices[v]))
}

// RemoveMin pops and returns the variable with the greatest activity.
func (h *orderHeap) RemoveMin() Var {
	return heap.Pop(h).(Var)
}

// Build discards the current contents and rebuilds the heap from vs in a
// single heap.Init pass, ordered by current activity.
func (h *orderHeap) Build(vs []Var) {
	for _, v := range h.items {
		h.indices[v] = -1
	}
	h.items = append(h.items[:0], vs...)
	for i, v := range h.items {
		h.indices[v] = int32(i)
	}
	heap.Init(h)
}
