package solver

import "math"

// luby returns y raised to the exponent of the x-th (0-based) term of the
// Luby restart sequence, so luby(2, x) is the sequence itself
// (1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,...); Solve multiplies it by 32 to size
// the next restart's conflict budget. This is a direct port of the
// inline luby(double y, int x) in core/Solver.h; it generalizes gophersat's
// power-of-2-only luby, which only ever asked for 2^k-1 terms.
func luby(y float64, x int) float64 {
	size, seq := 1, 0
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	return math.Pow(y, float64(seq))
}
