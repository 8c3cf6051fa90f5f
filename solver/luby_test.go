package solver

import "testing"

func TestLuby(t *testing.T) {
	// luby raises y to each term's exponent, so with y = 2 it yields the
	// Luby sequence (1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,...) itself.
	want := []float64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	for x, w := range want {
		if got := luby(2, x); got != w {
			t.Errorf("luby(2, %d) = %v, want %v", x, got, w)
		}
	}
}

func TestLubyScale(t *testing.T) {
	// y is the base of the power, not a multiplier: luby(2, 0) = 2^0 and
	// luby(2, 6) = 2^2.
	if got := luby(2, 0); got != 1 {
		t.Errorf("luby(2, 0) = %v, want 1", got)
	}
	if got := luby(2, 6); got != 4 {
		t.Errorf("luby(2, 6) = %v, want 4", got)
	}
}
