package solver

import "github.com/pkg/errors"

// ErrUnsat is never returned by this package; it exists purely so that a
// caller who prefers to model UNSAT as an error at their own layer has a
// sentinel to errors.Is against.
var ErrUnsat = errors.New("minicdcl: formula is unsatisfiable")

// OOMError wraps a clause arena allocation failure. Solve recovers a
// panic carrying one of these at its single top-level boundary and
// returns (Indet, error) instead of crashing the process, mirroring the
// original source's catch of std::bad_alloc in Main.cc.
type OOMError struct {
	cause error
}

func (e *OOMError) Error() string { return "minicdcl: out of memory: " + e.cause.Error() }
func (e *OOMError) Unwrap() error { return e.cause }

func newOOMError(cause error) *OOMError {
	return &OOMError{cause: errors.WithStack(cause)}
}
