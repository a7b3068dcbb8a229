package ranges

import "errors"

// Errors of the range algebra. Functions of this package wrap them with
// details; use errors.Is to check for a class of error.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrContraction       = errors.New("illegal contraction")
)
