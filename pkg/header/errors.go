package header

import "errors"

var (
	// ErrDuplicateBits is returned for composite masks naming a bit twice.
	ErrDuplicateBits = errors.New("header: duplicates in bit mask")
	// ErrNonContinuousMask is returned for composite masks with gaps.
	ErrNonContinuousMask = errors.New("header: non-continuous mask")
)
