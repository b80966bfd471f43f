package register

import "errors"

var (
	// ErrDuplicateRegister is returned when the same register is added twice.
	ErrDuplicateRegister = errors.New("register: already added")
	// ErrRegisterConflict is returned when two registers share a base address.
	ErrRegisterConflict = errors.New("register: conflicting registers")
	// ErrInvariant is returned when an already placed register would start
	// after a register inserted later at the same address.
	ErrInvariant = errors.New("register: invariant violated")
	// ErrAddressRange is returned for addresses outside the map's section.
	ErrAddressRange = errors.New("register: address out of range")
	// ErrFieldRange is returned when a field does not fit its register.
	ErrFieldRange = errors.New("register: field exceeds register width")
	// ErrFieldOverlap is returned when a field claims bits already claimed.
	ErrFieldOverlap = errors.New("register: bit already claimed")
	// ErrIllegalBitRange is returned by FieldFromRange for bad bounds.
	ErrIllegalBitRange = errors.New("register: illegal bit positions")
)
