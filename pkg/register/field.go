package register

import (
	"fmt"
	"math/bits"
	"strings"
)

// Field is a named bitmask within a register. The mask may contain holes, so
// Size is not necessarily the population count.
type Field struct {
	Name string
	Mask uint64
}

// FieldFromRange creates a field covering bits [begin, end).
func FieldFromRange(name string, begin, end int) (Field, error) {
	if end <= begin || begin < 0 || end > 64 {
		return Field{}, fmt.Errorf("%w: [%d, %d) for %q", ErrIllegalBitRange, begin, end, name)
	}
	return Field{Name: name, Mask: rangeMask(begin, end)}, nil
}

// Begin returns the index of the lowest set bit, 0 for an empty mask.
func (f Field) Begin() int {
	if f.Mask == 0 {
		return 0
	}
	return bits.TrailingZeros64(f.Mask)
}

// End returns one past the index of the highest set bit, 0 for an empty mask.
func (f Field) End() int {
	return 64 - bits.LeadingZeros64(f.Mask)
}

// Size returns the number of bits between Begin and End, holes included.
func (f Field) Size() int {
	return f.End() - f.Begin()
}

// Value extracts the field's bits from a register value.
func (f Field) Value(registerValue uint64) uint64 {
	return (registerValue & f.Mask) >> uint(f.Begin())
}

// Equal compares fields by mask only; two differently named fields sharing a
// mask are the same field.
func (f Field) Equal(other Field) bool {
	return f.Mask == other.Mask
}

// BelongsTo reports whether the field's name carries the register's name as
// a prefix.
func (f Field) BelongsTo(e Entry) bool {
	return strings.HasPrefix(f.Name, e.Name())
}

// span returns the contiguous mask from Begin to End.
func (f Field) span() uint64 {
	if f.Mask == 0 {
		return 0
	}
	return rangeMask(f.Begin(), f.End())
}

func (f Field) String() string {
	return fmt.Sprintf("%s[%d:%d]=0x%x", f.Name, f.Begin(), f.End(), f.Mask)
}

func rangeMask(begin, end int) uint64 {
	return widthMask(end) &^ widthMask(begin)
}

// widthMask returns a mask with the low n bits set.
func widthMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(n)) - 1
}
