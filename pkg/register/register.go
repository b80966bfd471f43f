package register

import (
	"fmt"
	"sort"
)

// Register is a named, address-bounded unit within a Map. Its length is not
// stored: it follows from the registers placed after it.
type Register struct {
	Name string
	Base uint32

	parent *Map
	fields []Field // assigned fields, disjoint bit ranges
}

func (r *Register) String() string {
	return fmt.Sprintf("%s@%x", r.Name, r.Base)
}

// Map returns the map the register was added to.
func (r *Register) Map() *Map {
	return r.parent
}

// Length returns the number of addresses covered by the register.
func (r *Register) Length() int {
	maxLen := r.parent.section.MaxLength
	next := r.parent.Next(r)
	if next == nil {
		// Best guess: the rest of the alignment block.
		return maxLen - int(r.Base%uint32(maxLen))
	}
	return min(maxLen, int(next.Base-r.Base))
}

// End returns one past the register's last address.
func (r *Register) End() uint32 {
	return r.Base + uint32(r.Length())
}

// Depth returns the number of bytes behind every address.
func (r *Register) Depth() int {
	return r.parent.section.Depth
}

// Size returns the number of bytes belonging to the register.
func (r *Register) Size() int {
	return r.Length() * r.Depth()
}

// Bitmask covers the register's full width.
func (r *Register) Bitmask() uint64 {
	return widthMask(r.Size() * 8)
}

// AddField assigns a field to the register. The field must fit the
// register's width and its bit range must not touch bits claimed by a field
// assigned earlier.
func (r *Register) AddField(f Field) error {
	width := r.Size() * 8
	if f.End() > width {
		return fmt.Errorf("%w: bit #%d of field %q exceeds %d bytes size of register %q",
			ErrFieldRange, f.End()-1, f.Name, r.Size(), r.Name)
	}
	for _, claimed := range r.fields {
		if overlap := claimed.span() & f.span(); overlap != 0 {
			return fmt.Errorf("%w: bit #%d of register %q is already claimed by field %q",
				ErrFieldOverlap, Field{Mask: overlap}.Begin(), r.Name, claimed.Name)
		}
	}
	r.fields = append(r.fields, f)
	return nil
}

// bitTable maps every bit of the register to the field claiming it, nil for
// unclaimed bits. A register without fields yields an all-unclaimed table.
func (r *Register) bitTable() []*Field {
	table := make([]*Field, r.Size()*8)
	for i := range r.fields {
		f := &r.fields[i]
		for bit := f.Begin(); bit < f.End() && bit < len(table); bit++ {
			table[bit] = f
		}
	}
	return table
}

// KnownBitmask returns the bits claimed by assigned fields, holes included.
func (r *Register) KnownBitmask() uint64 {
	var mask uint64
	for _, f := range r.fields {
		mask |= f.span()
	}
	return mask & r.Bitmask()
}

// UnknownField returns the field made of all bits no assigned field claims.
func (r *Register) UnknownField() Field {
	return Field{Name: UnknownName, Mask: r.Bitmask() &^ r.KnownBitmask()}
}

// KnownFields returns the assigned fields ordered by their first bit, one per
// distinct mask.
func (r *Register) KnownFields() []Field {
	seen := make(map[uint64]bool, len(r.fields))
	out := make([]Field, 0, len(r.fields))
	for _, f := range r.fields {
		if seen[f.Mask] {
			continue
		}
		seen[f.Mask] = true
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Begin() < out[j].Begin() })
	return out
}

// AffectedFields decomposes mask into the fields owning its bits, lowest bit
// first. Unclaimed bits resolve to the unknown field.
func (r *Register) AffectedFields(mask uint64) ([]Field, error) {
	if mask&^r.Bitmask() != 0 {
		return nil, fmt.Errorf("%w: mask 0x%x for register %q", ErrFieldRange, mask, r.Name)
	}
	table := r.bitTable()
	unknown := r.UnknownField()
	var out []Field
	for bit := 0; mask != 0; bit++ {
		if mask&(uint64(1)<<uint(bit)) == 0 {
			continue
		}
		if f := table[bit]; f != nil {
			mask &^= f.span()
			out = append(out, *f)
			continue
		}
		mask &^= unknown.Mask
		out = append(out, unknown)
	}
	return out, nil
}
