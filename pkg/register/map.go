package register

import (
	"fmt"
	"io"
	"sort"
)

// Map assigns every address of a section to at most one Register. A register
// covering several addresses sits in several slots.
type Map struct {
	section Section
	slots   []*Register // indexed by address - section.Begin
}

// NewMap creates an empty map covering the whole section.
func NewMap(section Section) *Map {
	return &Map{
		section: section,
		slots:   make([]*Register, section.End-section.Begin),
	}
}

// Section returns the section covered by the map.
func (m *Map) Section() Section {
	return m.section
}

func (m *Map) slot(addr uint32) **Register {
	return &m.slots[addr-m.section.Begin]
}

// Add places a register for e at its base address. The register claims the
// following addresses up to the section's alignment boundary, stopping at the
// first address already owned by a register with a greater base address.
func (m *Map) Add(e Entry) (*Register, error) {
	if !m.section.Contains(e.Address) {
		return nil, fmt.Errorf("%w: %s at 0x%04x not in %s", ErrAddressRange, e.HeaderName, e.Address, m.section)
	}
	reg := &Register{Name: e.Name(), Base: e.Address, parent: m}
	if old := *m.slot(reg.Base); old != nil {
		switch {
		case old.Name == reg.Name && old.Base == reg.Base:
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRegister, reg.Name)
		case old.Base == reg.Base:
			return nil, fmt.Errorf("%w: %q vs %q at 0x%04x", ErrRegisterConflict, reg.Name, old.Name, reg.Base)
		case reg.Base < old.Base:
			return nil, fmt.Errorf("%w: by register %q at 0x%04x", ErrInvariant, old.Name, reg.Base)
		}
	}
	end := m.section.alignEnd(reg.Base)
	for addr := reg.Base; addr < end; addr++ {
		s := m.slot(addr)
		if *s != nil && reg.Base < (*s).Base {
			break
		}
		*s = reg
	}
	return reg, nil
}

// At returns the register owning addr, or nil.
func (m *Map) At(addr uint32) *Register {
	if !m.section.Contains(addr) {
		return nil
	}
	return *m.slot(addr)
}

// Next returns the first register with a base address greater than r's.
func (m *Map) Next(r *Register) *Register {
	if !m.section.Contains(r.Base) {
		return nil
	}
	for _, candidate := range m.slots[r.Base-m.section.Begin:] {
		if candidate != nil && candidate.Base > r.Base {
			return candidate
		}
	}
	return nil
}

// Previous returns the closest register owning an address below addr.
func (m *Map) Previous(addr uint32) *Register {
	for a := addr; a > m.section.Begin; a-- {
		if !m.section.Contains(a - 1) {
			continue
		}
		if r := *m.slot(a - 1); r != nil {
			return r
		}
	}
	return nil
}

// ResolveOrCreate returns the register owning addr. Unclaimed addresses get
// an "unknown" register covering the surrounding alignment block; it stays in
// the map, so resolving the same address again yields the same register.
func (m *Map) ResolveOrCreate(addr uint32) (*Register, error) {
	if !m.section.Contains(addr) {
		return nil, fmt.Errorf("%w: 0x%04x not in %s", ErrAddressRange, addr, m.section)
	}
	if r := *m.slot(addr); r != nil {
		return r, nil
	}
	base := addr - addr%uint32(m.section.MaxLength)
	if prev := m.Previous(addr); prev != nil && prev.Base > base {
		base = prev.Base
	}
	if base < m.section.Begin {
		base = m.section.Begin
	}
	return m.Add(Entry{HeaderName: UnknownName, Address: base})
}

// Registers returns all registers ordered by base address.
func (m *Map) Registers() []*Register {
	seen := make(map[*Register]bool)
	var out []*Register
	for _, r := range m.slots {
		if r != nil && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out
}

// Print writes a listing of all registers and their fields.
func (m *Map) Print(w io.Writer) error {
	for _, r := range m.Registers() {
		if _, err := fmt.Fprintf(w, "%s: %d byte(s) at %d addresses starting at 0x%04x\n",
			r.Name, r.Depth(), r.Length(), r.Base); err != nil {
			return err
		}
		for _, f := range append(r.KnownFields(), r.UnknownField()) {
			if _, err := fmt.Fprintf(w, " - %s: 0x%04x\n", f.Name, f.Mask); err != nil {
				return err
			}
		}
	}
	return nil
}
