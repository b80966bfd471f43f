package register

import "fmt"

// Section describes one register address space. Sections are plain values
// and compare with ==.
type Section struct {
	Name       string
	Begin      uint32 // first address
	End        uint32 // one past the last address
	Depth      int    // bytes behind every address
	MaxLength  int    // max number of addresses covered by one register
	Prefix     string // symbol prefix used in the header
	LineStride int    // bytes per dump line
}

// Size returns the number of bytes in the section.
func (s Section) Size() int {
	return int(s.End-s.Begin) * s.Depth
}

// Contains reports whether addr lies within the section.
func (s Section) Contains(addr uint32) bool {
	return s.Begin <= addr && addr < s.End
}

// alignEnd returns the end of the alignment block containing addr, clipped to
// the section.
func (s Section) alignEnd(addr uint32) uint32 {
	end := addr + uint32(s.MaxLength) - addr%uint32(s.MaxLength)
	if end > s.End {
		end = s.End
	}
	return end
}

func (s Section) String() string {
	return fmt.Sprintf("%s[0x%04x-0x%04x)", s.Name, s.Begin, s.End)
}

var regularSections = []Section{
	{Name: "MAC", Begin: 0x0000, End: 0x0800, Depth: 1, MaxLength: 4, Prefix: "REG_", LineStride: 16},
	{Name: "BB", Begin: 0x0800, End: 0x1000, Depth: 1, MaxLength: 4, Prefix: "REG_", LineStride: 16},
	{Name: "FW", Begin: 0x1000, End: 0x5000, Depth: 1, MaxLength: 4, Prefix: "REG_", LineStride: 16},
	{Name: "USB", Begin: 0xfe17, End: 0xfe60, Depth: 1, MaxLength: 4, Prefix: "REG_", LineStride: 16},
	{Name: "NORMAL", Begin: 0xfe60, End: 0xfee0, Depth: 1, MaxLength: 4, Prefix: "REG_", LineStride: 16},
}

var rfSections = []Section{
	{Name: "RF", Begin: 0x00, End: 0x40, Depth: 4, MaxLength: 1, Prefix: "RF6052_REG_", LineStride: 4},
}

// Regular returns the sections sharing the regular (MAC/BB/...) address space.
func Regular() []Section {
	return append([]Section(nil), regularSections...)
}

// RF returns the separately addressed RF sections.
func RF() []Section {
	return append([]Section(nil), rfSections...)
}

// All returns every known section, regular ones first.
func All() []Section {
	return append(Regular(), rfSections...)
}

// Lookup finds a section by name.
func Lookup(name string) (Section, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}
