package register

import "strings"

// UnknownName is used for registers and fields without a header definition.
const UnknownName = "unknown"

// Entry is a register definition as found in the header: the symbol name and
// the base address, nothing else.
type Entry struct {
	HeaderName string
	Address    uint32
}

// IsOfType reports whether the entry belongs to section s, judged by symbol
// prefix and address.
func (e Entry) IsOfType(s Section) bool {
	return strings.HasPrefix(e.HeaderName, s.Prefix) && s.Contains(e.Address)
}

// Name returns the register name without the header prefix. Entries matching
// no section keep their header name.
func (e Entry) Name() string {
	if e.HeaderName == UnknownName {
		return e.HeaderName
	}
	for _, s := range All() {
		if e.IsOfType(s) {
			return strings.TrimPrefix(e.HeaderName, s.Prefix)
		}
	}
	return e.HeaderName
}
