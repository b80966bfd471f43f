package regdiff

import (
	"maps"
	"slices"
)

// Report holds the mismatching registers keyed by base address.
type Report map[uint32]RegisterReport

// Addresses returns the base addresses in ascending order.
func (r Report) Addresses() []uint32 {
	return slices.Sorted(maps.Keys(r))
}

// Sorted returns the register reports in address order.
func (r Report) Sorted() []RegisterReport {
	out := make([]RegisterReport, 0, len(r))
	for _, addr := range r.Addresses() {
		out = append(out, r[addr])
	}
	return out
}

// RegisterReport describes one mismatching register. Values holds the
// register value per dump; Nibbles is the hex width used to print them.
type RegisterReport struct {
	Address uint32        `json:"address"`
	Name    string        `json:"name"`
	Bitmask uint64        `json:"bitmask"`
	Nibbles int           `json:"nibbles"`
	Values  []uint64      `json:"values"`
	Hint    string        `json:"hint"`
	Fields  []FieldReport `json:"fields"`
}

// FieldReport describes one field of a mismatching register. Values are
// shifted down to the field's lowest bit.
type FieldReport struct {
	Name    string   `json:"name"`
	Bitmask uint64   `json:"bitmask"`
	Nibbles int      `json:"nibbles"`
	Values  []uint64 `json:"values"`
	Hint    string   `json:"hint"`
}
