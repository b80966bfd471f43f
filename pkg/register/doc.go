// Package register models hardware register address spaces reconstructed from
// symbolic C header definitions.
//
// # Overview
//
// A Section describes one address space (MAC, BB, RF, ...). A Map covers the
// whole address range of one Section with a slot per address; each slot points
// at the Register that owns the address, so a register spanning four addresses
// occupies four slots holding the same *Register.
//
// Register lengths are never stated in the headers. They are derived from the
// layout: a register ends where the next register with a greater base address
// begins, capped by the Section's maximum register length. Addresses that no
// definition claims stay empty until ResolveOrCreate synthesises an "unknown"
// register for them.
//
// Fields are named bitmasks. Within one register the bit ranges of its fields
// must be disjoint; the bits no field claims form the register's unknown field.
package register
