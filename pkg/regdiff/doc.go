// Package regdiff compares register dumps of one section and explains the
// differences in terms of the registers and fields of a register map.
//
// A Differ pairs a dump.Collection with the register.Map of the same
// section. Every address whose bytes differ between the dumps is resolved to
// the register owning it; registers missing from the map are synthesised as
// "unknown" registers. For each mismatching register the report lists the
// register value in every dump and breaks it down into the known fields whose
// values disagree, followed by the remaining unknown bits.
//
// Basic usage:
//
//	d, err := regdiff.New(collection, regs, regdiff.WithFixups(fixups.Default()))
//	if err != nil {
//	    return err
//	}
//	if err := d.RenderTable(os.Stdout); err != nil {
//	    return err
//	}
package regdiff
