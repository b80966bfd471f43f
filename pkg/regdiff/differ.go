package regdiff

import (
	"fmt"
	"slices"
	"sort"

	"github.com/OpenTraceLab/regdiff/internal/logger"
	"github.com/OpenTraceLab/regdiff/pkg/dump"
	"github.com/OpenTraceLab/regdiff/pkg/fixups"
	"github.com/OpenTraceLab/regdiff/pkg/register"
)

// Differ explains the differences between the dumps of a collection using a
// register map of the same section.
type Differ struct {
	dumps  *dump.Collection
	regs   *register.Map
	fixups *fixups.Set
}

// Option configures a Differ.
type Option func(*Differ)

// WithFixups attaches register hints to the report.
func WithFixups(set *fixups.Set) Option {
	return func(d *Differ) {
		d.fixups = set
	}
}

// New creates a Differ. Dumps and map must describe the same section.
func New(dumps *dump.Collection, regs *register.Map, opts ...Option) (*Differ, error) {
	if dumps.Len() == 0 {
		return nil, fmt.Errorf("regdiff: %w", dump.ErrEmptyCollection)
	}
	if dumps.Section() != regs.Section() {
		return nil, fmt.Errorf("%w: dumps are %s, map is %s", ErrSectionMismatch, dumps.Section(), regs.Section())
	}
	d := &Differ{dumps: dumps, regs: regs}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Section returns the section being compared.
func (d *Differ) Section() register.Section {
	return d.regs.Section()
}

// MismatchingRegisters returns the registers owning at least one differing
// address, ordered by base address. Addresses the map does not cover are
// attributed to synthesised unknown registers, which stay in the map.
func (d *Differ) MismatchingRegisters() ([]*register.Register, error) {
	addrs, err := d.dumps.MismatchingAddresses()
	if err != nil {
		return nil, err
	}
	seen := make(map[*register.Register]bool)
	var out []*register.Register
	for _, addr := range addrs {
		r, err := d.regs.ResolveOrCreate(addr)
		if err != nil {
			return nil, fmt.Errorf("regdiff: %w", err)
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out, nil
}

// RegisterValues reads r from every dump, in collection order.
func (d *Differ) RegisterValues(r *register.Register) ([]uint64, error) {
	values := make([]uint64, 0, d.dumps.Len())
	for _, dmp := range d.dumps.Dumps() {
		v, err := dmp.RegisterValue(r)
		if err != nil {
			return nil, fmt.Errorf("regdiff: register %s: %w", r.Name, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// FieldBreakdown lists the known fields of r whose values differ between the
// dumps. If any known field differs, the unknown remainder of the register is
// appended as well, whether or not its value differs.
func (d *Differ) FieldBreakdown(r *register.Register) ([]FieldReport, error) {
	values, err := d.RegisterValues(r)
	if err != nil {
		return nil, err
	}
	return fieldBreakdown(r, values), nil
}

func fieldBreakdown(r *register.Register, values []uint64) []FieldReport {
	out := []FieldReport{}
	for _, f := range r.KnownFields() {
		fieldValues := extract(f, values)
		if !differs(fieldValues) {
			continue
		}
		out = append(out, FieldReport{
			Name:    f.Name,
			Bitmask: f.Mask,
			Nibbles: (f.Size() + 3) / 4,
			Values:  fieldValues,
		})
	}
	if len(out) == 0 {
		return out
	}

	unknown := r.UnknownField()
	return append(out, FieldReport{
		Name:    unknown.Name,
		Bitmask: unknown.Mask,
		Nibbles: r.Size() * 2,
		Values:  extract(unknown, values),
	})
}

// Mismatching builds the full report for every mismatching register.
func (d *Differ) Mismatching() (Report, error) {
	regs, err := d.MismatchingRegisters()
	if err != nil {
		return nil, err
	}
	report := make(Report, len(regs))
	for _, r := range regs {
		values, err := d.RegisterValues(r)
		if err != nil {
			return nil, err
		}
		report[r.Base] = RegisterReport{
			Address: r.Base,
			Name:    r.Name,
			Bitmask: r.Bitmask(),
			Nibbles: r.Size() * 2,
			Values:  values,
			Hint:    d.fixups.Hint(r.Name),
			Fields:  fieldBreakdown(r, values),
		}
	}
	logger.L.Info("compared dumps", "section", d.Section().Name,
		"dumps", d.dumps.Len(), "mismatching_registers", len(report))
	return report, nil
}

// ValueMismatches returns the differing bits per address, the raw form of
// the report.
func (d *Differ) ValueMismatches() (map[uint32][]byte, error) {
	return d.dumps.ValueMismatchesByAddress()
}

func extract(f register.Field, values []uint64) []uint64 {
	out := make([]uint64, len(values))
	for i, v := range values {
		out[i] = f.Value(v)
	}
	return out
}

func differs(values []uint64) bool {
	return slices.ContainsFunc(values, func(v uint64) bool { return v != values[0] })
}
