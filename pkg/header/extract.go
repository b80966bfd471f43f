package header

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/regdiff/internal/logger"
	"github.com/OpenTraceLab/regdiff/pkg/fixups"
	"github.com/OpenTraceLab/regdiff/pkg/register"
)

var registerSymbol = regexp.MustCompile(`^(RF6052_)?REG_[A-Z_0-9]+$`)

const maskSuffix = "_MASK"

// Result holds everything extracted from a header, in file order.
type Result struct {
	Registers []register.Entry
	Fields    []register.Field
}

type extractOptions struct {
	fixups *fixups.Set
}

// ExtractOption configures extraction.
type ExtractOption func(*extractOptions)

// WithFixups drops definitions deny-listed in set. Without it nothing is
// dropped.
func WithFixups(set *fixups.Set) ExtractOption {
	return func(o *extractOptions) {
		o.fixups = set
	}
}

// Extract walks header lines and collects register addresses and field
// masks. Lines that are not understood are logged and skipped; malformed
// composite masks are errors.
func (p *Parser) Extract(lines []string, opts ...ExtractOption) (*Result, error) {
	var o extractOptions
	for _, opt := range opts {
		opt(&o)
	}

	res := &Result{}
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := p.extractLine(res, line, o.fixups); err != nil {
			return nil, fmt.Errorf("header: line %d: %w", n+1, err)
		}
	}
	return res, nil
}

func (p *Parser) extractLine(res *Result, line string, fx *fixups.Set) error {
	def, err := p.ParseLine(line)
	if err != nil {
		logger.L.Debug("unhandled header line", "line", line)
		return nil
	}
	name, value := def.Name, def.Value

	switch {
	case value.Hex != nil && registerSymbol.MatchString(name):
		if fx.IgnoreRegister(name) {
			return nil
		}
		addr, err := parseHex(*value.Hex, 32)
		if err != nil {
			logger.L.Warn("skipping header line", "line", line, "err", err)
			return nil
		}
		res.Registers = append(res.Registers, register.Entry{HeaderName: name, Address: uint32(addr)})

	case value.Bit != nil:
		if fx.IgnoreMask(name) {
			return nil
		}
		f, err := register.FieldFromRange(name, value.Bit.Index, value.Bit.Index+1)
		if err != nil {
			logger.L.Warn("skipping header line", "line", line, "err", err)
			return nil
		}
		res.Fields = append(res.Fields, f)

	case value.Hex != nil && strings.HasSuffix(name, maskSuffix):
		name = strings.TrimSuffix(name, maskSuffix)
		if fx.IgnoreMask(name) {
			return nil
		}
		mask, err := parseHex(*value.Hex, 64)
		if err != nil {
			logger.L.Warn("skipping header line", "line", line, "err", err)
			return nil
		}
		res.Fields = append(res.Fields, register.Field{Name: name, Mask: mask})

	case value.Composite != nil:
		if fx.IgnoreMask(name) {
			return nil
		}
		f, err := compositeField(name, value.Composite.Indices())
		if errors.Is(err, register.ErrIllegalBitRange) {
			logger.L.Warn("skipping header line", "line", line, "err", err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s", err, line)
		}
		res.Fields = append(res.Fields, f)

	default:
		logger.L.Debug("unhandled header line", "line", line)
	}
	return nil
}

// compositeField turns an OR of bits into a field. The bits must form one
// contiguous run without repetitions.
func compositeField(name string, indices []int) (register.Field, error) {
	bits := slices.Clone(indices)
	slices.Sort(bits)
	if len(slices.Compact(slices.Clone(bits))) != len(bits) {
		return register.Field{}, ErrDuplicateBits
	}
	first, last := bits[0], bits[len(bits)-1]
	if last-first != len(bits)-1 {
		return register.Field{}, ErrNonContinuousMask
	}
	return register.FieldFromRange(name, first, last+1)
}

func parseHex(s string, bitSize int) (uint64, error) {
	v, err := strconv.ParseUint(s[2:], 16, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid hex literal %s: %w", s, err)
	}
	return v, nil
}
