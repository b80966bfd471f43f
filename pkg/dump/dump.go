// Package dump parses register dumps captured from drivers and groups them
// into collections that can be compared byte by byte.
package dump

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/regdiff/internal/logger"
	"github.com/OpenTraceLab/regdiff/pkg/register"
)

var (
	headerPattern = regexp.MustCompile(`^=+ (?P<section>[A-Z]+) REG(?: \((?P<driver>[A-Za-z0-9_.-]+)\))? =+$`)
	linePattern   = regexp.MustCompile(`^(?:[A-Za-z]+ REG \(.+\) )?(?P<address>0x[0-9a-fA-F]{1,8}): (?P<values>(?:0x[0-9a-fA-F]{8} ?)+)$`)
)

// Raw is the unparsed text of one capture.
type Raw struct {
	Name    string
	Content string
}

// Lines returns the trimmed lines of the capture.
func (r Raw) Lines() []string {
	lines := strings.Split(r.Content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

// Dump is one parsed capture of a section. Values maps every captured
// address to the bytes behind it: one byte for regular sections, four for RF.
type Dump struct {
	Driver  string
	Section register.Section
	Values  map[uint32][]byte
	Name    string
}

// DriverName returns the driver that produced the dump.
func (d *Dump) DriverName() string {
	if d.Driver != "" {
		return d.Driver
	}
	return "unknown driver"
}

// Size returns the number of bytes in the dump.
func (d *Dump) Size() int {
	size := 0
	for _, v := range d.Values {
		size += len(v)
	}
	return size
}

// Addresses returns the captured addresses in ascending order.
func (d *Dump) Addresses() []uint32 {
	addrs := make([]uint32, 0, len(d.Values))
	for addr := range d.Values {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)
	return addrs
}

// Parse reads a capture. The first line names the section and driver; every
// following line holds an address and 32-bit values. Lines that do not match
// are logged and skipped.
func Parse(raw Raw) (*Dump, error) {
	lines := raw.Lines()
	m := headerPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrInvalidHeader, lines[0], raw.Name)
	}
	sectionName := m[headerPattern.SubexpIndex("section")]
	section, ok := register.Lookup(sectionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrUnknownSection, sectionName, raw.Name)
	}

	d := &Dump{
		Driver:  m[headerPattern.SubexpIndex("driver")],
		Section: section,
		Values:  make(map[uint32][]byte),
		Name:    raw.Name,
	}
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		if !d.parseLine(line) {
			logger.L.Warn("invalid dump line", "dump", raw.Name, "line", line)
		}
	}
	return d, nil
}

func (d *Dump) parseLine(line string) bool {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	addr64, err := strconv.ParseUint(m[linePattern.SubexpIndex("address")][2:], 16, 32)
	if err != nil {
		return false
	}
	addr := uint32(addr64)

	for _, word := range strings.Fields(m[linePattern.SubexpIndex("values")]) {
		value, err := hex.DecodeString(word[2:])
		if err != nil {
			return false
		}
		if d.Section.Depth > 1 {
			d.Values[addr] = value
			addr++
			continue
		}
		// Regular sections are dumped as little-endian words.
		slices.Reverse(value)
		for i, b := range value {
			d.Values[addr+uint32(i)] = []byte{b}
		}
		addr += uint32(len(value))
	}
	return true
}

// RegisterValue reads the value of r from the dump. RF registers hold one
// big-endian entry; regular registers are assembled from single bytes, low
// address first.
func (d *Dump) RegisterValue(r *register.Register) (uint64, error) {
	if r.Depth() > 1 {
		v, ok := d.Values[r.Base]
		if !ok {
			return 0, fmt.Errorf("%w: 0x%04x in %s", ErrMissingAddress, r.Base, d.Name)
		}
		var buf [8]byte
		copy(buf[8-len(v):], v)
		return binary.BigEndian.Uint64(buf[:]), nil
	}

	var buf [8]byte
	for i, addr := 0, r.Base; addr < r.End(); i, addr = i+1, addr+1 {
		v, ok := d.Values[addr]
		if !ok || len(v) == 0 {
			return 0, fmt.Errorf("%w: 0x%04x in %s", ErrMissingAddress, addr, d.Name)
		}
		buf[i] = v[0]
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
