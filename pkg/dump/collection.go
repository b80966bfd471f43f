package dump

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/OpenTraceLab/regdiff/pkg/register"
)

// Collection is an ordered list of dumps of the same section and size.
type Collection struct {
	dumps []*Dump
}

// NewCollection creates a collection from the given dumps.
func NewCollection(dumps ...*Dump) (*Collection, error) {
	c := &Collection{}
	for _, d := range dumps {
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a dump. It must match the section and byte count of the dumps
// already in the collection.
func (c *Collection) Add(d *Dump) error {
	if len(c.dumps) > 0 {
		first := c.dumps[0]
		if d.Size() != first.Size() {
			return fmt.Errorf("%w: %d vs %d (%s)", ErrSizeMismatch, first.Size(), d.Size(), d.Name)
		}
		if d.Section != first.Section {
			return fmt.Errorf("%w: %s vs %s (%s)", ErrSectionMismatch, first.Section, d.Section, d.Name)
		}
	}
	c.dumps = append(c.dumps, d)
	return nil
}

// Section returns the section shared by all dumps, the zero Section if the
// collection is empty.
func (c *Collection) Section() register.Section {
	if len(c.dumps) == 0 {
		return register.Section{}
	}
	return c.dumps[0].Section
}

// Dumps returns the dumps in insertion order.
func (c *Collection) Dumps() []*Dump {
	return c.dumps
}

// Len returns the number of dumps.
func (c *Collection) Len() int {
	return len(c.dumps)
}

// ShortNames returns the dump names with their common directory prefix
// removed.
func (c *Collection) ShortNames() []string {
	if len(c.dumps) == 0 {
		return nil
	}
	prefix := c.dumps[0].Name
	for _, d := range c.dumps[1:] {
		prefix = commonPrefix(prefix, d.Name)
	}
	if i := strings.LastIndex(prefix, "/"); i != -1 {
		prefix = prefix[:i+1]
	}

	names := make([]string, len(c.dumps))
	for i, d := range c.dumps {
		names[i] = strings.TrimPrefix(d.Name, prefix)
		if names[i] == "" {
			names[i] = d.Name
		}
	}
	return names
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// MismatchingAddresses returns, in ascending order, the addresses whose value
// in any dump differs from the first dump.
func (c *Collection) MismatchingAddresses() ([]uint32, error) {
	if len(c.dumps) == 0 {
		return nil, ErrEmptyCollection
	}
	first := c.dumps[0]
	var out []uint32
	for _, addr := range first.Addresses() {
		a := first.Values[addr]
		for _, d := range c.dumps[1:] {
			if b, ok := d.Values[addr]; !ok || !bytes.Equal(a, b) {
				out = append(out, addr)
				break
			}
		}
	}
	return out, nil
}

// ValueMismatchesByAddress returns, per address, the bits that differ between
// the first dump and any other dump. Addresses without differences are left
// out.
func (c *Collection) ValueMismatchesByAddress() (map[uint32][]byte, error) {
	if len(c.dumps) == 0 {
		return nil, ErrEmptyCollection
	}
	first := c.dumps[0]
	out := make(map[uint32][]byte)
	for addr, a := range first.Values {
		delta := make([]byte, len(a))
		for _, d := range c.dumps[1:] {
			b := d.Values[addr]
			for i := range delta {
				if i < len(b) {
					delta[i] |= a[i] ^ b[i]
				} else {
					delta[i] |= a[i]
				}
			}
		}
		if slices.ContainsFunc(delta, func(x byte) bool { return x != 0 }) {
			out[addr] = delta
		}
	}
	return out, nil
}

// Group sorts dumps into one collection per section, in the order sections
// first appear.
func Group(dumps []*Dump) ([]*Collection, error) {
	var out []*Collection
	bySection := make(map[string]*Collection)
	for _, d := range dumps {
		c, ok := bySection[d.Section.Name]
		if !ok {
			c = &Collection{}
			bySection[d.Section.Name] = c
			out = append(out, c)
		}
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseAll parses every capture and groups the results by section.
func ParseAll(raws []Raw) ([]*Collection, error) {
	dumps := make([]*Dump, 0, len(raws))
	for _, raw := range raws {
		d, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		dumps = append(dumps, d)
	}
	return Group(dumps)
}

// LoadFiles reads and parses the given capture files.
func LoadFiles(paths ...string) ([]*Collection, error) {
	raws := make([]Raw, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dump: read %s: %w", path, err)
		}
		raws = append(raws, Raw{Name: path, Content: string(data)})
	}
	return ParseAll(raws)
}

// LoadDir recursively loads all capture files below root.
func LoadDir(root string) ([]*Collection, error) {
	paths, err := Find(root)
	if err != nil {
		return nil, err
	}
	return LoadFiles(paths...)
}

// Find returns the capture files (.txt, .dump, .reg) below root, in lexical
// path order. A root that is a file is returned as is.
func Find(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root && !d.IsDir() {
			paths = append(paths, path)
			return nil
		}
		if d.IsDir() || !isDumpFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dump: walk %s: %w", root, err)
	}
	return paths, nil
}

func isDumpFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".dump", ".reg":
		return true
	default:
		return false
	}
}
