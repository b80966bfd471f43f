package regdiff

import (
	"fmt"
	"slices"

	"github.com/OpenTraceLab/regdiff/pkg/fixups"
	"github.com/OpenTraceLab/regdiff/pkg/register"
)

// Format selects how reports are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Config controls which sections are compared and how the result is written.
type Config struct {
	Format Format // Output format (default: table)

	// Section filtering
	Sections []string // If set, only diff these sections (by name)

	// Fixups
	FixupsFile      string // Optional overlay merged over the built-in tables
	NoDefaultFixups bool   // Start from an empty set instead of the built-in tables
}

// DefaultConfig returns a Config rendering tables for every section with the
// built-in fixups.
func DefaultConfig() *Config {
	return &Config{
		Format:          FormatTable,
		Sections:        nil,
		FixupsFile:      "",
		NoDefaultFixups: false,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Format == "" {
		c.Format = FormatTable
	}
	switch c.Format {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}

	for _, name := range c.Sections {
		if _, ok := register.Lookup(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSection, name)
		}
	}
	return nil
}

// ShouldDiffSection returns true if the section passes the Sections filter.
func (c *Config) ShouldDiffSection(name string) bool {
	if len(c.Sections) == 0 {
		return true // No filter, diff all sections
	}
	return slices.Contains(c.Sections, name)
}

// Fixups assembles the fixup set: the built-in tables unless disabled, with
// the overlay file merged on top.
func (c *Config) Fixups() (*fixups.Set, error) {
	set := fixups.Default()
	if c.NoDefaultFixups {
		set = fixups.New()
	}
	if c.FixupsFile != "" {
		overlay, err := fixups.LoadFile(c.FixupsFile)
		if err != nil {
			return nil, fmt.Errorf("regdiff: %w", err)
		}
		set.Merge(overlay)
	}
	return set, nil
}
