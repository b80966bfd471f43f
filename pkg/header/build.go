package header

import (
	"fmt"
	"slices"
	"sort"

	"github.com/OpenTraceLab/regdiff/internal/logger"
	"github.com/OpenTraceLab/regdiff/pkg/fixups"
	"github.com/OpenTraceLab/regdiff/pkg/register"
)

// BuildMap places the extracted registers of one section into a map and
// assigns each field to the register whose name prefixes it.
//
// Registers are processed in descending name order. A register whose name
// extends another one (REG_GPIO_PIN_CTRL_2 vs REG_GPIO_PIN_CTRL) is therefore
// placed first and collects its fields before the shorter name can claim
// them.
func BuildMap(res *Result, section register.Section, fx *fixups.Set) (*register.Map, error) {
	var entries []register.Entry
	for _, e := range res.Registers {
		if !fx.IgnoreRegister(e.HeaderName) && e.IsOfType(section) {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Address < entries[j].Address })
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].HeaderName > entries[j].HeaderName })

	remaining := uniqueFields(res.Fields)
	m := register.NewMap(section)
	for _, e := range entries {
		reg, err := m.Add(e)
		if err != nil {
			return nil, fmt.Errorf("header: %s: %w", section.Name, err)
		}
		var addErr error
		remaining = slices.DeleteFunc(remaining, func(f register.Field) bool {
			if addErr != nil || !f.BelongsTo(e) {
				return false
			}
			addErr = reg.AddField(f)
			return true
		})
		if addErr != nil {
			return nil, fmt.Errorf("header: %s: %w", section.Name, addErr)
		}
	}

	logger.L.Info("built register map", "section", section.Name,
		"registers", len(entries), "unassigned_fields", len(remaining))
	return m, nil
}

// BuildMaps builds one map per known section, keyed by section name.
func BuildMaps(res *Result, fx *fixups.Set) (map[string]*register.Map, error) {
	maps := make(map[string]*register.Map)
	for _, s := range register.All() {
		m, err := BuildMap(res, s, fx)
		if err != nil {
			return nil, err
		}
		maps[s.Name] = m
	}
	return maps, nil
}

// uniqueFields drops repeated definitions of the same name and mask, keeping
// file order.
func uniqueFields(fields []register.Field) []register.Field {
	seen := make(map[register.Field]bool, len(fields))
	out := make([]register.Field, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// Summary describes a map in one line, for logs and CLI output.
func Summary(m *register.Map) string {
	var named int
	for _, r := range m.Registers() {
		if r.Name != register.UnknownName {
			named++
		}
	}
	return fmt.Sprintf("%s: %d registers", m.Section().Name, named)
}
