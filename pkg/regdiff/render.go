package regdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderTable writes the report as a markdown document: a title, the list of
// inputs and one table row per mismatching register followed by its fields.
func (d *Differ) RenderTable(w io.Writer) error {
	report, err := d.Mismatching()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Register value delta analysis for %s registers\n", d.Section().Name)
	fmt.Fprintf(&buf, "## Inputs \n")
	for i, name := range d.dumps.ShortNames() {
		fmt.Fprintf(&buf, " - #%d: %s\n", i, name)
	}
	if len(report) == 0 {
		buf.WriteString("Dumps do not differ\n")
	} else {
		buf.WriteString(d.table(report).String())
		buf.WriteByte('\n')
	}

	_, err = buf.WriteTo(w)
	return err
}

func (d *Differ) table(report Report) *table.Table {
	headers := []string{"**Address**", "**Name**", "Mask"}
	for i, dmp := range d.dumps.Dumps() {
		headers = append(headers, fmt.Sprintf("**#%d: %s**", i, dmp.DriverName()))
	}
	headers = append(headers, "**Hint**")

	var rows [][]string
	for _, reg := range report.Sorted() {
		row := []string{fmt.Sprintf("0x%X", reg.Address), reg.Name, fmt.Sprintf("0x%X", reg.Bitmask)}
		row = append(row, hexValues(reg.Values, reg.Nibbles)...)
		rows = append(rows, append(row, reg.Hint))

		for _, f := range reg.Fields {
			row := []string{"", f.Name, fmt.Sprintf("0x%X", f.Bitmask)}
			row = append(row, hexValues(f.Values, f.Nibbles)...)
			rows = append(rows, append(row, f.Hint))
		}
	}

	return table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(headers...).
		Rows(rows...)
}

func hexValues(values []uint64, nibbles int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("0x%0*X", nibbles, v)
	}
	return out
}

type jsonInput struct {
	Name   string `json:"name"`
	Driver string `json:"driver"`
}

type jsonDocument struct {
	Section   string           `json:"section"`
	Inputs    []jsonInput      `json:"inputs"`
	Registers []RegisterReport `json:"registers"`
}

// RenderJSON writes the report as an indented JSON document.
func (d *Differ) RenderJSON(w io.Writer) error {
	report, err := d.Mismatching()
	if err != nil {
		return err
	}

	doc := jsonDocument{
		Section:   d.Section().Name,
		Registers: report.Sorted(),
	}
	names := d.dumps.ShortNames()
	for i, dmp := range d.dumps.Dumps() {
		doc.Inputs = append(doc.Inputs, jsonInput{Name: names[i], Driver: dmp.DriverName()})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Render writes the report in the given format.
func (d *Differ) Render(w io.Writer, format Format) error {
	switch format {
	case FormatTable, "":
		return d.RenderTable(w)
	case FormatJSON:
		return d.RenderJSON(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
