package regdiff

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/regdiff/pkg/dump"
	"github.com/OpenTraceLab/regdiff/pkg/fixups"
	"github.com/OpenTraceLab/regdiff/pkg/header"
	"github.com/OpenTraceLab/regdiff/pkg/register"
)

const rfDump1 = `======== RF REG (rtl8xxxu) =======
RF REG (debugfs) 0x000: 0x00000000 0x00011111 0x00022222 0x000EEEEE`

const rfDump2 = `======== RF REG (rtl8192cu) =======
RF REG (debugfs) 0x000: 0x00012345 0x00011111 0x00022222 0x000FFFFF`

const rfDefinitions = `/* RF6052 registers */
#define RF6052_REG_AC			0x00
#define  AC_BIT_FIELD_0			BIT(0)
#define  AC_BIT_FIELD_4			BIT(4)
#define RF6052_REG_IQADJ_G1		0x01
#define RF6052_REG_IQADJ_G2		0x02
#define RF6052_REG_BS_PA_APSET_G1_G4	0x03
`

func buildMap(t *testing.T, definitions, section string) *register.Map {
	t.Helper()
	p, err := header.NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	res, err := p.ExtractString(definitions)
	if err != nil {
		t.Fatalf("ExtractString failed: %v", err)
	}
	s, ok := register.Lookup(section)
	if !ok {
		t.Fatalf("unknown section %s", section)
	}
	m, err := header.BuildMap(res, s, nil)
	if err != nil {
		t.Fatalf("BuildMap failed: %v", err)
	}
	return m
}

func collect(t *testing.T, raws ...dump.Raw) *dump.Collection {
	t.Helper()
	collections, err := dump.ParseAll(raws)
	if err != nil {
		t.Fatalf("ParseAll failed: %v", err)
	}
	if len(collections) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(collections))
	}
	return collections[0]
}

func rfDiffer(t *testing.T, opts ...Option) *Differ {
	t.Helper()
	c := collect(t,
		dump.Raw{Name: "experiments/2021-12-12/rf_reg_dump", Content: rfDump1},
		dump.Raw{Name: "experiments/2021-12-13/rf_reg_dump", Content: rfDump2},
	)
	d, err := New(c, buildMap(t, rfDefinitions, "RF"), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d
}

func TestMismatchingRegisters(t *testing.T) {
	d := rfDiffer(t)
	regs, err := d.MismatchingRegisters()
	if err != nil {
		t.Fatalf("MismatchingRegisters failed: %v", err)
	}

	var names []string
	for _, r := range regs {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"AC", "BS_PA_APSET_G1_G4"}, names); diff != "" {
		t.Errorf("mismatching registers (-want +got):\n%s", diff)
	}
}

func TestMismatching(t *testing.T) {
	d := rfDiffer(t)
	got, err := d.Mismatching()
	if err != nil {
		t.Fatalf("Mismatching failed: %v", err)
	}

	want := Report{
		0x0000: {
			Address: 0x0000,
			Name:    "AC",
			Bitmask: 0xFFFFFFFF,
			Nibbles: 8,
			Values:  []uint64{0x00000000, 0x00012345},
			Fields: []FieldReport{
				{
					Name:    "AC_BIT_FIELD_0",
					Bitmask: 0x1,
					Nibbles: 1,
					Values:  []uint64{0x0, 0x1},
				},
				{
					Name:    "unknown",
					Bitmask: 0xFFFFFFEE,
					Nibbles: 8,
					Values:  []uint64{0x00000000, 0x00012344 >> 1},
				},
			},
		},
		0x0003: {
			Address: 0x0003,
			Name:    "BS_PA_APSET_G1_G4",
			Bitmask: 0xFFFFFFFF,
			Nibbles: 8,
			Values:  []uint64{0x000EEEEE, 0x000FFFFF},
			Fields:  []FieldReport{},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownFieldAlwaysReported(t *testing.T) {
	const definitions = `#define RF6052_REG_AC	0x00
#define  AC_LOW_MASK	0xff`
	c := collect(t,
		dump.Raw{Name: "a", Content: "======== RF REG (rtl8xxxu) =======\n0x000: 0x00000001"},
		dump.Raw{Name: "b", Content: "======== RF REG (rtl8192cu) =======\n0x000: 0x00000002"},
	)
	d, err := New(c, buildMap(t, definitions, "RF"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := d.Mismatching()
	if err != nil {
		t.Fatalf("Mismatching failed: %v", err)
	}
	want := []FieldReport{
		{Name: "AC_LOW", Bitmask: 0xff, Nibbles: 2, Values: []uint64{0x1, 0x2}},
		{Name: "unknown", Bitmask: 0xffffff00, Nibbles: 8, Values: []uint64{0x0, 0x0}},
	}
	if diff := cmp.Diff(want, report[0x0].Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}

func TestValueMismatches(t *testing.T) {
	d := rfDiffer(t)
	got, err := d.ValueMismatches()
	if err != nil {
		t.Fatalf("ValueMismatches failed: %v", err)
	}
	want := map[uint32][]byte{
		0x0: {0x00, 0x01, 0x23, 0x45},
		0x3: {0x00, 0x01, 0x11, 0x11},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("value mismatches (-want +got):\n%s", diff)
	}
}

func TestUnknownRegisterSynthesis(t *testing.T) {
	const definitions = `#define REG_SYS_FUNC	0x0002
#define  SYS_FUNC_BB_EN	BIT(0)
#define REG_APS_FSMCO	0x0004`
	const dumpA = "======= MAC REG (rtl8xxxu) =======\n0x000: 0x00000000 0x00000000"
	const dumpB = "======= MAC REG (rtlwifi) =======\n0x000: 0x00000001 0x00000000"

	c := collect(t, dump.Raw{Name: "a", Content: dumpA}, dump.Raw{Name: "b", Content: dumpB})
	d, err := New(c, buildMap(t, definitions, "MAC"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := d.Mismatching()
	if err != nil {
		t.Fatalf("Mismatching failed: %v", err)
	}
	reg, ok := report[0x0]
	if !ok {
		t.Fatalf("expected a register at 0x0, got %v", report.Addresses())
	}
	if reg.Name != "unknown" {
		t.Errorf("expected unknown register, got %s", reg.Name)
	}
	if reg.Nibbles != 4 {
		t.Errorf("expected 4 nibbles, got %d", reg.Nibbles)
	}
	if diff := cmp.Diff([]uint64{0x0, 0x1}, reg.Values); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if len(reg.Fields) != 0 {
		t.Errorf("expected no fields, got %v", reg.Fields)
	}

	// The synthesised register stays in the map.
	if again := d.regs.At(0x1); again == nil || again.Name != "unknown" {
		t.Errorf("expected unknown register at 0x1, got %v", again)
	}
}

func TestHints(t *testing.T) {
	set := fixups.New()
	set.Hints["AC"] = "Calibration"
	d := rfDiffer(t, WithFixups(set))

	report, err := d.Mismatching()
	if err != nil {
		t.Fatalf("Mismatching failed: %v", err)
	}
	if got := report[0x0].Hint; got != "Calibration" {
		t.Errorf("expected hint %q, got %q", "Calibration", got)
	}
	if got := report[0x3].Hint; got != "" {
		t.Errorf("expected no hint, got %q", got)
	}
}

func TestNewErrors(t *testing.T) {
	c := collect(t, dump.Raw{Name: "a", Content: rfDump1})
	mac, _ := register.Lookup("MAC")
	if _, err := New(c, register.NewMap(mac)); !errors.Is(err, ErrSectionMismatch) {
		t.Errorf("expected ErrSectionMismatch, got %v", err)
	}

	rf, _ := register.Lookup("RF")
	if _, err := New(&dump.Collection{}, register.NewMap(rf)); !errors.Is(err, dump.ErrEmptyCollection) {
		t.Errorf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := rfDiffer(t).RenderTable(&buf); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Register value delta analysis for RF registers\n",
		" - #0: 2021-12-12/rf_reg_dump\n",
		" - #1: 2021-12-13/rf_reg_dump\n",
		"**#0: rtl8xxxu**",
		"**#1: rtl8192cu**",
		"0xFFFFFFEE",
		"0x00012345",
		"0x000EEEEE",
		"AC_BIT_FIELD_0",
		"BS_PA_APSET_G1_G4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "AC_BIT_FIELD_4") {
		t.Errorf("unchanged field AC_BIT_FIELD_4 should not be listed:\n%s", out)
	}
	if strings.Index(out, "| 0x0 ") > strings.Index(out, "| 0x3 ") {
		t.Errorf("expected rows in address order:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderTableWriteError(t *testing.T) {
	if err := rfDiffer(t).RenderTable(failingWriter{}); err == nil {
		t.Error("expected write error")
	}

	c := collect(t,
		dump.Raw{Name: "same/a", Content: rfDump1},
		dump.Raw{Name: "same/b", Content: rfDump1},
	)
	d, err := New(c, buildMap(t, rfDefinitions, "RF"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := d.RenderTable(failingWriter{}); err == nil {
		t.Error("expected write error without differences")
	}
}

func TestRenderTableNoDifference(t *testing.T) {
	c := collect(t,
		dump.Raw{Name: "same/a", Content: rfDump1},
		dump.Raw{Name: "same/b", Content: rfDump1},
	)
	d, err := New(c, buildMap(t, rfDefinitions, "RF"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var buf bytes.Buffer
	if err := d.RenderTable(&buf); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}
	want := "# Register value delta analysis for RF registers\n## Inputs \n - #0: a\n - #1: b\nDumps do not differ\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := rfDiffer(t).Render(&buf, FormatJSON); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Section != "RF" {
		t.Errorf("expected section RF, got %s", doc.Section)
	}
	wantInputs := []jsonInput{
		{Name: "2021-12-12/rf_reg_dump", Driver: "rtl8xxxu"},
		{Name: "2021-12-13/rf_reg_dump", Driver: "rtl8192cu"},
	}
	if diff := cmp.Diff(wantInputs, doc.Inputs); diff != "" {
		t.Errorf("inputs (-want +got):\n%s", diff)
	}
	if len(doc.Registers) != 2 || doc.Registers[0].Name != "AC" || doc.Registers[1].Address != 0x3 {
		t.Errorf("unexpected registers: %+v", doc.Registers)
	}

	if err := rfDiffer(t).Render(&buf, Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.ShouldDiffSection("MAC") {
		t.Error("expected all sections without filter")
	}

	cfg.Sections = []string{"RF"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.ShouldDiffSection("MAC") || !cfg.ShouldDiffSection("RF") {
		t.Error("section filter not applied")
	}

	cfg.Sections = []string{"PHY"}
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Format = "yaml"
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestConfigFixups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixups.sexp")
	if err := os.WriteFile(path, []byte("(hint AC Calibration)\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.FixupsFile = path
	set, err := cfg.Fixups()
	if err != nil {
		t.Fatalf("Fixups failed: %v", err)
	}
	if got := set.Hint("AC"); got != "Calibration" {
		t.Errorf("expected overlay hint, got %q", got)
	}
	if got := set.Hint("TSFTR"); got == "" {
		t.Error("expected built-in hints to be kept")
	}

	cfg.NoDefaultFixups = true
	set, err = cfg.Fixups()
	if err != nil {
		t.Fatalf("Fixups failed: %v", err)
	}
	if got := set.Hint("TSFTR"); got != "" {
		t.Errorf("expected no built-in hints, got %q", got)
	}
}
