package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testHeader = `/* RF6052 registers */
#define RF6052_REG_AC			0x00
#define  AC_BIT_FIELD_0			BIT(0)
#define  AC_BIT_FIELD_4			BIT(4)
#define RF6052_REG_IQADJ_G1		0x01
#define RF6052_REG_IQADJ_G2		0x02
#define RF6052_REG_BS_PA_APSET_G1_G4	0x03

#define REG_SYS_ISO_CTRL		0x0000
#define  SYS_ISO_CTRL_MD2PP			BIT(0)
#define REG_SYS_FUNC			0x0002
#define REG_OFDM0_TRX_PATH_ENABLE	0x0c04
`

const testRFDump1 = `======== RF REG (rtl8xxxu) =======
RF REG (debugfs) 0x000: 0x00000000 0x00011111 0x00022222 0x000EEEEE`

const testRFDump2 = `======== RF REG (rtl8192cu) =======
RF REG (debugfs) 0x000: 0x00012345 0x00011111 0x00022222 0x000FFFFF`

const testMACDump1 = `======= MAC REG (rtl8xxxu) =======
0x000: 0x00000000 0x00000000`

const testMACDump2 = `======= MAC REG (rtlwifi) =======
0x000: 0x00000000 0x00000000`

// writeTestdata creates a header and a directory of dumps.
func writeTestdata(t *testing.T) (headerPath, dumpDir string) {
	t.Helper()
	dir := t.TempDir()
	headerPath = filepath.Join(dir, "rtl8xxxu_regs.h")
	dumpDir = filepath.Join(dir, "dumps")

	files := map[string]string{
		headerPath:                              testHeader,
		filepath.Join(dumpDir, "a", "rf.txt"):  testRFDump1,
		filepath.Join(dumpDir, "b", "rf.txt"):  testRFDump2,
		filepath.Join(dumpDir, "a", "mac.txt"): testMACDump1,
		filepath.Join(dumpDir, "b", "mac.txt"): testMACDump2,
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return headerPath, dumpDir
}

func execute(args ...string) (string, error) {
	// Reset flags to prevent accumulation between tests
	verbose = 0
	fixupsFile = ""
	noDefaultFixups = false
	diffFormat = "table"
	diffSections = nil
	mapSections = nil
	mapSummary = false
	captureJSON = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// TestDiffE2E tests the diff command end-to-end
func TestDiffE2E(t *testing.T) {
	headerPath, dumpDir := writeTestdata(t)

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
		wantMissing []string
	}{
		{
			name: "directory",
			args: []string{"diff", headerPath, dumpDir},
			wantContain: []string{
				"# Register value delta analysis for RF registers",
				"# Register value delta analysis for MAC registers",
				"Dumps do not differ",
				"AC_BIT_FIELD_0",
				"BS_PA_APSET_G1_G4",
				"0xFFFFFFEE",
			},
		},
		{
			name: "section filter",
			args: []string{"diff", "--section", "MAC", headerPath, dumpDir},
			wantContain: []string{
				"# Register value delta analysis for MAC registers",
			},
			wantMissing: []string{"RF registers"},
		},
		{
			name: "single files",
			args: []string{"diff", headerPath,
				filepath.Join(dumpDir, "a", "rf.txt"), filepath.Join(dumpDir, "b", "rf.txt")},
			wantContain: []string{
				" - #0: a/rf.txt",
				" - #1: b/rf.txt",
				"**#1: rtl8192cu**",
			},
		},
		{
			name: "json",
			args: []string{"diff", "--format", "json", "--section", "RF", headerPath, dumpDir},
			wantContain: []string{
				`"section": "RF"`,
				`"name": "AC_BIT_FIELD_0"`,
				`"driver": "rtl8192cu"`,
			},
		},
		{
			name:    "unknown format",
			args:    []string{"diff", "--format", "xml", headerPath, dumpDir},
			wantErr: true,
		},
		{
			name:    "unknown section",
			args:    []string{"diff", "--section", "PHY", headerPath, dumpDir},
			wantErr: true,
		},
		{
			name:    "missing header",
			args:    []string{"diff", filepath.Join(dumpDir, "missing.h"), dumpDir},
			wantErr: true,
		},
		{
			name:    "missing dumps",
			args:    []string{"diff", headerPath},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(tt.args...)

			// Check error expectation
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.wantMissing {
				if strings.Contains(output, unwanted) {
					t.Errorf("Output contains unexpected string: %q\nGot:\n%s", unwanted, output)
				}
			}
		})
	}
}

// TestDiffFixupsE2E tests hints loaded from an overlay file
func TestDiffFixupsE2E(t *testing.T) {
	headerPath, dumpDir := writeTestdata(t)
	overlay := filepath.Join(t.TempDir(), "fixups.sexp")
	if err := os.WriteFile(overlay, []byte("(hint BS_PA_APSET_G1_G4 Calibrated)\n"), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := execute("diff", "--fixups", overlay, "--section", "RF", headerPath, dumpDir)
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Calibrated") {
		t.Errorf("Output missing hint\nGot:\n%s", output)
	}
}

// TestMapE2E tests the map command end-to-end
func TestMapE2E(t *testing.T) {
	headerPath, _ := writeTestdata(t)

	output, err := execute("map", headerPath)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{
		"MAC: 2 registers",
		"BB: 1 registers",
		"RF: 4 registers",
		"SYS_ISO_CTRL: 1 byte(s) at 2 addresses starting at 0x0000",
		" - SYS_ISO_CTRL_MD2PP: 0x0001",
		"AC: 4 byte(s) at 1 addresses starting at 0x0000",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}

	output, err = execute("map", "--summary", "--section", "RF", headerPath)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "RF: 4 registers" {
		t.Errorf("expected RF summary only, got:\n%s", output)
	}
}

// TestCaptureInfoE2E tests the capture-info command end-to-end
func TestCaptureInfoE2E(t *testing.T) {
	output, err := execute("capture-info", "8192cu-00:11:22:33:44:55-rx.pcap")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "8192cu (unversioned) 00:11:22:33:44:55 rx") {
		t.Errorf("unexpected output:\n%s", output)
	}

	output, err = execute("capture-info", "--json", "rtl8xxxu-v2-00:11:22:33:44:55-tx.pcap")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{`"driver": "rtl8xxxu"`, `"version": "v2"`, `"direction": "tx"`} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}

	if _, err := execute("capture-info", "iwifi-tx.pcap"); err == nil {
		t.Error("Expected error for unexpected filename")
	}
}
