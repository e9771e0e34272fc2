package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evplan/contrast-audit/pkg/audit"
	"github.com/evplan/contrast-audit/pkg/registry"
	"github.com/evplan/contrast-audit/pkg/wcag"
)

func reportFromHex(t *testing.T, pairs [][2]string) *audit.Report {
	t.Helper()
	var cases []registry.TestCase
	for i, p := range pairs {
		fg, err := wcag.ParseHex(p[0])
		if err != nil {
			t.Fatal(err)
		}
		bg, err := wcag.ParseHex(p[1])
		if err != nil {
			t.Fatal(err)
		}
		cases = append(cases, registry.TestCase{
			Name:       "pair-" + string(rune('a'+i)),
			Category:   "General",
			Foreground: fg,
			Background: bg,
		})
	}
	return audit.Run(cases)
}

func TestGateFailed(t *testing.T) {
	// Black on white passes everything; #999 on white fails AA but not
	// the large-text threshold.
	mixed := reportFromHex(t, [][2]string{
		{"#000000", "#ffffff"},
		{"#999999", "#ffffff"},
	})

	if gateFailed(mixed, "none") {
		t.Error("gate 'none' must never fail")
	}
	if gateFailed(mixed, "large") {
		t.Error("gate 'large' should pass: nothing is below 3.0")
	}
	if !gateFailed(mixed, "aa") {
		t.Error("gate 'aa' should fail: #999 on white is below 4.5")
	}
	if !gateFailed(mixed, "aaa") {
		t.Error("gate 'aaa' should fail")
	}

	clean := reportFromHex(t, [][2]string{{"#000000", "#ffffff"}})
	for _, gate := range []string{"none", "large", "aa", "aaa"} {
		if gateFailed(clean, gate) {
			t.Errorf("gate %q should pass for black on white", gate)
		}
	}
}

func TestValidateGate(t *testing.T) {
	for _, ok := range []string{"", "none", "large", "aa", "aaa"} {
		if err := validateGate(ok); err != nil {
			t.Errorf("validateGate(%q): %v", ok, err)
		}
	}
	if err := validateGate("wcag3"); err == nil {
		t.Error("expected error for unknown gate")
	}
}

func TestWriteReportToFile(t *testing.T) {
	r := reportFromHex(t, [][2]string{{"#000000", "#ffffff"}})
	path := filepath.Join(t.TempDir(), "report.md")

	if err := writeReport(r, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Color Contrast Audit Report") {
		t.Errorf("report file missing title:\n%s", data)
	}
}
