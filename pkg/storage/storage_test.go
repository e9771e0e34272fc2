package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/evplan/contrast-audit/pkg/audit"
	"github.com/evplan/contrast-audit/pkg/registry"
	"github.com/evplan/contrast-audit/pkg/wcag"
)

func testReport(t *testing.T) *audit.Report {
	t.Helper()
	fg, err := wcag.ParseHex("#333333")
	if err != nil {
		t.Fatal(err)
	}
	bg, err := wcag.ParseHex("#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	faint, err := wcag.ParseHex("#eeeeee")
	if err != nil {
		t.Fatal(err)
	}
	return audit.Run([]registry.TestCase{
		{Name: "Body", Category: "Typography", Foreground: fg, Background: bg},
		{Name: "Ghost", Category: "Buttons", Foreground: faint, Background: bg},
	})
}

func TestSaveAndListRuns(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	report := testReport(t)

	runID, err := db.SaveRun(ctx, "palette.json", report)
	if err != nil {
		t.Fatal(err)
	}
	if runID == 0 {
		t.Fatal("expected non-zero run id")
	}

	runs, err := db.ListRuns(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.Source != "palette.json" {
		t.Errorf("source = %q", run.Source)
	}
	if run.Total != 2 || run.PassAA != 1 {
		t.Errorf("counters wrong: %+v", run)
	}
	if run.Verdict != report.Verdict() {
		t.Errorf("verdict = %q, want %q", run.Verdict, report.Verdict())
	}
}

func TestRunResultsRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	report := testReport(t)
	runID, err := db.SaveRun(ctx, "palette.json", report)
	if err != nil {
		t.Fatal(err)
	}

	stored, err := db.RunResults(ctx, runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != len(report.Results) {
		t.Fatalf("expected %d results, got %d", len(report.Results), len(stored))
	}
	for i, s := range stored {
		want := report.Results[i]
		if s.Position != i {
			t.Errorf("result %d: position %d", i, s.Position)
		}
		if s.Name != want.Case.Name || s.Category != want.Case.Category {
			t.Errorf("result %d: identity %q/%q, want %q/%q", i, s.Category, s.Name, want.Case.Category, want.Case.Name)
		}
		if s.FgHex != want.Case.Foreground.Hex() || s.BgHex != want.Case.Background.Hex() {
			t.Errorf("result %d: colors %s/%s", i, s.FgHex, s.BgHex)
		}
		if s.MeetsAA != want.Level.MeetsAA {
			t.Errorf("result %d: meets_aa %v, want %v", i, s.MeetsAA, want.Level.MeetsAA)
		}
	}
}

func TestStats(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.SaveRun(ctx, "a.json", testReport(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveRun(ctx, "b.json", testReport(t)); err != nil {
		t.Fatal(err)
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 categories, got %d: %+v", len(stats), stats)
	}
	// Alphabetical: Buttons before Typography.
	if stats[0].Category != "Buttons" || stats[1].Category != "Typography" {
		t.Errorf("category order: %+v", stats)
	}
	if stats[1].ResultCount != 2 || stats[1].PassAACount != 2 {
		t.Errorf("typography stats: %+v", stats[1])
	}
	if stats[0].PassAACount != 0 {
		t.Errorf("ghost button should fail AA in stats: %+v", stats[0])
	}
}
