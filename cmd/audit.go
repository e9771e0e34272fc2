package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evplan/contrast-audit/internal/utils"
	"github.com/evplan/contrast-audit/pkg/audit"
	"github.com/evplan/contrast-audit/pkg/storage"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a contrast audit over a registry of color pairs",
	Long: `Loads a registry of foreground/background pairs, computes the WCAG 2.1
contrast ratio for every pair, and renders a markdown report with
summary statistics, per-category tables and remediation hints.

The report is always rendered in full. With --fail-on set, the process
additionally exits with status 2 when any pair misses the named
conformance level, for use as a CI gate.`,
	Run: func(cmd *cobra.Command, args []string) {
		outPath, _ := cmd.Flags().GetString("out")
		workers, _ := cmd.Flags().GetInt("workers")
		save, _ := cmd.Flags().GetBool("save")
		dbPath, _ := cmd.Flags().GetString("db")
		failOn, _ := cmd.Flags().GetString("fail-on")

		if workers == 0 {
			workers = viper.GetInt("audit.workers")
		}
		if failOn == "" {
			failOn = viper.GetString("audit.failon")
		}
		if dbPath == "" {
			dbPath = viper.GetString("db.path")
		}
		if err := validateGate(failOn); err != nil {
			log.Fatal(err)
		}

		reg, source, err := loadRegistry(cmd)
		if err != nil {
			log.Fatal(err)
		}
		utils.Log.Infof("auditing %d color pairs from %s", reg.Len(), source)

		report := audit.RunConcurrent(reg.Cases(), workers)
		utils.Log.Infof("audit complete: %d/%d pass AA (%s)",
			report.Totals.PassAA, report.Totals.Count, report.Verdict())

		if err := writeReport(report, outPath); err != nil {
			log.Fatal(err)
		}

		if save {
			if err := saveRun(source, report, dbPath); err != nil {
				log.Fatal(err)
			}
		}

		if gateFailed(report, failOn) {
			utils.Log.Errorf("compliance gate %q not met", failOn)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	addSourceFlags(auditCmd)

	auditCmd.Flags().StringP("out", "o", "", "Write the markdown report to this file instead of stdout")
	auditCmd.Flags().IntP("workers", "w", 0, "Worker goroutines for large registries (default from config, 1 = sequential)")
	auditCmd.Flags().BoolP("save", "s", false, "Persist the run to the history database")
	auditCmd.Flags().StringP("db", "", "", "Path to the history SQLite DB (default from config)")
	auditCmd.Flags().StringP("fail-on", "", "", "Exit non-zero when a pair misses this level: none, large, aa, aaa")
}

func validateGate(gate string) error {
	switch gate {
	case "", "none", "large", "aa", "aaa":
		return nil
	}
	return fmt.Errorf("invalid --fail-on value %q (want none, large, aa or aaa)", gate)
}

func gateFailed(r *audit.Report, gate string) bool {
	switch gate {
	case "large":
		return r.Totals.Fail > 0
	case "aa":
		return r.Totals.PassAA < r.Totals.Count
	case "aaa":
		return r.Totals.PassAAA < r.Totals.Count
	default:
		return false
	}
}

// writeReport renders to stdout or to a file. The report is assembled in
// memory before the sink is touched, so a write failure leaves no partial
// file content behind the caller's back.
func writeReport(r *audit.Report, outPath string) error {
	if outPath == "" {
		return audit.RenderMarkdown(os.Stdout, r)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := audit.RenderMarkdown(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	utils.Log.Infof("report written to %s", outPath)
	return nil
}

func saveRun(source string, r *audit.Report, dbPath string) error {
	lock, err := utils.NewDBLock(dbPath)
	if err != nil {
		return err
	}
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	absPath, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}

	db, err := storage.Open(absPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runID, err := db.SaveRun(context.Background(), source, r)
	if err != nil {
		return err
	}
	utils.Log.Infof("run saved to history as #%d", runID)
	return nil
}
