package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/evplan/contrast-audit/pkg/audit"
	"github.com/evplan/contrast-audit/pkg/wcag"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check FOREGROUND BACKGROUND",
	Short: "Check a single color pair",
	Long: `Computes the WCAG 2.1 contrast ratio for one foreground/background
pair given as hex colors, e.g.:

  contrast-audit check "#333333" "#ffffff"`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fg, err := wcag.ParseHex(args[0])
		if err != nil {
			log.Fatal(err)
		}
		bg, err := wcag.ParseHex(args[1])
		if err != nil {
			log.Fatal(err)
		}

		ratio := wcag.ContrastRatio(fg, bg)
		level := wcag.Classify(ratio)

		fmt.Printf("Contrast ratio: %.2f:1 (%s)\n", ratio, level.Label())
		fmt.Printf("  AA  (normal text, >= %.1f): %s\n", wcag.AANormal, passFail(level.MeetsAA))
		fmt.Printf("  AAA (normal text, >= %.1f): %s\n", wcag.AAANormal, passFail(level.MeetsAAA))
		fmt.Printf("  AA  (large text,  >= %.1f): %s\n", wcag.AALarge, passFail(level.MeetsLargeTextAA))

		if !level.MeetsAA {
			fmt.Printf("Needs a %.1f%% contrast increase to reach AA.\n", audit.NeededIncreasePercent(ratio))
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "FAIL"
}
