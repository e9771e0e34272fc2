package cmd

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// registryCmd represents the registry command
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect a registry of color pairs without auditing it",
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a registry source and report its size",
	Run: func(cmd *cobra.Command, args []string) {
		reg, source, err := loadRegistry(cmd)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: OK (%d cases in %d categories)\n", source, reg.Len(), len(reg.Categories()))
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List the cases in a registry source",
	Run: func(cmd *cobra.Command, args []string) {
		reg, _, err := loadRegistry(cmd)
		if err != nil {
			log.Fatal(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tNAME\tFOREGROUND\tBACKGROUND\t")
		for _, tc := range reg.Cases() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", tc.Category, tc.Name, tc.Foreground.Hex(), tc.Background.Hex())
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(validateCmd)
	registryCmd.AddCommand(showCmd)
	addSourceFlags(validateCmd)
	addSourceFlags(showCmd)
}
