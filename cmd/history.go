package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evplan/contrast-audit/internal/utils"
	"github.com/evplan/contrast-audit/pkg/storage"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved audit runs",
}

// historyListCmd represents the list command
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		db, err := openHistoryDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No saved runs. Use 'contrast-audit audit --save' to record one.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tRAN AT\tSOURCE\tPAIRS\tAA\tAAA\tFAIL\tVERDICT\t")
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%s\t\n",
				r.ID, r.RanAt.Format("2006-01-02 15:04"), r.Source, r.Total, r.PassAA, r.PassAAA, r.Fail, r.Verdict)
		}
		w.Flush()
		return nil
	},
}

// historyShowCmd represents the show command
var historyShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Show the per-pair results of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		db, err := openHistoryDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		results, err := db.RunResults(context.Background(), runID)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no results for run %d", runID)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tNAME\tFG\tBG\tRATIO\tAA\tAAA\t")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\t%s\t\n",
				r.Category, r.Name, r.FgHex, r.BgHex, r.Ratio, passFail(r.MeetsAA), passFail(r.MeetsAAA))
		}
		w.Flush()
		return nil
	},
}

// historyStatsCmd represents the stats command
var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Per-category pass rates across all saved runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No data in the history database to generate stats.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "CATEGORY\tRESULTS\tPASS AA\tWORST RATIO\t")
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t\n", s.Category, s.ResultCount, s.PassAACount, s.WorstRatio)
		}
		w.Flush()
		return nil
	},
}

func openHistoryDB(cmd *cobra.Command) (*storage.DB, error) {
	dbPath, _ := cmd.Parent().PersistentFlags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("db.path")
	}
	absPath, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("history database not found: %s", absPath)
	}
	return storage.Open(absPath)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.PersistentFlags().StringP("db", "", "", "Path to the history SQLite DB (default from config)")
	historyListCmd.Flags().IntP("limit", "", 20, "Maximum number of runs to list")
}
