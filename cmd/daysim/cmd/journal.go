package cmd

import (
	"fmt"

	"github.com/rustyeddy/daysim/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect a SQLite backtest journal",
	Long: `Journal lists the runs in a journal database, or the fills and
daily equity curve of one run.

Examples:
  daysim journal --db daysim.sqlite
  daysim journal --db daysim.sqlite --run 01J9ZK...`,
	RunE: runJournal,
}

var (
	jnDBPath string
	jnRunID  string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().StringVarP(&jnDBPath, "db", "d", "./daysim.sqlite", "path to SQLite journal DB")
	journalCmd.Flags().StringVarP(&jnRunID, "run", "r", "", "run ID to show (default: list runs)")
}

func runJournal(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(jnDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if jnRunID == "" {
		runs, err := j.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs journaled.")
			return nil
		}
		for _, r := range runs {
			fmt.Println(r)
		}
		return nil
	}

	trades, err := j.ListTrades(jnRunID)
	if err != nil {
		return err
	}
	fmt.Printf("Trades (%d):\n", len(trades))
	for _, t := range trades {
		fmt.Printf("  %s %-5s %-8s %10.2f @ %.4f  commission %.4f  tag=%q\n",
			t.Date, t.Session, t.Symbol, t.Size, t.Price, t.Commission, t.Tag)
	}

	equity, err := j.ListEquity(jnRunID)
	if err != nil {
		return err
	}
	fmt.Printf("Equity (%d days):\n", len(equity))
	for _, e := range equity {
		fmt.Printf("  %s  cash %12.2f  long %12.2f  total %12.2f\n",
			e.Date, e.Cash, e.LongEquities, e.Total)
	}
	return nil
}
