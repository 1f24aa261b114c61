package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daysim",
	Short: "A daily-bar market backtesting engine with exact FIFO accounting",
	Long: `Daysim replays historical daily price, dividend and split data one
trading day at a time, lets a strategy place limit-on-open and
limit-on-close orders, and keeps an exact accounting ledger: cash, FIFO
cost-basis lots, realized gains, commissions and dividends.

It provides tools for:
  - Running backtests from a YAML/JSON config and daily-bar CSVs
  - Journaling every fill, gain, dividend and daily equity mark to SQLite or CSV
  - Inspecting journaled runs
  - Point-in-time gating of auxiliary datasets (no lookahead)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
