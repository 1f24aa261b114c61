package cmd

import (
	"context"
	"fmt"

	"github.com/rustyeddy/daysim/config"
	"github.com/rustyeddy/daysim/journal"
	"github.com/rustyeddy/daysim/ledger"
	"github.com/rustyeddy/daysim/market"
	"github.com/rustyeddy/daysim/oracle"
	"github.com/rustyeddy/daysim/pkg/id"
	"github.com/rustyeddy/daysim/sim"
	"github.com/rustyeddy/daysim/strategies"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest from a configuration file",
	Long: `Run loads a YAML/JSON configuration, reads the daily-bar CSVs it
names, and replays the configured date range session by session.

Example:
  daysim run -c backtest.yaml`,
	RunE: runBacktest,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to config file (required)")
	runCmd.MarkFlagRequired("config")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return err
	}

	series := make(map[string]*market.Series, len(cfg.Data))
	for _, d := range cfg.Data {
		s, err := market.LoadCSV(d.Symbol, d.Path)
		if err != nil {
			return fmt.Errorf("load %s: %w", d.Symbol, err)
		}
		series[d.Symbol] = s
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	strat, err := strategies.ByName(cfg.Strategy.Name, cfg.Strategy.Symbol)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	book := ledger.New(cfg.Account.Cash)
	eng := sim.NewEngine(book, series, commissionModel(cfg.Commission))
	runID := id.New()

	clock := &sim.Clock{
		Start:    cfg.Simulation.Start,
		End:      cfg.Simulation.End,
		Engine:   eng,
		Strategy: strat,
		Oracle:   oracle.New(),
		Journal:  j,
		RunID:    runID,
	}

	fmt.Printf("Running backtest %s\n", runID)
	fmt.Printf("  Strategy: %s\n", cfg.Strategy.Name)
	fmt.Printf("  Range: %s .. %s\n\n", cfg.Simulation.Start, cfg.Simulation.End)

	if err := clock.Run(context.Background()); err != nil {
		return err
	}

	var commissions, dividends, shares float64
	for _, t := range book.Trades() {
		commissions += t.Commission
		shares += t.Shares()
	}
	for _, d := range book.Dividends() {
		dividends += d.Amount
	}

	fmt.Printf("Backtest Complete!\n")
	fmt.Printf("  Cash: $%.2f (initial $%.2f)\n", book.Cash(), book.InitialCash())
	fmt.Printf("  Trades: %d (%.0f shares)  Commissions: $%.2f\n", len(book.Trades()), shares, commissions)
	fmt.Printf("  Realized gains: %d rows\n", len(book.CapitalGains()))
	fmt.Printf("  Dividends: $%.2f\n", dividends)
	fmt.Printf("  Open lots:\n")
	for _, lot := range book.Positions() {
		fmt.Printf("    %-8s %10.2f @ %.4f  acquired %s  tag=%q\n",
			lot.Symbol, lot.Size, lot.Price, lot.Date, lot.Tag)
	}

	return nil
}

func commissionModel(c config.CommissionConfig) sim.Commission {
	if c.Model == "per-share" {
		return sim.PerShareCommission(c.PerShare, c.Minimum)
	}
	return sim.RateCommission(c.Rate)
}

func openJournal(c config.JournalConfig) (journal.Journal, error) {
	switch c.Type {
	case "sqlite":
		return journal.NewSQLite(c.DBPath)
	case "csv":
		return journal.NewCSV(c.TradesFile, c.GainsFile, c.DividendsFile, c.EquityFile)
	default:
		return journal.Nop{}, nil
	}
}
