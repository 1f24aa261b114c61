package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/daysim/market"
	"gopkg.in/yaml.v3"
)

// Config is the complete description of one backtest run.
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Commission CommissionConfig `json:"commission" yaml:"commission"`
	Data       []DataConfig     `json:"data" yaml:"data"`
	Strategy   StrategyConfig   `json:"strategy" yaml:"strategy"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

type AccountConfig struct {
	ID   string  `json:"id" yaml:"id"`
	Cash float64 `json:"cash" yaml:"cash"`
}

type SimulationConfig struct {
	Start market.Date `json:"start" yaml:"start"`
	End   market.Date `json:"end" yaml:"end"`
}

// CommissionConfig selects the commission schedule: "rate" charges
// Rate × notional per fill, "per-share" charges PerShare × shares with a
// Minimum per fill capped at 1% of notional.
type CommissionConfig struct {
	Model    string  `json:"model" yaml:"model"`
	Rate     float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	PerShare float64 `json:"per_share,omitempty" yaml:"per_share,omitempty"`
	Minimum  float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
}

// DataConfig registers one symbol's daily bar CSV.
type DataConfig struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Path   string `json:"path" yaml:"path"`
}

type StrategyConfig struct {
	Name   string `json:"name" yaml:"name"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	GainsFile     string `json:"gains_file,omitempty" yaml:"gains_file,omitempty"`
	DividendsFile string `json:"dividends_file,omitempty" yaml:"dividends_file,omitempty"`
	EquityFile    string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// LoadFromFile loads a configuration, trying YAML first and falling back
// to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, as YAML for .yaml/.yml paths and
// JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Account.Cash <= 0 {
		return fmt.Errorf("account.cash must be positive")
	}
	if c.Simulation.Start.IsZero() || c.Simulation.End.IsZero() {
		return fmt.Errorf("simulation.start and simulation.end are required")
	}
	if c.Simulation.End.Before(c.Simulation.Start) {
		return fmt.Errorf("simulation.end before simulation.start")
	}
	switch c.Commission.Model {
	case "rate":
		if c.Commission.Rate < 0 {
			return fmt.Errorf("commission.rate must not be negative")
		}
	case "per-share":
		if c.Commission.PerShare <= 0 {
			return fmt.Errorf("commission.per_share must be positive")
		}
	default:
		return fmt.Errorf("commission.model must be 'rate' or 'per-share'")
	}
	if len(c.Data) == 0 {
		return fmt.Errorf("at least one data entry is required")
	}
	for i, d := range c.Data {
		if d.Symbol == "" || d.Path == "" {
			return fmt.Errorf("data[%d]: symbol and path are required", i)
		}
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.GainsFile == "" ||
			c.Journal.DividendsFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades/gains/dividends/equity files required for csv journal")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none'")
	}
	return nil
}

// Default returns a runnable starting configuration.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:   "SIM-001",
			Cash: 10_000,
		},
		Simulation: SimulationConfig{
			Start: market.NewDate(2004, 8, 12),
			End:   market.NewDate(2004, 8, 18),
		},
		Commission: CommissionConfig{
			Model: "rate",
			Rate:  0.01,
		},
		Data: []DataConfig{
			{Symbol: "acc", Path: "./data/acc.csv"},
		},
		Strategy: StrategyConfig{
			Name:   "ladder",
			Symbol: "acc",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./daysim.sqlite",
		},
	}
}
