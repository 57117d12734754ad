package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"binopt/session"
)

// Config is the full application configuration.
type Config struct {
	Session SessionConfig `json:"session" yaml:"session"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// SessionConfig mirrors the parameters a session is constructed with.
type SessionConfig struct {
	InitialBalance       float64 `json:"initial_balance" yaml:"initial_balance"`
	RiskPercent          float64 `json:"risk_percent" yaml:"risk_percent"`
	PayoutPercent        float64 `json:"payout_percent" yaml:"payout_percent"`
	StopLossPercent      float64 `json:"stop_loss_percent" yaml:"stop_loss_percent"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses" yaml:"max_consecutive_losses"`
}

// JournalConfig selects where session exports are written.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile  string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SummaryFile string `json:"summary_file,omitempty" yaml:"summary_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns the documented defaults: a $2000 account risking 5%
// per trade at an 80% payout, stopping at 20% drawdown or 5 straight
// losses, exporting to CSV files in the working directory.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			InitialBalance:       2000,
			RiskPercent:          5,
			PayoutPercent:        80,
			StopLossPercent:      20,
			MaxConsecutiveLosses: 5,
		},
		Journal: JournalConfig{
			Type:        "csv",
			TradesFile:  "./trades.csv",
			SummaryFile: "./sessions.csv",
		},
	}
}

// rawConfig decodes with pointer fields so an absent value and an
// explicit zero are distinguishable: absent fields fall back to
// defaults, explicit values of any kind go through validation as-is.
type rawConfig struct {
	Session struct {
		InitialBalance       *float64 `json:"initial_balance" yaml:"initial_balance"`
		RiskPercent          *float64 `json:"risk_percent" yaml:"risk_percent"`
		PayoutPercent        *float64 `json:"payout_percent" yaml:"payout_percent"`
		StopLossPercent      *float64 `json:"stop_loss_percent" yaml:"stop_loss_percent"`
		MaxConsecutiveLosses *int     `json:"max_consecutive_losses" yaml:"max_consecutive_losses"`
	} `json:"session" yaml:"session"`
	Journal *JournalConfig `json:"journal" yaml:"journal"`
}

// LoadFromFile loads configuration from a YAML or JSON file. Fields the
// file leaves unset fall back to defaults; fields the file sets to an
// out-of-range value are rejected, never silently replaced.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	raw := &rawConfig{}
	if err := yaml.Unmarshal(data, raw); err != nil {
		if jsonErr := json.Unmarshal(data, raw); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg := Default()
	if raw.Session.InitialBalance != nil {
		cfg.Session.InitialBalance = *raw.Session.InitialBalance
	}
	if raw.Session.RiskPercent != nil {
		cfg.Session.RiskPercent = *raw.Session.RiskPercent
	}
	if raw.Session.PayoutPercent != nil {
		cfg.Session.PayoutPercent = *raw.Session.PayoutPercent
	}
	if raw.Session.StopLossPercent != nil {
		cfg.Session.StopLossPercent = *raw.Session.StopLossPercent
	}
	if raw.Session.MaxConsecutiveLosses != nil {
		cfg.Session.MaxConsecutiveLosses = *raw.Session.MaxConsecutiveLosses
	}
	if raw.Journal != nil {
		cfg.Journal = *raw.Journal
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml) or JSON.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
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

// Validate checks ranges. Session numeric rules live with the session
// package so the loader and the core can never disagree.
func (c *Config) Validate() error {
	if err := c.SessionConfig().Validate(); err != nil {
		return err
	}

	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SummaryFile == "" {
			return fmt.Errorf("journal trades_file and summary_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	return nil
}

// SessionConfig converts the loaded session section into the core's
// config value.
func (c *Config) SessionConfig() session.Config {
	return session.Config{
		InitialBalance:       c.Session.InitialBalance,
		RiskPercent:          c.Session.RiskPercent,
		PayoutPercent:        c.Session.PayoutPercent,
		StopLossPercent:      c.Session.StopLossPercent,
		MaxConsecutiveLosses: c.Session.MaxConsecutiveLosses,
	}
}
