package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"binopt/config"
	"binopt/internal/shell"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive trading session",
	Long: `Start a session and log outcomes as they settle.

Single keys record trades (w=win, l=loss, p=push, u=undo, h=history),
colon commands adjust the session (:risk N, :payout N, :reset, :w, :q).

If the config file does not exist the built-in defaults are used.

Example:
  binopt run -f session.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "config.yml", "path to config file (YAML or JSON)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadOrDefault(runConfigPath)
	if err != nil {
		return err
	}

	fmt.Printf("Session: $%.2f starting balance, %.1f%% risk, %.0f%% payout\n",
		cfg.Session.InitialBalance, cfg.Session.RiskPercent, cfg.Session.PayoutPercent)
	fmt.Printf("Stops:   %.0f%% drawdown or %d consecutive losses\n\n",
		cfg.Session.StopLossPercent, cfg.Session.MaxConsecutiveLosses)

	sh, err := shell.New(cfg, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return sh.Run()
}

// loadOrDefault falls back to the built-in defaults when no config file
// exists; a file that exists but fails to parse or validate is an error.
func loadOrDefault(path string) (*config.Config, error) {
	cfg, err := config.LoadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
