package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "binopt",
	Short: "A session-based risk calculator for binary-options trading",
	Long: `Binopt tracks a trading session one settled outcome at a time.

It sizes every trade from the current balance and a configured risk
percentage, and halts the session automatically when a drawdown limit
or a run of consecutive losses is hit.

Commands:
  run      - start an interactive session
  config   - generate or validate configuration files
  version  - print the version`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
