package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"binopt/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage session configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  binopt config init -o session.yaml
  binopt config validate -f session.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "config.yml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("Wrote default configuration to %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", configValidatePath)
	fmt.Printf("  Balance: $%.2f  Risk: %.1f%%  Payout: %.0f%%\n",
		cfg.Session.InitialBalance, cfg.Session.RiskPercent, cfg.Session.PayoutPercent)
	fmt.Printf("  Stop-loss: %.0f%%  Max consecutive losses: %d\n",
		cfg.Session.StopLossPercent, cfg.Session.MaxConsecutiveLosses)
	fmt.Printf("  Journal: %s\n", cfg.Journal.Type)
	return nil
}
