package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after config files, RPS_* environment
variables and flags have been applied, as YAML.

Examples:
  rps config
  RPS_SCORE_HOLD=2s rps config
  rps config > ~/.rps/configs/rps.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return describeStartupError(printConfig(cmd))
	},
}

func printConfig(cmd *cobra.Command) error {
	cfg, err := loadSettings(cmd.Flags())
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
