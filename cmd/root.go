package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insource-health/tender-triage/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tender-triage",
	Short: "Classify procurement notices and resolve buyers to providers",
	Long: "Runs procurement notices through the staged classification pipeline, " +
		"resolves buying organizations to canonical providers, and builds " +
		"enriched records for persistence.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
