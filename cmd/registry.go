package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Load the provider registry and report its contents",
	Long: `Loads the configured provider registry source and prints provider,
parent-body, variant, and category counts. Useful for checking a new registry
export before pointing classification at it.`,
	RunE: runRegistry,
}

func init() {
	registryCmd.Flags().Bool("variants", false, "also list derived name variants per provider")
	rootCmd.AddCommand(registryCmd)
}

func runRegistry(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	showVariants, _ := cmd.Flags().GetBool("variants")

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	variantCount := 0
	for _, entry := range reg.Providers() {
		variantCount += len(entry.Variants)
	}
	for _, entry := range reg.ParentBodies() {
		variantCount += len(entry.Variants)
	}

	summary := map[string]any{
		"providers":     len(reg.Providers()),
		"parent_bodies": len(reg.ParentBodies()),
		"variants":      variantCount,
		"categories":    len(reg.Categories()),
	}

	if showVariants {
		variants := make(map[string][]string, len(reg.Providers()))
		for _, entry := range reg.Providers() {
			variants[entry.Provider.Code] = entry.Variants
		}
		summary["provider_variants"] = variants
	}

	return writeJSON("", summary)
}
