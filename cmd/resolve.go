package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insource-health/tender-triage/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [buyer name...]",
	Short: "Resolve buyer names to canonical providers",
	Long: `Runs one or more free-text buyer names through the tiered resolver
(exact, fuzzy, keyword) and prints the resulting mappings.

Examples:
  tender-triage resolve "Cambridge University Hospitals NHS Foundation Trust"
  tender-triage resolve "Barts Health" "Leeds Teaching Hospitals"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("output", "", "output file path (default: stdout)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	output, _ := cmd.Flags().GetString("output")

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	resolver := resolve.New(reg, resolve.LevenshteinScorer{}, cfg.Resolver.FuzzyThreshold)

	type resolution struct {
		BuyerName string `json:"buyer_name"`
		Mapping   any    `json:"mapping,omitempty"`
		Resolved  bool   `json:"resolved"`
	}

	out := make([]resolution, 0, len(args))
	for _, name := range args {
		mapping, ok := resolver.Resolve(name)
		r := resolution{BuyerName: name, Resolved: ok}
		if ok {
			r.Mapping = mapping
		}
		out = append(out, r)
	}

	zap.L().Info("resolution complete",
		zap.Int("queried", len(args)),
		zap.Any("stats", resolver.MappingStats()),
	)

	return writeJSON(output, out)
}
