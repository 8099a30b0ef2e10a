package main

import (
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insource-health/tender-triage/internal/enrich"
	"github.com/insource-health/tender-triage/internal/resolve"
	"github.com/insource-health/tender-triage/internal/store"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Build enriched records for notices from a JSON file",
	Long: `Resolves each notice's buyer to a canonical provider, scores a service
category, derives contract duration, and optionally persists the records.

Examples:
  # Enrich a feed export and print the records
  tender-triage enrich --input notices.json

  # Enrich with 8 workers and persist
  tender-triage enrich --input notices.json --concurrency 8 --save`,
	RunE: runEnrich,
}

func init() {
	f := enrichCmd.Flags()
	f.String("input", "", "path to a JSON array of notices (required)")
	f.String("output", "", "output file path (default: stdout)")
	f.Int("concurrency", 0, "batch workers (0 = use config)")
	f.Bool("save", false, "save records to the configured store")
	_ = enrichCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	log := zap.L().With(zap.String("command", "enrich"), zap.String("run_id", runID))

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	save, _ := cmd.Flags().GetBool("save")
	if concurrency <= 0 {
		concurrency = cfg.Enrich.Concurrency
	}

	notices, err := readNoticesFile(input)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	resolver := resolve.New(reg, resolve.LevenshteinScorer{}, cfg.Resolver.FuzzyThreshold)
	enricher := enrich.NewEnricher(resolver, enrich.NewCategoryScorer(reg.Categories()), concurrency)

	records := enricher.EnrichBatch(ctx, notices)
	log.Info("enrichment complete",
		zap.Int("notices", len(notices)),
		zap.Int("records", len(records)),
		zap.Int("skipped", len(notices)-len(records)),
	)

	if save {
		if err := cfg.Validate("store"); err != nil {
			return err
		}
		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}
		if err := st.SaveEnriched(ctx, records); err != nil {
			return err
		}
		log.Info("records saved", zap.Int("count", len(records)))
	}

	return writeJSON(output, records)
}
