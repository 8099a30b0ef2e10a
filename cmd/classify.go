package main

import (
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insource-health/tender-triage/internal/classify"
	"github.com/insource-health/tender-triage/internal/model"
	"github.com/insource-health/tender-triage/internal/store"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify notices from a JSON file",
	Long: `Runs each notice through the staged pipeline and reports a label of
insourcing_opportunity, framework, or discard with a reason and confidence.

Examples:
  # Classify a feed export and print results
  tender-triage classify --input notices.json

  # Persist results to the configured store
  tender-triage classify --input notices.json --save`,
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.String("input", "", "path to a JSON array of notices (required)")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save", false, "save results to the configured store")
	_ = classifyCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	log := zap.L().With(zap.String("command", "classify"), zap.String("run_id", runID))

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	notices, err := readNoticesFile(input)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	engine := classify.NewEngine(reg)
	results := engine.ClassifyBatch(notices)

	counts := map[model.Classification]int{}
	for _, r := range results {
		counts[r.Classification]++
	}
	log.Info("classification complete",
		zap.Int("notices", len(notices)),
		zap.Int("opportunities", counts[model.ClassOpportunity]),
		zap.Int("frameworks", counts[model.ClassFramework]),
		zap.Int("discarded", counts[model.ClassDiscard]),
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
		if err := st.SaveClassifications(ctx, results); err != nil {
			return err
		}
		log.Info("results saved", zap.Int("count", len(results)))
	}

	return writeJSON(output, results)
}
