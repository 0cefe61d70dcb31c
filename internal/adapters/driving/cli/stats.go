package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var statsJSON bool

// recentRunLimit bounds the run history shown by stats.
const recentRunLimit = 5

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ledger, knowledge and run statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	docs, err := classificationStore.LoadJSONL(ctx)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}
	ledgerStats := classifierService.AggregateStatistics(docs)

	knowledgeStats, err := knowledgeService.SnapshotStatistics(ctx)
	if err != nil {
		return fmt.Errorf("loading knowledge statistics: %w", err)
	}

	runs, err := runCatalog.RecentRuns(ctx, recentRunLimit)
	if err != nil {
		return fmt.Errorf("loading run history: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, map[string]any{
			"ledger":    ledgerStats,
			"knowledge": knowledgeStats,
			"runs":      runs,
		})
	}

	cmd.Println("Ledger:")
	if len(ledgerStats) == 0 {
		cmd.Println("  (empty)")
	} else {
		cmd.Printf("  Total: %v\n", ledgerStats["total"])
		cmd.Printf("  Mean confidence: %.3f\n", ledgerStats["mean_confidence"])
		printCounts(cmd, "By type", ledgerStats["by_type"])
		printCounts(cmd, "By domain", ledgerStats["by_domain"])
	}

	cmd.Println("Knowledge:")
	categories := make([]string, 0, len(knowledgeStats))
	for category := range knowledgeStats {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		cmd.Printf("  %-15s %d\n", category, knowledgeStats[category])
	}

	cmd.Println("Recent runs:")
	if len(runs) == 0 {
		cmd.Println("  (none)")
	}
	for _, run := range runs {
		cmd.Printf("  %s  %d docs  conf %.3f  %s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.DocumentCount, run.MeanConfidence,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	return nil
}

func printCounts(cmd *cobra.Command, label string, v any) {
	counts, ok := v.(map[string]int)
	if !ok || len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Printf("  %s:\n", label)
	for _, k := range keys {
		cmd.Printf("    %-15s %d\n", k, counts[k])
	}
}
