package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
	"github.com/doclens/doclens-cli/internal/logger"
)

var batchJSON bool

// batchExtensions are the file types picked up from a batch directory.
var batchExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Classify every text document in a directory",
	Long: `Classifies all .txt and .md files in a directory concurrently,
appends the results to the classification ledger, rebuilds the Parquet
snapshot, round-trip validates it and records the run in the catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "output aggregate statistics as JSON")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputs, err := collectInputs(args[0])
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	ctx := context.Background()
	started := time.Now()

	results, err := classifierService.BatchClassify(ctx, inputs)
	if err != nil {
		return fmt.Errorf("batch classification failed: %w", err)
	}

	if err := classificationStore.SaveJSONL(ctx, results, true); err != nil {
		return fmt.Errorf("appending to ledger: %w", err)
	}

	parquetPath, err := classificationStore.ToParquet(ctx)
	if err != nil {
		return fmt.Errorf("rebuilding parquet snapshot: %w", err)
	}
	logger.Debug("rebuilt parquet snapshot at %s", parquetPath)

	if !classificationStore.RoundtripValidate(ctx, len(results)) {
		logger.Warn("parquet round-trip validation failed")
	}

	stats := classifierService.AggregateStatistics(results)

	run := driven.RunRecord{
		ID:             uuid.New().String(),
		DocumentCount:  len(results),
		MeanConfidence: meanConfidence(results),
		StartedAt:      started,
		FinishedAt:     time.Now(),
	}
	if err := runCatalog.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	if batchJSON {
		return printJSON(cmd, stats)
	}
	cmd.Printf("Classified %d documents in %s\n", len(results), run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	cmd.Printf("  Mean confidence: %.3f\n", run.MeanConfidence)
	cmd.Printf("  Snapshot: %s\n", parquetPath)
	return nil
}

// collectInputs builds classification inputs from the directory's text
// files, sorted by name so runs are reproducible.
func collectInputs(dir string) ([]domain.DocumentInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var inputs []domain.DocumentInput
	for _, entry := range entries {
		if entry.IsDir() || !batchExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		inputs = append(inputs, domain.DocumentInput{
			ID:      name,
			Title:   name,
			Content: string(data),
		})
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].ID < inputs[j].ID })
	return inputs, nil
}

func meanConfidence(results []domain.ClassifiedDocument) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Confidence
	}
	return sum / float64(len(results))
}
