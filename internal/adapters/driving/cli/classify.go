package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

var (
	classifyID    string
	classifyTitle string
	classifyJSON  bool
	classifySave  bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify a single document",
	Long: `Classifies one document by type and technical domain.
Reads document text from the given file, or from stdin when the
argument is "-".`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyID, "id", "", "document id (defaults to the file name)")
	classifyCmd.Flags().StringVar(&classifyTitle, "title", "", "document title (defaults to the file name)")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output the result as JSON")
	classifyCmd.Flags().BoolVar(&classifySave, "save", false, "append the result to the classification ledger")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	content, name, err := readDocumentArg(cmd, args[0])
	if err != nil {
		return err
	}

	id := classifyID
	if id == "" {
		id = name
	}
	title := classifyTitle
	if title == "" {
		title = name
	}

	ctx := context.Background()
	doc, err := classifierService.ClassifyDocument(ctx, id, title, content)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if classifySave {
		if err := classificationStore.SaveJSONL(ctx, []domain.ClassifiedDocument{doc}, true); err != nil {
			return fmt.Errorf("saving to ledger: %w", err)
		}
	}

	if classifyJSON {
		return printJSON(cmd, doc)
	}
	printClassification(cmd, doc)
	return nil
}

// readDocumentArg reads the document text from a file, or stdin for "-".
// The returned name is the extension-less base name, or "stdin".
func readDocumentArg(cmd *cobra.Command, arg string) (content, name string, err error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", arg, err)
	}
	base := filepath.Base(arg)
	return string(data), strings.TrimSuffix(base, filepath.Ext(base)), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printClassification(cmd *cobra.Command, doc domain.ClassifiedDocument) {
	cmd.Printf("Document: %s\n", doc.DocumentID)
	cmd.Printf("  Type:       %s (%.1f%%)\n", doc.PredictedType, doc.TypeProbabilities[doc.PredictedType]*100)
	cmd.Printf("  Domain:     %s (%.1f%%)\n", doc.PredictedDomain, doc.DomainProbabilities[doc.PredictedDomain]*100)
	cmd.Printf("  Priority:   %.3f\n", doc.PriorityScore)
	cmd.Printf("  Quality:    %.3f\n", doc.QualityScore)
	cmd.Printf("  Confidence: %.3f\n", doc.Confidence)
}
