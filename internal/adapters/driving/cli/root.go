// Package cli implements the doclens command-line interface: the driving
// adapter that wires config, stores and core services into cobra commands.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/doclens/doclens-cli/internal/adapters/driven/config/file"
	"github.com/doclens/doclens-cli/internal/adapters/driven/storage/jsonl"
	"github.com/doclens/doclens-cli/internal/adapters/driven/storage/knowledgefs"
	"github.com/doclens/doclens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
	"github.com/doclens/doclens-cli/internal/core/ports/driving"
	"github.com/doclens/doclens-cli/internal/core/services"
	"github.com/doclens/doclens-cli/internal/logger"
	"github.com/doclens/doclens-cli/internal/miners/entity"
	"github.com/doclens/doclens-cli/internal/miners/process"
	"github.com/doclens/doclens-cli/internal/miners/relation"
	"github.com/doclens/doclens-cli/internal/miners/spec"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	flagVerbose   bool
	flagDataDir   string
	flagConfigDir string
)

// Wired services, populated by initServices before any command runs.
var (
	configStore         driven.ConfigStore
	classificationStore *jsonl.Store
	knowledgeStore      *knowledgefs.Store
	runCatalog          driven.RunCatalog
	classifierService   driving.DocumentClassifier
	knowledgeService    driving.KnowledgeExtractor
)

var rootCmd = &cobra.Command{
	Use:   "doclens",
	Short: "Classify technical documents and mine their knowledge",
	Long: `doclens is a deterministic technical-document intelligence engine.
It classifies plain document text by type and technical domain with
calibrated confidence, and mines entities, relations, specification
parameters and process steps into a persisted knowledge graph.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if runCatalog != nil {
			_ = runCatalog.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "storage root (default ~/.doclens/data)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.doclens)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires adapters and core services. The data directory is
// resolved flag > config file > default; every store receives it explicitly
// so tests can point commands at temporary directories.
func initServices() error {
	var err error
	configStore, err = configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = configStore.GetString(configfile.KeyDataDir)
	}

	classificationStore, err = jsonl.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening classification store: %w", err)
	}

	knowledgeDir := ""
	if dataDir != "" {
		knowledgeDir = filepath.Join(dataDir, "knowledge")
	}
	knowledgeStore, err = knowledgefs.NewStore(knowledgeDir)
	if err != nil {
		return fmt.Errorf("opening knowledge store: %w", err)
	}

	runCatalog, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening run catalog: %w", err)
	}

	var classifierOpts []services.ClassifierOption
	if t := configStore.GetFloat(configfile.KeyTemperature); t > 0 {
		classifierOpts = append(classifierOpts,
			services.WithCalibrator(services.NewConfidenceCalibrator(services.WithTemperature(t))))
	}
	if w := configStore.GetInt(configfile.KeyWorkers); w > 0 {
		classifierOpts = append(classifierOpts, services.WithBatchWorkers(w))
	}
	classifierService = services.NewClassifierService(classifierOpts...)

	knowledgeService = services.NewKnowledgeService(
		entity.New(),
		relation.New(),
		spec.New(),
		process.New(),
		knowledgeStore,
	)

	return nil
}
