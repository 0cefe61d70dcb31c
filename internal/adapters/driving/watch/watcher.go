// Package watch ingests documents dropped into an inbox directory: each new
// text file is classified and appended to the classification ledger.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
	"github.com/doclens/doclens-cli/internal/core/ports/driving"
	"github.com/doclens/doclens-cli/internal/logger"
)

// watchedExtensions are the file types ingested from the inbox. Everything
// else (partial downloads, editor swap files) is ignored.
var watchedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Watcher classifies text files as they appear in an inbox directory.
type Watcher struct {
	classifier driving.DocumentClassifier
	store      driven.ClassificationStore
	dir        string
}

// New creates an inbox watcher over dir.
func New(classifier driving.DocumentClassifier, store driven.ClassificationStore, dir string) *Watcher {
	return &Watcher{
		classifier: classifier,
		store:      store,
		dir:        dir,
	}
}

// Run watches the inbox until the context is cancelled. Per-file failures
// are logged and skipped; only watcher-level failures end the loop.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching inbox %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !watchedExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			if err := w.IngestFile(ctx, event.Name); err != nil {
				logger.Warn("ingesting %s: %v", event.Name, err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// IngestFile classifies one file and appends the result to the ledger. The
// file's base name (without extension) becomes the document id and title.
func (w *Watcher) IngestFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := w.classifier.ClassifyDocument(ctx, name, name, string(content))
	if err != nil {
		return fmt.Errorf("classifying %s: %w", name, err)
	}

	if err := w.store.SaveJSONL(ctx, []domain.ClassifiedDocument{doc}, true); err != nil {
		return fmt.Errorf("appending %s to ledger: %w", name, err)
	}

	logger.Info("ingested %s: type=%s domain=%s confidence=%.3f",
		name, doc.PredictedType, doc.PredictedDomain, doc.Confidence)
	return nil
}
