package jsonl

import (
	"context"
	"fmt"
	"os"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

// parquetParallelism is the reader/writer goroutine count; the snapshot is
// small enough that more buys nothing.
const parquetParallelism = 2

// ToParquet rebuilds the columnar snapshot from the full JSONL ledger,
// flattening the probability maps into per-key columns, and returns the
// snapshot path. Converting before any ledger exists is a sequencing mistake
// and returns domain.ErrNoLedger.
func (s *Store) ToParquet(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := os.Stat(s.ledgerPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("converting %s: %w", s.ledgerPath, domain.ErrNoLedger)
		}
		return "", fmt.Errorf("checking ledger: %w", err)
	}

	docs, err := s.LoadJSONL(ctx)
	if err != nil {
		return "", err
	}

	fw, err := local.NewLocalFileWriter(s.parquetPath)
	if err != nil {
		return "", fmt.Errorf("creating parquet file: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(domain.ClassificationRow), parquetParallelism)
	if err != nil {
		fw.Close()
		return "", fmt.Errorf("creating parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, doc := range docs {
		if err := pw.Write(domain.NewClassificationRow(doc)); err != nil {
			pw.WriteStop()
			fw.Close()
			return "", fmt.Errorf("writing row %s: %w", doc.DocumentID, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return "", fmt.Errorf("finalising parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("closing parquet file: %w", err)
	}

	return s.parquetPath, nil
}

// LoadParquet reads the columnar snapshot back as flat rows.
func (s *Store) LoadParquet(ctx context.Context) ([]domain.ClassificationRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fr, err := local.NewLocalFileReader(s.parquetPath)
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(domain.ClassificationRow), parquetParallelism)
	if err != nil {
		return nil, fmt.Errorf("creating parquet reader: %w", err)
	}
	defer pr.ReadStop()

	rows := make([]domain.ClassificationRow, pr.GetNumRows())
	if len(rows) == 0 {
		return rows, nil
	}
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("reading parquet rows: %w", err)
	}

	return rows, nil
}
