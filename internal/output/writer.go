package output

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/obi-eke/pdfgrid/internal/common"
	"github.com/obi-eke/pdfgrid/internal/table"
)

// Writer persists tables into the output directory, creating it on first
// use. Rows go out exactly as extracted: no index column, header from row 0.
type Writer struct {
	outputDir string
	logger    *slog.Logger
}

func NewWriter(outputDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{outputDir: outputDir, logger: logger}
}

// SaveAll writes one CSV per table, in order, and returns the written paths.
// An explicit destination is honored for a single table but rehomed into
// the output directory. A failed write stops the run; files written before
// it stay on disk.
func (w *Writer) SaveAll(tables []table.Table, naming Naming, explicitOut string) ([]string, error) {
	if len(tables) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", common.ErrWriteError, w.outputDir, err)
	}

	start := time.Now()
	var saved []string
	for i, t := range tables {
		name := naming.Filename(i+1, len(tables))
		if explicitOut != "" && len(tables) == 1 {
			name = filepath.Base(explicitOut)
		}
		dest := filepath.Join(w.outputDir, name)
		if err := writeCSV(t, dest); err != nil {
			return saved, err
		}
		saved = append(saved, dest)
		w.logger.Info("table saved", "path", dest, "rows", t.RowCount(), "cols", t.ColumnCount())
	}

	w.logger.Info("save.ok",
		"files", len(saved),
		"dir", w.outputDir,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return saved, nil
}

func writeCSV(t table.Table, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrWriteError, dest, err)
	}

	cw := csv.NewWriter(f)
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("%w: %s: %v", common.ErrWriteError, dest, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %v", common.ErrWriteError, dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrWriteError, dest, err)
	}
	return nil
}
