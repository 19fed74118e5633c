package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/obi-eke/pdfgrid/internal/common"
	"github.com/obi-eke/pdfgrid/internal/table"
)

// SaveWorkbook writes every table into one XLSX workbook, one sheet per
// table ("table1", "table2", ...), and returns the single written path.
func (w *Writer) SaveWorkbook(tables []table.Table, naming Naming) ([]string, error) {
	if len(tables) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", common.ErrWriteError, w.outputDir, err)
	}

	start := time.Now()
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("closing workbook", "error", err)
		}
	}()

	for i, t := range tables {
		sheet := fmt.Sprintf("table%d", i+1)
		if i == 0 {
			// rename the default sheet instead of leaving it dangling
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("%w: sheet %s: %v", common.ErrWriteError, sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("%w: sheet %s: %v", common.ErrWriteError, sheet, err)
			}
		}
		if err := fillSheet(f, sheet, t); err != nil {
			return nil, err
		}
	}

	dest := filepath.Join(w.outputDir, naming.WorkbookFilename())
	if err := f.SaveAs(dest); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrWriteError, dest, err)
	}

	w.logger.Info("workbook saved",
		"path", dest,
		"sheets", len(tables),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return []string{dest}, nil
}

func fillSheet(f *excelize.File, sheet string, t table.Table) error {
	for r, row := range t.Rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("%w: %v", common.ErrWriteError, err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("%w: %v", common.ErrWriteError, err)
			}
		}
	}
	return nil
}
