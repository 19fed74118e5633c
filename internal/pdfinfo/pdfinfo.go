// Package pdfinfo runs a cheap preflight over the resolved input file
// before any backend is spawned: is it a readable PDF, and do explicitly
// selected pages actually exist?
package pdfinfo

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/obi-eke/pdfgrid/internal/backend"
	"github.com/obi-eke/pdfgrid/internal/common"
)

// PageCount opens the PDF and returns its page count.
func PageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return r.NumPage(), nil
}

// CheckSelection verifies an explicit page selection fits within pageCount.
func CheckSelection(sel backend.PageSelector, pageCount int) error {
	if sel.All || pageCount <= 0 {
		return nil
	}
	if max := sel.Max(); max > pageCount {
		return common.NewAppError("PAGES_OUT_OF_RANGE",
			fmt.Sprintf("page %d selected but document has %d pages", max, pageCount),
			common.ErrInvalidInput)
	}
	return nil
}
