package pdfinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-eke/pdfgrid/internal/backend"
	"github.com/obi-eke/pdfgrid/internal/common"
)

// minimalPDF builds a valid empty document with the given page count,
// computing the xref offsets as it goes.
func minimalPDF(pages int) []byte {
	var b strings.Builder
	offsets := make([]int, 0, pages+3)

	write := func(s string) {
		b.WriteString(s)
	}
	object := func(s string) {
		offsets = append(offsets, b.Len())
		write(s)
	}

	write("%PDF-1.4\n")
	object("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, pages)
	for i := 0; i < pages; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	object(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		object(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", i+3))
	}

	xrefPos := b.Len()
	write(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	write("0000000000 65535 f \n")
	for _, off := range offsets {
		write(fmt.Sprintf("%010d 00000 n \n", off))
	}
	write(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefPos))
	return []byte(b.String())
}

func TestPageCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, minimalPDF(3), 0o644))

	n, err := PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPageCountNotAPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	_, err := PageCount(path)
	assert.Error(t, err)
}

func TestCheckSelection(t *testing.T) {
	all := backend.AllPages()
	assert.NoError(t, CheckSelection(all, 2))

	sel := backend.PageSelector{Pages: []int{1, 2}}
	assert.NoError(t, CheckSelection(sel, 2))
	assert.NoError(t, CheckSelection(sel, 0), "unknown page count skips the check")

	bad := backend.PageSelector{Pages: []int{5}}
	err := CheckSelection(bad, 2)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
