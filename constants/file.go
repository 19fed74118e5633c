package constants

import "strings"

// PDFExtension is the only input extension the locator matches.
const PDFExtension = "pdf"

// Default folder layout: drop PDFs in one, collect CSVs from the other.
const (
	DefaultInputDir  = "pdf_input"
	DefaultOutputDir = "csv_output"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether the filename carries the PDF extension.
func IsPDF(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	return NormalizeExt(name[idx:]) == PDFExtension
}
