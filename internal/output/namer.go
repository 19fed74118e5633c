// Package output computes destination filenames and persists extracted
// tables as CSV (or a single XLSX workbook).
package output

import "fmt"

// DefaultPrefix is the infix for the default multi-table pattern.
const DefaultPrefix = "table"

// DefaultCustomSuffix is the literal used by the custom pattern when no
// suffix is supplied. Inherited from the tool's original use case.
const DefaultCustomSuffix = "appropriations-donations"

// Naming carries the inputs needed to derive output filenames. Filename is
// a pure function of this struct plus (ordinal, total), so the same inputs
// always yield the same name.
type Naming struct {
	Stem   string // pdf base name without extension
	Prefix string // multi-table infix; empty means DefaultPrefix
	Custom bool   // use the custom "<stem>--<suffix>_table<n>" pattern
	Suffix string // custom-pattern suffix; empty means DefaultCustomSuffix
}

// Filename returns the CSV filename for the table at 1-based ordinal out of
// total tables.
//
//	default, single table:    <stem>.csv
//	default, multiple tables: <stem>_<prefix>_<ordinal>.csv
//	custom:                   <stem>--<suffix>_table<ordinal>.csv
func (n Naming) Filename(ordinal, total int) string {
	if n.Custom {
		suffix := n.Suffix
		if suffix == "" {
			suffix = DefaultCustomSuffix
		}
		return fmt.Sprintf("%s--%s_table%d.csv", n.Stem, suffix, ordinal)
	}
	if total == 1 {
		return n.Stem + ".csv"
	}
	prefix := n.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%s_%d.csv", n.Stem, prefix, ordinal)
}

// WorkbookFilename returns the single-workbook name used for XLSX output.
func (n Naming) WorkbookFilename() string {
	if n.Custom {
		suffix := n.Suffix
		if suffix == "" {
			suffix = DefaultCustomSuffix
		}
		return fmt.Sprintf("%s--%s.xlsx", n.Stem, suffix)
	}
	return n.Stem + ".xlsx"
}
