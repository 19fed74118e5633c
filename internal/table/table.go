// Package table holds the tabular result model shared by the extraction
// backends, the orchestrator, and the writers.
package table

// Table is one extracted table: ordered rows of ordered cell text.
// Row 0 is treated as the header row by the writers. A Table is never
// mutated after the backend adapter that produced it returns.
type Table struct {
	Rows [][]string

	// Confidence is the backend-reported detection accuracy in 0..100,
	// or 0 when the backend does not report one.
	Confidence float64
}

// RowCount returns the number of rows, header included.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the width of the widest row.
func (t Table) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Empty reports whether the table carries no cells at all.
func (t Table) Empty() bool {
	return t.ColumnCount() == 0
}

// MaxColumns returns the largest column count across tables, 0 for none.
func MaxColumns(tables []Table) int {
	max := 0
	for _, t := range tables {
		if c := t.ColumnCount(); c > max {
			max = c
		}
	}
	return max
}
