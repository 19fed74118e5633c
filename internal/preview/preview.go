// Package preview renders extracted tables to the terminal so the user can
// eyeball the detection before anything is written.
package preview

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/obi-eke/pdfgrid/internal/table"
)

// maxRows is how many data rows each preview shows.
const maxRows = 5

// Previewer renders table summaries and asks for confirmation. Reads from
// `in`, writes to `out`; both injectable for tests.
type Previewer struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Previewer {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Previewer{in: bufio.NewReader(in), out: out}
}

// Render prints a shape summary and the first rows of every table.
func (p *Previewer) Render(tables []table.Table) {
	for i, t := range tables {
		fmt.Fprintf(p.out, "\n--- Table %d Preview ---\n", i+1)
		if t.Confidence > 0 {
			fmt.Fprintf(p.out, "Shape: %d rows x %d columns (accuracy: %.1f%%)\n", t.RowCount(), t.ColumnCount(), t.Confidence)
		} else {
			fmt.Fprintf(p.out, "Shape: %d rows x %d columns\n", t.RowCount(), t.ColumnCount())
		}
		if t.RowCount() == 0 {
			continue
		}

		tw := tablewriter.NewWriter(p.out)
		tw.SetHeader(t.Rows[0])
		body := t.Rows[1:]
		shown := body
		if len(shown) > maxRows {
			shown = shown[:maxRows]
		}
		for _, row := range shown {
			tw.Append(row)
		}
		tw.Render()
		if hidden := len(body) - len(shown); hidden > 0 {
			fmt.Fprintf(p.out, "... (%d more rows)\n", hidden)
		}
	}
}

// Confirm prints the prompt and returns true for a "y"/"yes" answer.
func (p *Previewer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "\n%s (y/n): ", prompt)
	line, _ := p.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
