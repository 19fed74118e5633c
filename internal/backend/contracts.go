package backend

import (
	"context"

	"github.com/obi-eke/pdfgrid/internal/table"
)

// Extractor is the uniform contract both backends satisfy: file -> tables.
// A runtime failure of the underlying service is reported as an error
// wrapping common.ErrExtractionFailed; callers decide whether that is fatal.
type Extractor interface {
	Extract(ctx context.Context, req Request) ([]table.Table, error)
}

// Request carries the per-invocation extraction parameters. It is built
// once by the CLI and read-only from there on.
type Request struct {
	Path  string
	Pages PageSelector

	// Camelot tuning. Flavor is "stream" or "lattice"; the tabula adapter
	// ignores all three. Nil tolerances mean "use the flavor's default".
	Flavor string
	RowTol *int
	ColTol *int
}

// WithFlavor returns a copy of the request with the flavor swapped,
// everything else identical.
func (r Request) WithFlavor(flavor string) Request {
	r.Flavor = flavor
	return r
}

// Capabilities records which backends are usable on this host. Probed once
// at startup and handed to the orchestrator, so the fallback policy itself
// never touches the environment.
type Capabilities struct {
	Tabula  bool
	Camelot bool
}
