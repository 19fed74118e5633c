// Package extract decides which extraction backend to run, in what order,
// and when a result is good enough to stop trying alternatives.
package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obi-eke/pdfgrid/constants"
	"github.com/obi-eke/pdfgrid/internal/backend"
	"github.com/obi-eke/pdfgrid/internal/table"
)

// Request is one extraction invocation: the backend parameters plus the
// policy knobs that pick between backends.
type Request struct {
	backend.Request

	// Method is "tabula", "camelot", or "auto".
	Method string

	// TryBothFlavors runs camelot with both flavors unconditionally and
	// keeps whichever scores higher (ties favor stream).
	TryBothFlavors bool
}

// Outcome is the full result of one extraction attempt, tagged with the
// backend and flavor that actually produced it.
type Outcome struct {
	Tables  []table.Table
	Backend string
	Flavor  string // set only for camelot
}

// Empty reports whether no attempted backend found a table.
func (o Outcome) Empty() bool {
	return len(o.Tables) == 0
}

// narrowColumnThreshold marks a camelot stream result as suspiciously
// narrow: at most this many columns usually means the page collapsed into
// one unsegmented blob and the ruled-line flavor deserves a try.
const narrowColumnThreshold = 2

// Orchestrator runs the two-tier fallback policy over the backends.
// Availability is probed once at startup and passed in, so the policy is a
// pure function of its inputs and the backend results.
type Orchestrator struct {
	tabula  backend.Extractor
	camelot backend.Extractor
	caps    backend.Capabilities
	scorer  table.Scorer
	logger  *slog.Logger
}

func NewOrchestrator(tabula, camelot backend.Extractor, caps backend.Capabilities, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		tabula:  tabula,
		camelot: camelot,
		caps:    caps,
		scorer:  table.MaxColumnScore,
		logger:  logger,
	}
}

// SetScorer swaps the quality heuristic used to compare flavor attempts.
func (o *Orchestrator) SetScorer(s table.Scorer) {
	if s != nil {
		o.scorer = s
	}
}

// Extract runs the backend selection policy for one request. An empty
// outcome is not an error: it means no attempted backend found a table.
func (o *Orchestrator) Extract(ctx context.Context, req Request) (Outcome, error) {
	switch req.Method {
	case constants.BackendAuto, "":
		return o.extractAuto(ctx, req), nil
	case constants.BackendTabula:
		return o.extractTabula(ctx, req), nil
	case constants.BackendCamelot:
		return o.extractCamelot(ctx, req), nil
	default:
		return Outcome{}, fmt.Errorf("unknown method: %q", req.Method)
	}
}

// extractAuto tries tabula first, then camelot stream, then camelot
// lattice, stopping at the first non-empty result.
func (o *Orchestrator) extractAuto(ctx context.Context, req Request) Outcome {
	if o.caps.Tabula {
		tables := o.run(ctx, o.tabula, constants.BackendTabula, req.Request)
		if table.MaxColumns(tables) >= 1 {
			return Outcome{Tables: tables, Backend: constants.BackendTabula}
		}
	}

	if !o.caps.Camelot {
		return Outcome{}
	}

	o.logger.Info("tabula found no tables, trying camelot", "flavor", constants.FlavorStream)
	tables := o.run(ctx, o.camelot, constants.BackendCamelot, req.WithFlavor(constants.FlavorStream))
	if table.MaxColumns(tables) >= 1 {
		return Outcome{Tables: tables, Backend: constants.BackendCamelot, Flavor: constants.FlavorStream}
	}

	o.logger.Info("stream flavor found no tables, trying lattice")
	tables = o.run(ctx, o.camelot, constants.BackendCamelot, req.WithFlavor(constants.FlavorLattice))
	if table.MaxColumns(tables) >= 1 {
		return Outcome{Tables: tables, Backend: constants.BackendCamelot, Flavor: constants.FlavorLattice}
	}
	return Outcome{}
}

func (o *Orchestrator) extractTabula(ctx context.Context, req Request) Outcome {
	if !o.caps.Tabula {
		o.logger.Warn("tabula requested but unavailable")
		return Outcome{}
	}
	tables := o.run(ctx, o.tabula, constants.BackendTabula, req.Request)
	if table.MaxColumns(tables) < 1 {
		return Outcome{}
	}
	return Outcome{Tables: tables, Backend: constants.BackendTabula}
}

func (o *Orchestrator) extractCamelot(ctx context.Context, req Request) Outcome {
	if !o.caps.Camelot {
		o.logger.Warn("camelot requested but unavailable")
		return Outcome{}
	}

	if req.TryBothFlavors {
		return o.extractBothFlavors(ctx, req)
	}

	flavor := req.Flavor
	if flavor == "" {
		flavor = constants.FlavorStream
	}
	tables := o.run(ctx, o.camelot, constants.BackendCamelot, req.WithFlavor(flavor))
	outcome := Outcome{Tables: tables, Backend: constants.BackendCamelot, Flavor: flavor}

	// A stream result this narrow usually means the columns were never
	// split. One retry with lattice, kept only if it scores strictly
	// better.
	if flavor == constants.FlavorStream && len(tables) > 0 && o.scorer(tables) <= narrowColumnThreshold {
		o.logger.Info("stream result suspiciously narrow, trying lattice",
			"stream_score", o.scorer(tables),
		)
		latticeTables := o.run(ctx, o.camelot, constants.BackendCamelot, req.WithFlavor(constants.FlavorLattice))
		if len(latticeTables) > 0 && o.scorer(latticeTables) > o.scorer(tables) {
			o.logger.Info("lattice scored better, using lattice results",
				"stream_score", o.scorer(tables),
				"lattice_score", o.scorer(latticeTables),
			)
			outcome = Outcome{Tables: latticeTables, Backend: constants.BackendCamelot, Flavor: constants.FlavorLattice}
		}
	}

	if table.MaxColumns(outcome.Tables) < 1 {
		return Outcome{}
	}
	return outcome
}

// extractBothFlavors runs both camelot flavors unconditionally and keeps
// the higher-scoring outcome; ties favor stream.
func (o *Orchestrator) extractBothFlavors(ctx context.Context, req Request) Outcome {
	streamTables := o.run(ctx, o.camelot, constants.BackendCamelot, req.WithFlavor(constants.FlavorStream))
	latticeTables := o.run(ctx, o.camelot, constants.BackendCamelot, req.WithFlavor(constants.FlavorLattice))

	streamScore := o.scorer(streamTables)
	latticeScore := o.scorer(latticeTables)
	o.logger.Info("flavor comparison",
		"stream_score", streamScore,
		"lattice_score", latticeScore,
	)

	tables, flavor := streamTables, constants.FlavorStream
	if latticeScore > streamScore {
		tables, flavor = latticeTables, constants.FlavorLattice
	}
	if table.MaxColumns(tables) < 1 {
		return Outcome{}
	}
	return Outcome{Tables: tables, Backend: constants.BackendCamelot, Flavor: flavor}
}

// run invokes one backend and converts any runtime failure into zero
// tables; the fallback chain treats both identically.
func (o *Orchestrator) run(ctx context.Context, ext backend.Extractor, name string, req backend.Request) []table.Table {
	tables, err := ext.Extract(ctx, req)
	if err != nil {
		o.logger.Warn("backend failed, treating as zero tables",
			"backend", name,
			"flavor", req.Flavor,
			"error", err,
		)
		return nil
	}
	return tables
}
