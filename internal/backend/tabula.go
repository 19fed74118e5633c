package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/obi-eke/pdfgrid/internal/common"
	"github.com/obi-eke/pdfgrid/internal/table"
)

// tabulaSchema describes the JSON tabula-java emits with --format JSON:
// an array of tables, each with a data grid of text cells. The payload is
// validated before decoding so a jar/version mismatch fails loudly instead
// of producing silently empty tables.
const tabulaSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["data"],
		"properties": {
			"extraction_method": {"type": "string"},
			"data": {
				"type": "array",
				"items": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["text"],
						"properties": {"text": {"type": "string"}}
					}
				}
			}
		}
	}
}`

var tabulaPayload = jsonschema.MustCompileString("tabula.json", tabulaSchema)

type tabulaTable struct {
	ExtractionMethod string `json:"extraction_method"`
	Data             [][]struct {
		Text string `json:"text"`
	} `json:"data"`
}

// Tabula wraps the tabula-java jar. Every invocation runs guess mode so
// multiple tables per page are detected, and the first data row doubles as
// the header row downstream.
type Tabula struct {
	cfg    common.TabulaConfig
	runner Runner
	logger *slog.Logger
}

func NewTabula(cfg common.TabulaConfig, logger *slog.Logger) *Tabula {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Java == "" {
		cfg.Java = "java"
	}
	if cfg.JarPath == "" {
		cfg.JarPath = "tabula.jar"
	}
	return &Tabula{cfg: cfg, runner: execRunner{}, logger: logger}
}

func (t *Tabula) Extract(ctx context.Context, req Request) ([]table.Table, error) {
	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	args := []string{
		"-jar", t.cfg.JarPath,
		"--format", "JSON",
		"--guess",
		"--pages", req.Pages.String(),
		req.Path,
	}
	out, _, err := t.runner.Run(ctx, t.cfg.Java, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: tabula: %v", common.ErrExtractionFailed, err)
	}

	tables, err := decodeTabulaJSON(out)
	if err != nil {
		return nil, fmt.Errorf("%w: tabula: %v", common.ErrExtractionFailed, err)
	}

	t.logger.Info("tabula.extract.ok",
		"path", req.Path,
		"pages", req.Pages.String(),
		"tables", len(tables),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return tables, nil
}

func decodeTabulaJSON(out []byte) ([]table.Table, error) {
	var doc any
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	if err := tabulaPayload.Validate(doc); err != nil {
		return nil, fmt.Errorf("unexpected output shape: %w", err)
	}

	var raw []tabulaTable
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}

	tables := make([]table.Table, 0, len(raw))
	for _, rt := range raw {
		rows := make([][]string, 0, len(rt.Data))
		for _, cells := range rt.Data {
			row := make([]string, len(cells))
			for i, c := range cells {
				row[i] = c.Text
			}
			rows = append(rows, row)
		}
		tables = append(tables, table.Table{Rows: rows})
	}
	return tables, nil
}

// tabulaUsable reports whether the jar exists and the java binary resolves.
func tabulaUsable(cfg common.TabulaConfig, lookPath func(string) (string, error)) bool {
	if _, err := lookPath(cfg.Java); err != nil {
		return false
	}
	info, err := os.Stat(cfg.JarPath)
	return err == nil && !info.IsDir()
}
