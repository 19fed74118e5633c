package backend

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/obi-eke/pdfgrid/constants"
	"github.com/obi-eke/pdfgrid/internal/common"
	"github.com/obi-eke/pdfgrid/internal/table"
)

//go:embed camelot_bridge.py
var camelotBridge []byte

type camelotPayload struct {
	Tables []struct {
		Rows     [][]string `json:"rows"`
		Accuracy float64    `json:"accuracy"`
	} `json:"tables"`
}

// Camelot wraps the Python camelot library through a small bridge script.
// Flavor defaults (stream: row_tol=2, column_tol=0; lattice: line_scale=15,
// no background processing; both: keep cell text intact, strip embedded
// newlines) live in the bridge; caller-supplied tolerances override them
// field by field.
type Camelot struct {
	cfg    common.CamelotConfig
	runner Runner
	logger *slog.Logger
}

func NewCamelot(cfg common.CamelotConfig, logger *slog.Logger) *Camelot {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	return &Camelot{cfg: cfg, runner: execRunner{}, logger: logger}
}

func (c *Camelot) Extract(ctx context.Context, req Request) ([]table.Table, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	bridge, cleanup, err := materializeBridge()
	if err != nil {
		return nil, fmt.Errorf("%w: camelot: %v", common.ErrExtractionFailed, err)
	}
	defer cleanup()

	flavor := req.Flavor
	if flavor == "" {
		flavor = constants.FlavorStream
	}

	start := time.Now()
	args := camelotArgs(bridge, req, flavor)
	out, _, err := c.runner.Run(ctx, c.cfg.Python, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: camelot (%s): %v", common.ErrExtractionFailed, flavor, err)
	}

	var payload camelotPayload
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf("%w: camelot (%s): decode output: %v", common.ErrExtractionFailed, flavor, err)
	}

	tables := make([]table.Table, 0, len(payload.Tables))
	for _, pt := range payload.Tables {
		tables = append(tables, table.Table{Rows: pt.Rows, Confidence: pt.Accuracy})
	}

	c.logger.Info("camelot.extract.ok",
		"path", req.Path,
		"flavor", flavor,
		"pages", req.Pages.String(),
		"tables", len(tables),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return tables, nil
}

func camelotArgs(bridge string, req Request, flavor string) []string {
	args := []string{
		bridge,
		req.Path,
		"--flavor", flavor,
		"--pages", req.Pages.String(),
	}
	if req.RowTol != nil {
		args = append(args, "--row-tol", strconv.Itoa(*req.RowTol))
	}
	if req.ColTol != nil {
		args = append(args, "--column-tol", strconv.Itoa(*req.ColTol))
	}
	return args
}

// materializeBridge writes the embedded bridge script to a temp file so the
// interpreter can run it. The caller removes it when done.
func materializeBridge() (string, func(), error) {
	f, err := os.CreateTemp("", "pdfgrid-bridge-*.py")
	if err != nil {
		return "", nil, err
	}
	if _, err := f.Write(camelotBridge); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}
