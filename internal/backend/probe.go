package backend

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/obi-eke/pdfgrid/internal/common"
)

// Probe checks once, at startup, which backends this host can actually run:
// tabula needs the jar on disk and a java binary, camelot needs a python
// interpreter that can import the library. The result feeds the fallback
// policy so it never has to touch the environment itself.
func Probe(ctx context.Context, tabula common.TabulaConfig, camelot common.CamelotConfig, logger *slog.Logger) Capabilities {
	if logger == nil {
		logger = slog.Default()
	}

	caps := Capabilities{
		Tabula:  tabulaUsable(tabula, exec.LookPath),
		Camelot: camelotUsable(ctx, camelot, execRunner{}),
	}

	if !caps.Tabula {
		logger.Warn("tabula backend unavailable", "java", tabula.Java, "jar", tabula.JarPath)
	}
	if !caps.Camelot {
		logger.Warn("camelot backend unavailable", "python", camelot.Python)
	}
	return caps
}

func camelotUsable(ctx context.Context, cfg common.CamelotConfig, runner Runner) bool {
	python := cfg.Python
	if python == "" {
		python = "python3"
	}
	if _, err := exec.LookPath(python); err != nil {
		return false
	}
	_, _, err := runner.Run(ctx, python, "-c", "import camelot")
	return err == nil
}
