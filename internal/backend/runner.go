package backend

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// stderrLogCap bounds how much backend stderr lands in the log; tabula
// stack traces and camelot warnings can run long.
const stderrLogCap = 4 << 10

// Runner lets us stub the external extractor processes in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()

	if err != nil {
		stderr := errb.String()
		if len(stderr) > stderrLogCap {
			stderr = stderr[:stderrLogCap] + "...(truncated)"
		}
		slog.Error("backend process failed",
			"cmd", name,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", stderr,
		)
	} else {
		slog.Debug("backend process ok",
			"cmd", name,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"stdout_bytes", out.Len(),
		)
	}

	return out.Bytes(), errb.Bytes(), err
}
