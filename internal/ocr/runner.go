package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// Runner abstracts external command execution so provider tests can run
// without poppler or tesseract installed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// stderrLogCap bounds how much tool stderr ends up in a log record.
const stderrLogCap = 4 << 10

// execRunner shells out through os/exec, logging each invocation with
// the owning provider's logger.
type execRunner struct {
	logger *slog.Logger
}

func newExecRunner(logger *slog.Logger) execRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return execRunner{logger: logger}
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	if err != nil {
		r.logger.Error("external command failed",
			"cmd", name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", clip(stderr.String(), stderrLogCap),
		)
	} else {
		r.logger.Debug("external command ok",
			"cmd", name,
			"duration_ms", time.Since(start).Milliseconds(),
			"stdout_bytes", stdout.Len(),
		)
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
