package ocr

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masaki-ito/weldreg/internal/common"
)

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))

	long := strings.Repeat("x", stderrLogCap+1)
	clipped := clip(long, stderrLogCap)
	assert.Len(t, clipped, stderrLogCap+len("...(truncated)"))
	assert.True(t, strings.HasSuffix(clipped, "...(truncated)"))
}

func TestNewExecRunnerDefaultsLogger(t *testing.T) {
	r := newExecRunner(nil)
	require.NotNil(t, r.logger)
}

func TestProvidersPassLoggerToRunner(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pdf := NewPDFTextProvider(common.OCRConfig{}, logger)
	r, ok := pdf.runner.(execRunner)
	require.True(t, ok)
	assert.Same(t, logger, r.logger)

	tess := NewTesseractProvider(common.OCRConfig{}, logger)
	r, ok = tess.runner.(execRunner)
	require.True(t, ok)
	assert.Same(t, logger, r.logger)
}
