package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/masaki-ito/weldreg/constants"
	"github.com/masaki-ito/weldreg/internal/common"
)

// PDFTextProvider reads the embedded text layer of a PDF with pdftotext.
// It is the cheap first attempt: scanned certificates usually have no
// text layer and fall through to OCR.
type PDFTextProvider struct {
	cfg    common.OCRConfig
	runner Runner
	logger *slog.Logger
}

func NewPDFTextProvider(cfg common.OCRConfig, logger *slog.Logger) *PDFTextProvider {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &PDFTextProvider{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

func (p *PDFTextProvider) Name() string { return "pdf-text" }

func (p *PDFTextProvider) Recognize(ctx context.Context, path string) ([]PageText, error) {
	if constants.MapExtToFormat(extOf(path)) != constants.PDF {
		return nil, nil
	}
	args := []string{"-layout", "-enc", "UTF-8"}
	if p.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprint(p.cfg.MaxPages))
	}
	args = append(args, path, "-")
	out, _, err := p.runner.Run(ctx, p.cfg.Pdftotext, args...)
	if err != nil {
		return nil, fmt.Errorf("pdftotext %s: %w", path, err)
	}
	pages := splitPages(string(out))
	p.logger.Debug("pdf text layer read", "path", path, "pages", len(pages))
	return pages, nil
}
