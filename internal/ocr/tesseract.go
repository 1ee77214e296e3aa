package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/masaki-ito/weldreg/constants"
	"github.com/masaki-ito/weldreg/internal/common"
)

// TesseractProvider rasterizes PDFs with pdftoppm and recognizes pages
// with tesseract. Images go straight to tesseract.
type TesseractProvider struct {
	cfg    common.OCRConfig
	runner Runner
	logger *slog.Logger
}

func NewTesseractProvider(cfg common.OCRConfig, logger *slog.Logger) *TesseractProvider {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "jpn+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &TesseractProvider{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

func (p *TesseractProvider) Name() string { return "tesseract" }

func (p *TesseractProvider) Recognize(ctx context.Context, path string) ([]PageText, error) {
	switch constants.MapExtToFormat(extOf(path)) {
	case constants.PDF:
		return p.recognizePDF(ctx, path)
	case constants.IMAGE:
		text, err := p.ocrOne(ctx, path)
		if err != nil {
			return nil, err
		}
		return splitPages(text), nil
	default:
		return nil, nil
	}
}

func (p *TesseractProvider) recognizePDF(ctx context.Context, path string) ([]PageText, error) {
	tmpDir, err := os.MkdirTemp("", "weldreg-ocr-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	args := []string{"-r", fmt.Sprint(p.cfg.DPI), "-png"}
	if p.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprint(p.cfg.MaxPages))
	}
	args = append(args, path, filepath.Join(tmpDir, "page"))
	if _, _, err := p.runner.Run(ctx, p.cfg.Pdftoppm, args...); err != nil {
		return nil, fmt.Errorf("pdftoppm %s: %w", path, err)
	}

	images, err := filepath.Glob(filepath.Join(tmpDir, "page*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(images) // pdftoppm zero-pads page numbers

	var pages []PageText
	for i, img := range images {
		text, err := p.ocrOne(ctx, img)
		if err != nil {
			p.logger.Warn("page ocr failed", "path", path, "page", i+1, "error", err)
			continue
		}
		lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
		pages = append(pages, PageText{Number: i + 1, Lines: lines})
	}
	p.logger.Debug("pdf ocr done", "path", path, "pages", len(pages))
	return pages, nil
}

func (p *TesseractProvider) ocrOne(ctx context.Context, img string) (string, error) {
	out, _, err := p.runner.Run(ctx, p.cfg.Tesseract, img, "stdout", "-l", p.cfg.Language)
	if err != nil {
		return "", fmt.Errorf("tesseract %s: %w", img, err)
	}
	return string(out), nil
}

func extOf(path string) string {
	return constants.NormalizeExt(filepath.Ext(path))
}
