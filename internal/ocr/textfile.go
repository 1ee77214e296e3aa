package ocr

import (
	"context"
	"os"

	"github.com/masaki-ito/weldreg/constants"
)

// TextFileProvider serves pre-recognized .txt dumps as a single page per
// form feed. Useful for re-running extraction over archived OCR output
// without the binaries installed.
type TextFileProvider struct{}

func (TextFileProvider) Name() string { return "text-file" }

func (TextFileProvider) Recognize(ctx context.Context, path string) ([]PageText, error) {
	if constants.MapExtToFormat(extOf(path)) != constants.TXT {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitPages(string(raw)), nil
}
