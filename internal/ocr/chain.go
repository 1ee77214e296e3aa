package ocr

import (
	"context"
	"log/slog"
)

// Chain tries providers in order and keeps the first one that yields
// non-blank text. A provider error is logged and skipped, not fatal: an
// unreadable document must degrade to zero pages so a batch can carry on.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{providers: providers, logger: logger}
}

// Recognize returns the winning provider's pages and its name as the
// origin tag. An exhausted chain returns no pages and no error.
func (c *Chain) Recognize(ctx context.Context, path string) ([]PageText, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	for _, p := range c.providers {
		pages, err := p.Recognize(ctx, path)
		if err != nil {
			c.logger.Warn("provider failed, trying next",
				"provider", p.Name(), "path", path, "error", err)
			continue
		}
		if hasText(pages) {
			c.logger.Debug("provider selected", "provider", p.Name(), "path", path, "pages", len(pages))
			return pages, p.Name(), nil
		}
	}
	c.logger.Warn("no provider produced text", "path", path)
	return nil, "", nil
}
