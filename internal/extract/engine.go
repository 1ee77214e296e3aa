package extract

import (
	"log/slog"

	"github.com/masaki-ito/weldreg/internal/common"
)

// Options configures an Engine. A zero MinConfidence and a nil Labels
// fall back to the package defaults. WindowSize is taken as given:
// 0 is the legal same-line-only window, so the operational default of 1
// comes from configuration, not from here. Every recognized option is
// listed; there is no loose option bag.
type Options struct {
	// WindowSize is the ±N line range searched for supporting labels.
	WindowSize int
	// IncludeRejected controls whether audit output carries rejected
	// candidates.
	IncludeRejected bool
	// MinConfidence is the acceptance threshold; 0 means the default.
	MinConfidence float64
	// Labels overrides the built-in label table.
	Labels *LabelTable
}

func (o *Options) normalize() error {
	v := common.NewValidator()
	v.Field("window_size", o.WindowSize, common.NonNegative)
	v.Field("min_confidence", o.MinConfidence, common.UnitInterval)
	if v.HasErrors() {
		return common.NewAppError("CONFIG_ERROR", v.Error().Error(), common.ErrInvalidInput)
	}
	if o.MinConfidence == 0 {
		o.MinConfidence = DefaultMinConfidence
	}
	if o.Labels == nil {
		o.Labels = DefaultLabelTable()
	}
	return nil
}

// Engine runs the per-document extraction pipeline: normalize, match
// labels, extract candidate tokens, veto dates, score. It holds no
// mutable state between documents, so one Engine may serve concurrent
// callers processing distinct documents.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

func NewEngine(opts Options, logger *slog.Logger) (*Engine, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{opts: opts, logger: logger}, nil
}

// Options returns the engine's effective (defaulted) options.
func (e *Engine) Options() Options { return e.opts }

// ProcessDocument extracts and scores every candidate in one document.
// Content never causes an error: empty lines and pages simply yield no
// candidates. The returned slice includes rejected candidates; audit and
// merge decide what to surface.
func (e *Engine) ProcessDocument(doc *Document) []Candidate {
	var out []Candidate
	for _, page := range doc.Pages {
		out = append(out, e.processPage(doc, page)...)
	}
	e.logger.Debug("document processed",
		"source", doc.Source,
		"origin", doc.Origin,
		"pages", len(doc.Pages),
		"candidates", len(out),
	)
	return out
}

func (e *Engine) processPage(doc *Document, page Page) []Candidate {
	var hits []LabelHit
	for _, line := range page.Lines {
		hits = append(hits, e.opts.Labels.FindLabels(line)...)
	}

	var out []Candidate
	for _, line := range page.Lines {
		for _, tok := range extractTokens(line.Norm) {
			c := Candidate{
				Text:     tok.text,
				Source:   doc.Source,
				Origin:   doc.Origin,
				Page:     line.Page,
				LineNo:   line.LineNo,
				Line:     line.Raw,
				Shape:    tok.class,
				DateLike: isDateLike(line.Norm, tok.start, tok.end),
			}
			score(&c, hits, e.opts.Labels, e.opts.WindowSize, e.opts.MinConfidence)
			out = append(out, c)
		}
	}
	return out
}

// ProcessAll runs a batch of documents independently. A document that is
// nil or empty contributes nothing; no single document can abort the
// batch.
func (e *Engine) ProcessAll(docs []*Document) []Candidate {
	var out []Candidate
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		out = append(out, e.ProcessDocument(doc)...)
	}
	return out
}
