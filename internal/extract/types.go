package extract

import "fmt"

// LabelCategory classifies the fixed label phrases that signal a nearby
// identifier. Categories are ranked; see DefaultLabelTable for the order.
type LabelCategory string

const (
	CertNo     LabelCategory = "CERT_NO"
	RegNo      LabelCategory = "REG_NO"
	ApprovalNo LabelCategory = "APPROVAL_NO"
	QualNo     LabelCategory = "QUAL_NO"
	GenericNo  LabelCategory = "GENERIC_NO"
)

// ShapeClass is the lexical pattern a candidate token matches.
type ShapeClass string

const (
	ShapeAlnumSuffixed ShapeClass = "ALPHANUM_SUFFIXED"
	ShapeHyphenated    ShapeClass = "HYPHENATED"
	ShapeNumericOnly   ShapeClass = "NUMERIC_ONLY"
)

// Line is one recognized text line with its position and cached
// normalized form. Read-only after construction.
type Line struct {
	Page   int
	LineNo int
	Raw    string
	Norm   string
}

// Page is an ordered sequence of lines, 1-based.
type Page struct {
	Number int
	Lines  []Line
}

// Document is one extraction input: the text of a single source file as
// produced by one OCR origin.
type Document struct {
	Source string // source file path or identifier
	Origin string // OCR provider / input directory that produced the text
	Pages  []Page
}

// NewDocument builds a read-only document from raw page texts. Page and
// line numbers are assigned 1-based in input order, and every line's
// normalized form is computed once up front.
func NewDocument(source, origin string, pages ...[]string) *Document {
	doc := &Document{Source: source, Origin: origin}
	for i, lines := range pages {
		doc.Pages = append(doc.Pages, newPage(i+1, lines))
	}
	return doc
}

// AddPage appends a page with an explicit page number. Numbers must be
// positive and strictly increasing; anything else is a caller contract
// violation, not a content problem.
func (d *Document) AddPage(number int, lines []string) error {
	if number <= 0 {
		return fmt.Errorf("document %q: page number %d must be positive", d.Source, number)
	}
	if n := len(d.Pages); n > 0 && number <= d.Pages[n-1].Number {
		return fmt.Errorf("document %q: page number %d not increasing", d.Source, number)
	}
	d.Pages = append(d.Pages, newPage(number, lines))
	return nil
}

func newPage(number int, lines []string) Page {
	p := Page{Number: number}
	for j, raw := range lines {
		p.Lines = append(p.Lines, Line{
			Page:   number,
			LineNo: j + 1,
			Raw:    raw,
			Norm:   Normalize(raw),
		})
	}
	return p
}

// LabelHit records a label phrase found on a line. Start/End are byte
// offsets into the normalized line text.
type LabelHit struct {
	Page     int
	LineNo   int
	Category LabelCategory
	Start    int
	End      int
}

// Candidate is a token that might be a license identifier, with the
// scoring decision attached. Candidates are never mutated after scoring;
// corrections produce new Candidates.
type Candidate struct {
	Text   string // normalized token text
	Source string
	Origin string
	Page   int
	LineNo int
	Line   string // raw line the token came from

	Shape         ShapeClass
	NearestLabel  *LabelHit
	LabelDistance int // line distance to NearestLabel; meaningless when nil
	DateLike      bool

	Confidence float64
	Accepted   bool
	Reason     string
}

// CandidateSet is the candidates contributed by one origin. The order of
// sets passed to Merge fixes the tie-break preference between origins.
type CandidateSet struct {
	Origin     string
	Candidates []Candidate
}

// MergedEntry is one distinct accepted identifier after cross-origin
// deduplication.
type MergedEntry struct {
	Text       string
	Confidence float64  // maximum observed across origins
	Origins    []string // union, in first-contribution order
	Reason     string   // origin-tagged reasons, "; "-joined
}

// MergedResult maps a logical document to its accepted identifiers.
type MergedResult struct {
	Source  string
	Entries []MergedEntry // sorted by Text
}
