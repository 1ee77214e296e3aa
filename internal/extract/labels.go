package extract

import (
	"sort"
	"strings"

	"github.com/masaki-ito/weldreg/internal/common"
)

// CategoryDef is one label category with its synonym phrases, as accepted
// by NewLabelTable and by JSON label-config overrides.
type CategoryDef struct {
	Category LabelCategory `json:"category"`
	Synonyms []string      `json:"synonyms"`
}

// LabelTable is the immutable, priority-ordered label lookup used by
// FindLabels and the scorer. Earlier categories outrank later ones. The
// table is built once per run and passed explicitly; there is no shared
// package-level state to override.
type LabelTable struct {
	defs []CategoryDef
	rank map[LabelCategory]int
}

var knownCategories = map[LabelCategory]struct{}{
	CertNo:     {},
	RegNo:      {},
	ApprovalNo: {},
	QualNo:     {},
	GenericNo:  {},
}

// DefaultLabelTable returns the built-in label set for Japanese
// certification documents. Synonyms are stored in normalized form, so
// matching happens against Line.Norm.
func DefaultLabelTable() *LabelTable {
	t, err := NewLabelTable([]CategoryDef{
		{Category: CertNo, Synonyms: []string{"証明書番号", "証書番号", "証番号", "証第"}},
		{Category: RegNo, Synonyms: []string{"登録番号", "登録NO", "登録第"}},
		{Category: ApprovalNo, Synonyms: []string{"認定番号", "許可番号"}},
		{Category: QualNo, Synonyms: []string{"資格番号", "免許番号", "免許証番号"}},
		{Category: GenericNo, Synonyms: []string{"番号", "NO.", "NO"}},
	})
	if err != nil {
		panic(err) // built-in table must be valid
	}
	return t
}

// NewLabelTable validates and freezes a category list. Unknown category
// names, duplicate categories and empty synonym sets are configuration
// errors, not silently ignored.
func NewLabelTable(defs []CategoryDef) (*LabelTable, error) {
	if len(defs) == 0 {
		return nil, common.ConfigError("label table needs at least one category")
	}
	seen := map[LabelCategory]struct{}{}
	t := &LabelTable{rank: make(map[LabelCategory]int, len(defs))}
	for i, def := range defs {
		if _, ok := knownCategories[def.Category]; !ok {
			return nil, common.ConfigErrorf("unknown label category %q", def.Category)
		}
		if _, dup := seen[def.Category]; dup {
			return nil, common.ConfigErrorf("duplicate label category %q", def.Category)
		}
		seen[def.Category] = struct{}{}

		var syns []string
		for _, s := range def.Synonyms {
			s = Normalize(strings.TrimSpace(s))
			if s != "" {
				syns = append(syns, s)
			}
		}
		if len(syns) == 0 {
			return nil, common.ConfigErrorf("label category %q has no synonyms", def.Category)
		}
		// longest synonym first, so 登録番号 wins its span before 番号 would
		sort.SliceStable(syns, func(a, b int) bool { return len(syns[a]) > len(syns[b]) })

		t.defs = append(t.defs, CategoryDef{Category: def.Category, Synonyms: syns})
		t.rank[def.Category] = i
	}
	return t, nil
}

// Rank returns the priority rank of a category: 0 is highest. Categories
// absent from the table rank below every present one.
func (t *LabelTable) Rank(c LabelCategory) int {
	if r, ok := t.rank[c]; ok {
		return r
	}
	return len(t.defs)
}

// Categories returns the table's category count.
func (t *LabelTable) Categories() int { return len(t.defs) }

// FindLabels scans one normalized line for label phrases. At most one hit
// per category is produced, and a lower-priority phrase whose span lies
// inside an already-claimed span is suppressed, so "登録番号" yields a
// REG_NO hit but no GENERIC_NO hit for the embedded "番号".
func (t *LabelTable) FindLabels(line Line) []LabelHit {
	if line.Norm == "" {
		return nil
	}
	var hits []LabelHit
	for _, def := range t.defs {
		start, end := -1, -1
		for _, syn := range def.Synonyms {
			if idx := findSynonym(line.Norm, syn); idx >= 0 {
				start, end = idx, idx+len(syn)
				break
			}
		}
		if start < 0 {
			continue
		}
		if overlapsAny(hits, start, end) {
			continue
		}
		hits = append(hits, LabelHit{
			Page:     line.Page,
			LineNo:   line.LineNo,
			Category: def.Category,
			Start:    start,
			End:      end,
		})
	}
	return hits
}

// findSynonym locates syn in norm, skipping occurrences glued into a
// longer ASCII word: the NO inside NOISE or NOTE is prose, not a label.
// A trailing digit does not disqualify, so NO12345 keeps its label.
func findSynonym(norm, syn string) int {
	for from := 0; ; {
		idx := strings.Index(norm[from:], syn)
		if idx < 0 {
			return -1
		}
		idx += from
		if asciiBounded(norm, idx, idx+len(syn)) {
			return idx
		}
		from = idx + 1
	}
}

// asciiBounded rejects a match whose ASCII-letter edge touches more
// ASCII letters (or, on the left, digits). Kanji synonyms pass through
// untouched since their edge bytes are not ASCII letters.
func asciiBounded(s string, start, end int) bool {
	if start > 0 && isLetter(s[start]) && isAlnum(s[start-1]) {
		return false
	}
	if end < len(s) && isLetter(s[end-1]) && isLetter(s[end]) {
		return false
	}
	return true
}

func isLetter(b byte) bool { return isAlnum(b) && !isDigit(b) }

func overlapsAny(hits []LabelHit, start, end int) bool {
	for _, h := range hits {
		if start < h.End && h.Start < end {
			return true
		}
	}
	return false
}
