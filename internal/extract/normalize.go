package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// OCR output mixes fullwidth and halfwidth forms of the same glyphs and
// a zoo of hyphen look-alikes (U+2010..U+2015, minus sign, katakana
// prolonged sound mark, fullwidth hyphen). All of them must collapse to
// one spelling before tokens can be compared across providers.
var reHyphens = regexp.MustCompile(`[‐‑‒–—―−ー]`)

// Normalize canonicalizes a line: NFKC compatibility fold (fullwidth
// ASCII/digits to halfwidth), hyphen unification to ASCII '-', and ASCII
// upper-casing. Whitespace and digit runs are left untouched. Pure and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = width.Fold.String(s)
	s = norm.NFKC.String(s)
	s = reHyphens.ReplaceAllString(s, "-")
	return strings.ToUpper(s)
}
