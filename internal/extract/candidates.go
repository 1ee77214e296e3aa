package extract

import "regexp"

// Shape rules, matched against normalized (uppercased, hyphen-unified)
// line text. Go's RE2 has no lookaround, so the digit/letter boundary
// conditions are enforced separately in boundedAt.
var (
	reShapeAlnum  = regexp.MustCompile(`[A-Z]{1,4}[0-9]{4,8}[A-Z]?`)
	reShapeHyphen = regexp.MustCompile(`[0-9]{2,4}-[0-9]{3,6}`)
	reShapeNum    = regexp.MustCompile(`[0-9]{4,8}`)
)

// shapeOrder fixes specificity: a span claimed by an earlier rule is not
// reconsidered by a later one.
var shapeOrder = []struct {
	re    *regexp.Regexp
	class ShapeClass
}{
	{reShapeAlnum, ShapeAlnumSuffixed},
	{reShapeHyphen, ShapeHyphenated},
	{reShapeNum, ShapeNumericOnly},
}

// token is a shape match before date filtering and scoring. Start/End are
// byte offsets into the normalized line.
type token struct {
	text  string
	class ShapeClass
	start int
	end   int
}

// extractTokens finds identifier-shaped tokens on one normalized line.
// Overlapping matches resolve to the more specific shape class, then to
// the longer match (leftmost-longest within one rule). A numeric run
// longer than 8 digits yields nothing: its 4-8 digit substrings are
// fragments of a phone number or long ID, not identifiers.
func extractTokens(norm string) []token {
	if norm == "" {
		return nil
	}
	var tokens []token
	for _, rule := range shapeOrder {
		for _, span := range rule.re.FindAllStringIndex(norm, -1) {
			start, end := span[0], span[1]
			if !boundedAt(norm, start, end, rule.class) {
				continue
			}
			if overlapsToken(tokens, start, end) {
				continue
			}
			tokens = append(tokens, token{
				text:  norm[start:end],
				class: rule.class,
				start: start,
				end:   end,
			})
		}
	}
	// restore line order after the per-shape passes
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && tokens[j].start < tokens[j-1].start; j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
	return tokens
}

// boundedAt rejects matches that are substrings of a longer run: digits
// touching more digits, or letters touching more letters.
func boundedAt(s string, start, end int, class ShapeClass) bool {
	prev := byteAt(s, start-1)
	next := byteAt(s, end)
	switch class {
	case ShapeNumericOnly, ShapeHyphenated:
		return !isDigit(prev) && !isDigit(next)
	case ShapeAlnumSuffixed:
		return !isAlnum(prev) && !isAlnum(next)
	}
	return true
}

func overlapsToken(tokens []token, start, end int) bool {
	for _, t := range tokens {
		if start < t.end && t.start < end {
			return true
		}
	}
	return false
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return isDigit(b) || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
