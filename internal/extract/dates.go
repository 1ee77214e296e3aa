package extract

import (
	"regexp"
	"strings"

	"github.com/masaki-ito/weldreg/internal/jdate"
)

// Date patterns a candidate token may be (part of). These run against
// the token plus a small window of surrounding characters, so the "2024"
// inside "2024-06-01" is vetoed even though the bare digits also satisfy
// the numeric-only shape rule.
var (
	reDateFull  = regexp.MustCompile(`\d{4}[./-]\d{1,2}[./-]\d{1,2}`)
	reDateShort = regexp.MustCompile(`\d{2}[./-]\d{1,2}[./-]\d{1,2}`)
	reDateEra   = regexp.MustCompile(`[RHSTM令平昭大明](?:和|成|正|治)?\s*\d{1,2}\s*[./年]\s*\d{1,2}\s*[./月]\s*\d{1,2}日?`)
	reDateKanji = regexp.MustCompile(`\d{1,4}年\s*\d{1,2}月\s*\d{1,2}日`)
)

var dateContextPatterns = []*regexp.Regexp{reDateEra, reDateKanji, reDateFull, reDateShort}

// dateContextBytes bounds how far around the token the date patterns may
// reach. Wide enough for separators and era markers, narrow enough not to
// chain two unrelated numbers into a "date".
const dateContextBytes = 12

// isDateLike reports whether the token at [start,end) of the normalized
// line is a date rather than an identifier. A token is date-like when a
// recognized date pattern in the surrounding window fully consumes it, or
// when the token alone parses as a date.
func isDateLike(norm string, start, end int) bool {
	tok := norm[start:end]
	if _, ok := jdate.Parse(tok); ok && looksLikeBareDate(tok) {
		return true
	}

	lo := start - dateContextBytes
	if lo < 0 {
		lo = 0
	}
	hi := end + dateContextBytes
	if hi > len(norm) {
		hi = len(norm)
	}
	window := norm[lo:hi]
	tokStart := start - lo
	tokEnd := end - lo

	for _, re := range dateContextPatterns {
		for _, span := range re.FindAllStringIndex(window, -1) {
			if span[0] <= tokStart && span[1] >= tokEnd {
				return true
			}
		}
	}
	return false
}

// looksLikeBareDate guards jdate.Parse, which is deliberately permissive:
// a 5-8 digit run like "36709" must not count as a date just because some
// substring could be forced into one.
func looksLikeBareDate(tok string) bool {
	if strings.IndexFunc(tok, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return true // has separators or era markers; trust the parser
	}
	return false
}

// IsDateLike is the package-level veto used by the scorer and exposed for
// callers that classify tokens outside a full document run. lineContext
// is the normalized line the token appeared on; pass the token itself if
// no context is available.
func IsDateLike(token, lineContext string) bool {
	token = Normalize(token)
	lineContext = Normalize(lineContext)
	idx := strings.Index(lineContext, token)
	if idx < 0 {
		lineContext = token
		idx = 0
	}
	return isDateLike(lineContext, idx, idx+len(token))
}
