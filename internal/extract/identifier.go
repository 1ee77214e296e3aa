package extract

// FindIdentifier pulls the most plausible license identifier out of a
// free-form string, such as a spreadsheet cell that mixes the number with
// a label or stray punctuation. Date-like tokens are skipped; among the
// rest the most specific shape wins, position breaking ties.
func FindIdentifier(s string) (string, bool) {
	norm := Normalize(s)
	var best *token
	for _, tok := range extractTokens(norm) {
		if isDateLike(norm, tok.start, tok.end) {
			continue
		}
		tok := tok
		if best == nil || shapeWeight(tok.class) > shapeWeight(best.class) {
			best = &tok
		}
	}
	if best == nil {
		return "", false
	}
	return best.text, true
}
