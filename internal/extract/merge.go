package extract

import (
	"fmt"
	"sort"
)

// Merge combines accepted candidates across origins for one logical
// document. Candidates are grouped by normalized text; each group keeps
// the maximum confidence observed and the union of origins and reasons.
// Ties in confidence go to the origin whose set was passed first, so the
// result is stable for a fixed caller-provided order. Rejected candidates
// never reach the result.
func Merge(source string, sets ...CandidateSet) MergedResult {
	type group struct {
		entry     MergedEntry
		seenOrig  map[string]struct{}
		seenLabel map[string]struct{}
	}
	groups := map[string]*group{}
	var order []string

	for _, set := range sets {
		for _, c := range set.Candidates {
			if !c.Accepted {
				continue
			}
			origin := c.Origin
			if origin == "" {
				origin = set.Origin
			}
			g, ok := groups[c.Text]
			if !ok {
				g = &group{
					entry:     MergedEntry{Text: c.Text, Confidence: c.Confidence},
					seenOrig:  map[string]struct{}{},
					seenLabel: map[string]struct{}{},
				}
				groups[c.Text] = g
				order = append(order, c.Text)
			}
			if c.Confidence > g.entry.Confidence {
				g.entry.Confidence = c.Confidence
			}
			if _, dup := g.seenOrig[origin]; !dup {
				g.seenOrig[origin] = struct{}{}
				g.entry.Origins = append(g.entry.Origins, origin)
			}
			tagged := fmt.Sprintf("%s: %s", origin, c.Reason)
			if _, dup := g.seenLabel[tagged]; !dup {
				g.seenLabel[tagged] = struct{}{}
				if g.entry.Reason != "" {
					g.entry.Reason += "; "
				}
				g.entry.Reason += tagged
			}
		}
	}

	res := MergedResult{Source: source}
	sort.Strings(order)
	for _, text := range order {
		res.Entries = append(res.Entries, groups[text].entry)
	}
	return res
}
