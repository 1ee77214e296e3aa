package extract

import (
	"fmt"
	"strings"
)

// Scoring weights. Label proximity dominates, shape strength is
// secondary, and short numeric runs with no supporting label are
// penalized. The exact numbers are calibration details kept in one place
// so they can be re-tuned against a labeled sample set.
const (
	// DefaultMinConfidence is the acceptance threshold.
	DefaultMinConfidence = 0.50

	labelWeightAtZero   = 0.45 // label on the candidate's own line
	labelWeightAtEdge   = 0.35 // label at the window boundary
	categoryBonusMax    = 0.05 // scaled by category priority rank
	shapeWeightAlnum    = 0.50
	shapeWeightHyphen   = 0.30
	shapeWeightNumeric  = 0.15
	shortNumericPenalty = 0.10
	minTrustedDigits    = 6
)

func shapeWeight(c ShapeClass) float64 {
	switch c {
	case ShapeAlnumSuffixed:
		return shapeWeightAlnum
	case ShapeHyphenated:
		return shapeWeightHyphen
	default:
		return shapeWeightNumeric
	}
}

func shapeNoun(c ShapeClass) string {
	switch c {
	case ShapeAlnumSuffixed:
		return "alphanumeric"
	case ShapeHyphenated:
		return "hyphenated"
	default:
		return "numeric-only"
	}
}

// nearestLabel picks the supporting label for a candidate: the hit with
// the smallest line distance within ±window on the same page, ties broken
// by category priority. Returns nil when no hit qualifies.
func nearestLabel(c *Candidate, hits []LabelHit, table *LabelTable, window int) (*LabelHit, int) {
	var best *LabelHit
	bestDist := 0
	for i := range hits {
		h := &hits[i]
		if h.Page != c.Page {
			continue
		}
		dist := h.LineNo - c.LineNo
		if dist < 0 {
			dist = -dist
		}
		if dist > window {
			continue
		}
		if best == nil || dist < bestDist ||
			(dist == bestDist && table.Rank(h.Category) < table.Rank(best.Category)) {
			best = h
			bestDist = dist
		}
	}
	return best, bestDist
}

// score fills the candidate's confidence, accepted flag and reason.
// Deterministic: same text, window and label set always produce the same
// output. Confidence is monotonic non-increasing in label distance and is
// zero only for candidates rejected for cause.
func score(c *Candidate, hits []LabelHit, table *LabelTable, window int, minConfidence float64) {
	if c.DateLike {
		c.Confidence = 0
		c.Accepted = false
		c.Reason = fmt.Sprintf("date-like token %q", c.Text)
		return
	}

	label, dist := nearestLabel(c, hits, table, window)
	conf := shapeWeight(c.Shape)
	var reasons []string

	if label != nil {
		c.NearestLabel = label
		c.LabelDistance = dist
		span := labelWeightAtZero
		if window > 0 {
			span -= (labelWeightAtZero - labelWeightAtEdge) * float64(dist) / float64(window)
		}
		rank := table.Rank(label.Category)
		denom := table.Categories()
		if denom <= 1 {
			denom = 2
		}
		bonus := categoryBonusMax * float64(denom-1-rank) / float64(denom-1)
		conf += span + bonus
		reasons = append(reasons, fmt.Sprintf("label %s at distance %d", label.Category, dist))
	} else {
		if c.Shape == ShapeNumericOnly && digitCount(c.Text) < minTrustedDigits {
			conf -= shortNumericPenalty
		}
	}

	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	c.Confidence = conf
	c.Accepted = conf >= minConfidence

	switch {
	case c.Accepted && label != nil:
		reasons = append(reasons, fmt.Sprintf("shape %s", c.Shape))
	case c.Accepted:
		reasons = append(reasons, fmt.Sprintf("strong shape %s, no label in window", c.Shape))
	case label != nil:
		reasons = append(reasons, fmt.Sprintf("shape %s below threshold", c.Shape))
	default:
		reasons = append(reasons, fmt.Sprintf("no label in window, weak %s shape", shapeNoun(c.Shape)))
	}
	c.Reason = strings.Join(reasons, ", ")
}

func digitCount(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			n++
		}
	}
	return n
}
