package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regHit(lineNo int) LabelHit {
	return LabelHit{Page: 1, LineNo: lineNo, Category: RegNo}
}

func numericCandidate(text string, lineNo int) Candidate {
	return Candidate{Text: text, Page: 1, LineNo: lineNo, Shape: ShapeNumericOnly}
}

func TestScoreLabelMonotonicity(t *testing.T) {
	table := DefaultLabelTable()
	const window = 3

	prev := 2.0
	for dist := 0; dist <= window; dist++ {
		c := numericCandidate("36709", 10)
		score(&c, []LabelHit{regHit(10 + dist)}, table, window, DefaultMinConfidence)
		assert.LessOrEqual(t, c.Confidence, prev,
			"confidence must not increase with label distance %d", dist)
		assert.Greater(t, c.Confidence, 0.0)
		prev = c.Confidence
	}
}

func TestScoreCategoryPriority(t *testing.T) {
	table := DefaultLabelTable()

	confs := map[LabelCategory]float64{}
	for _, cat := range []LabelCategory{CertNo, RegNo, GenericNo} {
		c := numericCandidate("36709", 1)
		score(&c, []LabelHit{{Page: 1, LineNo: 1, Category: cat}}, table, 1, DefaultMinConfidence)
		confs[cat] = c.Confidence
	}
	assert.Greater(t, confs[CertNo], confs[RegNo])
	assert.Greater(t, confs[RegNo], confs[GenericNo])
}

func TestScoreShapeStrength(t *testing.T) {
	table := DefaultLabelTable()
	hit := []LabelHit{regHit(1)}

	shapes := []ShapeClass{ShapeAlnumSuffixed, ShapeHyphenated, ShapeNumericOnly}
	var prev float64 = 2.0
	for _, shape := range shapes {
		c := Candidate{Text: "X", Page: 1, LineNo: 1, Shape: shape}
		score(&c, hit, table, 1, DefaultMinConfidence)
		assert.Less(t, c.Confidence, prev, "shape %s must score below the more specific one", shape)
		prev = c.Confidence
	}
}

func TestScoreDateLikeNeverAccepted(t *testing.T) {
	table := DefaultLabelTable()
	c := numericCandidate("2025", 1)
	c.DateLike = true
	// even a perfect label does not rescue a date
	score(&c, []LabelHit{{Page: 1, LineNo: 1, Category: CertNo}}, table, 1, DefaultMinConfidence)
	assert.False(t, c.Accepted)
	assert.Zero(t, c.Confidence)
	assert.Contains(t, c.Reason, "date-like")
}

func TestScoreWeakNumericRejected(t *testing.T) {
	table := DefaultLabelTable()
	c := numericCandidate("123456", 1)
	score(&c, nil, table, 1, DefaultMinConfidence)
	assert.False(t, c.Accepted)
	assert.Greater(t, c.Confidence, 0.0, "rejected-but-plausible keeps a nonzero score")
	assert.Equal(t, "no label in window, weak numeric-only shape", c.Reason)
}

func TestScoreShortNumericPenalty(t *testing.T) {
	table := DefaultLabelTable()

	long := numericCandidate("123456", 1)
	score(&long, nil, table, 1, DefaultMinConfidence)
	short := numericCandidate("3670", 1)
	score(&short, nil, table, 1, DefaultMinConfidence)

	assert.Less(t, short.Confidence, long.Confidence,
		"uncorroborated short numeric runs score below trusted-length ones")
}

func TestScoreLabeledAcceptReason(t *testing.T) {
	table := DefaultLabelTable()
	c := Candidate{Text: "SE2500123", Page: 1, LineNo: 1, Shape: ShapeAlnumSuffixed}
	score(&c, []LabelHit{{Page: 1, LineNo: 1, Category: CertNo}}, table, 1, DefaultMinConfidence)
	require.True(t, c.Accepted)
	assert.Equal(t, "label CERT_NO at distance 0, shape ALPHANUM_SUFFIXED", c.Reason)
	assert.Equal(t, 1.0, c.Confidence)
}

func TestScoreOutOfWindowLabelIgnored(t *testing.T) {
	table := DefaultLabelTable()
	c := numericCandidate("36709", 5)
	score(&c, []LabelHit{regHit(3)}, table, 1, DefaultMinConfidence)
	assert.False(t, c.Accepted)
	assert.Nil(t, c.NearestLabel)
}

func TestScoreDeterministic(t *testing.T) {
	table := DefaultLabelTable()
	hits := []LabelHit{regHit(1), {Page: 1, LineNo: 2, Category: GenericNo}}
	var first string
	for i := 0; i < 5; i++ {
		c := numericCandidate("36709", 2)
		score(&c, hits, table, 2, DefaultMinConfidence)
		s := fmt.Sprintf("%v|%.6f|%s", c.Accepted, c.Confidence, c.Reason)
		if i == 0 {
			first = s
			continue
		}
		assert.Equal(t, first, s)
	}
}
