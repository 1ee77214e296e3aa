package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTokens(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantText  []string
		wantClass []ShapeClass
	}{
		{
			name:      "alphanum suffixed",
			line:      "証明書番号 SE2500123",
			wantText:  []string{"SE2500123"},
			wantClass: []ShapeClass{ShapeAlnumSuffixed},
		},
		{
			name:      "alphanum with trailing letter",
			line:      "AB12345C",
			wantText:  []string{"AB12345C"},
			wantClass: []ShapeClass{ShapeAlnumSuffixed},
		},
		{
			name:      "hyphenated",
			line:      "36-7091",
			wantText:  []string{"36-7091"},
			wantClass: []ShapeClass{ShapeHyphenated},
		},
		{
			name:      "numeric only",
			line:      "36709",
			wantText:  []string{"36709"},
			wantClass: []ShapeClass{ShapeNumericOnly},
		},
		{
			name:     "long digit run yields nothing",
			line:     "0312345678", // phone-number length
			wantText: nil,
		},
		{
			name:     "three digits too short",
			line:     "123",
			wantText: nil,
		},
		{
			name:      "alphanum wins overlap with numeric",
			line:      "SE2500123 36709",
			wantText:  []string{"SE2500123", "36709"},
			wantClass: []ShapeClass{ShapeAlnumSuffixed, ShapeNumericOnly},
		},
		{
			// five leading letters break the alphanum shape; the digit
			// run still stands on its own as a numeric token
			name:      "five leading letters degrade to numeric",
			line:      "ABCDE12345",
			wantText:  []string{"12345"},
			wantClass: []ShapeClass{ShapeNumericOnly},
		},
		{
			name:     "empty line",
			line:     "",
			wantText: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := extractTokens(Normalize(tt.line))
			var texts []string
			var classes []ShapeClass
			for _, tok := range toks {
				texts = append(texts, tok.text)
				classes = append(classes, tok.class)
			}
			assert.Equal(t, tt.wantText, texts)
			if tt.wantClass != nil {
				assert.Equal(t, tt.wantClass, classes)
			}
		})
	}
}

func TestExtractTokensLineOrder(t *testing.T) {
	// numeric token precedes an alphanum one; output must follow line order
	toks := extractTokens(Normalize("36709 SE2500123"))
	require.Len(t, toks, 2)
	assert.Equal(t, "36709", toks[0].text)
	assert.Equal(t, "SE2500123", toks[1].text)
	assert.Less(t, toks[0].start, toks[1].start)
}

func TestExtractTokensDateShapedInput(t *testing.T) {
	// the year inside a date still surfaces as a token here; the date
	// filter, not the shape rules, is responsible for the veto
	toks := extractTokens(Normalize("有効期限 2025-06-01"))
	require.Len(t, toks, 1)
	assert.Equal(t, "2025", toks[0].text)
	assert.Equal(t, ShapeNumericOnly, toks[0].class)
}
