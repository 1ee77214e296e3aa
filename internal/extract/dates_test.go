package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDateLike(t *testing.T) {
	tests := []struct {
		name  string
		token string
		line  string
		want  bool
	}{
		{name: "iso date", token: "2024-06-01", line: "有効期限 2024-06-01", want: true},
		{name: "slash date", token: "2025/09/10", line: "2025/09/10", want: true},
		{name: "dotted short date", token: "25.09.10", line: "交付 25.09.10", want: true},
		{name: "era compact", token: "R5.6.1", line: "交付日 R5.6.1", want: true},
		{name: "era kanji", token: "令和5年6月1日", line: "令和5年6月1日", want: true},
		{name: "heisei", token: "H23.2.5", line: "H23.2.5", want: true},
		{name: "year fragment of a date", token: "2025", line: "有効期限 2025-06-01", want: true},
		{name: "day fragment of a date", token: "2024", line: "2024/04/01〜2027/03/31", want: true},
		{name: "plain identifier", token: "36709", line: "登録番号 36709", want: false},
		{name: "alphanum identifier", token: "SE2500123", line: "証明書番号 SE2500123", want: false},
		{name: "hyphenated identifier", token: "36-7091", line: "36-7091", want: false},
		{name: "number near unrelated date", token: "36709", line: "36709 有効期限 2025-06-01", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateLike(tt.token, tt.line))
		})
	}
}

func TestIsDateLikeTokenOnly(t *testing.T) {
	// context falls back to the token itself
	assert.True(t, IsDateLike("2024-06-01", ""))
	assert.False(t, IsDateLike("123456", ""))
}
