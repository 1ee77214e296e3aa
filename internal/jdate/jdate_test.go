package jdate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masaki-ito/weldreg/internal/jdate"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025/09/10", date(2025, 9, 10)},
		{"2024-06-01", date(2024, 6, 1)},
		{"2024.06.01", date(2024, 6, 1)},
		{"2024年6月1日", date(2024, 6, 1)},
		{"令和6年9月1日", date(2024, 9, 1)},
		{"令和5年6月1日", date(2023, 6, 1)},
		{"R6.9.1", date(2024, 9, 1)},
		{"H23.2.5", date(2011, 2, 5)},
		{"S49. 8.22", date(1974, 8, 22)},
		{"平成23年2月5日", date(2011, 2, 5)},
		{"25.09.10", date(2025, 9, 10)},
		{"99.12.31", date(1999, 12, 31)},
		{"  2025/09/10  ", date(2025, 9, 10)},
		{"有効期限: 2028/09/01", date(2028, 9, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := jdate.Parse(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"36709",
		"SE2500123",
		"番号",
		"2024-13-01", // month out of range
		"2024-02-30", // day overflow
		"X6.9.1",     // unknown era
	} {
		t.Run(in, func(t *testing.T) {
			_, ok := jdate.Parse(in)
			assert.False(t, ok)
		})
	}
}
