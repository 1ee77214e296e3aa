// Package jdate parses dates as they appear on Japanese certification
// documents: Gregorian forms, era forms (令和6年9月1日, R6.9.1, H23.2.5)
// and two-digit years.
package jdate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Era base years: era year 1 == base year.
var eraBase = map[string]int{
	"R": 2019, // Reiwa
	"H": 1989, // Heisei
	"S": 1926, // Showa
	"T": 1912, // Taisho
	"M": 1868, // Meiji
}

var eraInitial = map[string]string{
	"令": "R",
	"平": "H",
	"昭": "S",
	"大": "T",
	"明": "M",
}

var (
	reGregorian = regexp.MustCompile(`(\d{4})[./年-](\d{1,2})[./月-](\d{1,2})日?`)
	reEra       = regexp.MustCompile(`([RrHhSsTtMm令平昭大明])(?:和|成|正|治)?\s*(\d{1,2})\s*[./年]\s*(\d{1,2})\s*[./月]\s*(\d{1,2})日?`)
	reShortYear = regexp.MustCompile(`(\d{2})[./](\d{1,2})[./](\d{1,2})`)
)

// Parse extracts the first recognizable date in s. Two-digit years pivot
// at 70 (below -> 2000s, otherwise 1900s).
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := reGregorian.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := reEra.FindStringSubmatch(s); m != nil {
		initial := strings.ToUpper(m[1])
		if jp, ok := eraInitial[m[1]]; ok {
			initial = jp
		}
		base, ok := eraBase[initial]
		if !ok {
			return time.Time{}, false
		}
		y := base + atoi(m[2]) - 1
		return makeDate(y, atoi(m[3]), atoi(m[4]))
	}

	if m := reShortYear.FindStringSubmatch(s); m != nil {
		yy := atoi(m[1])
		y := 1900 + yy
		if yy < 70 {
			y = 2000 + yy
		}
		return makeDate(y, atoi(m[2]), atoi(m[3]))
	}

	return time.Time{}, false
}

func makeDate(y, mo, d int) (time.Time, bool) {
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	// reject normalized overflow like 2月30日
	if int(t.Month()) != mo || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
