package reminders

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"strings"
)

// WriteICS writes the due list as a minimal RFC 5545 calendar with one
// all-day event per expiry date, so renewals land in whatever calendar
// the operator already watches. Lines are CRLF-terminated as the format
// requires.
func WriteICS(w io.Writer, items []DueItem) error {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//weldreg//JP",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	for _, item := range items {
		if item.ExpiryDate == nil {
			continue
		}
		ymd := item.ExpiryDate.Format("20060102")
		label := item.Name
		if label == "" {
			label = item.LicenseNo
		}
		// stable UID so re-imports update events instead of duplicating
		sum := sha1.Sum([]byte(item.Name + "-" + ymd + "-" + item.LicenseNo))
		lines = append(lines,
			"BEGIN:VEVENT",
			"DTSTART;VALUE=DATE:"+ymd,
			"DTEND;VALUE=DATE:"+ymd,
			"SUMMARY:"+icsEscape("資格有効期限: "+label),
			"UID:"+hex.EncodeToString(sum[:])+"@weldreg",
			"TRANSP:TRANSPARENT",
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")
	_, err := io.WriteString(w, strings.Join(lines, "\r\n")+"\r\n")
	return err
}

var icsEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\n", `\n`,
)

func icsEscape(s string) string {
	return icsEscaper.Replace(s)
}
