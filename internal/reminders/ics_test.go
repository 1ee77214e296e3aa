package reminders

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masaki-ito/weldreg/internal/entity"
)

func TestWriteICS(t *testing.T) {
	exp := day(2028, 9, 1)
	items := []DueItem{
		{
			LicenseRecord: entity.LicenseRecord{Name: "松岡 正", LicenseNo: "SE2500123", ExpiryDate: &exp},
			Stage:         StageFirst,
		},
		{LicenseRecord: entity.LicenseRecord{LicenseNo: "NO-EXPIRY"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, items))
	out := buf.String()

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Equal(t, "END:VCALENDAR", lines[len(lines)-1])

	assert.Contains(t, out, "DTSTART;VALUE=DATE:20280901\r\n")
	assert.Contains(t, out, "SUMMARY:資格有効期限: 松岡 正\r\n")
	assert.Contains(t, out, "@weldreg\r\n")
	// the record without an expiry contributes no event
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}

func TestWriteICSEscapesSummary(t *testing.T) {
	exp := day(2027, 1, 1)
	items := []DueItem{{
		LicenseRecord: entity.LicenseRecord{Name: "溶接, 班A; 夜勤", LicenseNo: "X1234", ExpiryDate: &exp},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, items))
	assert.Contains(t, buf.String(), `SUMMARY:資格有効期限: 溶接\, 班A\; 夜勤`)
}

func TestWriteICSDeterministic(t *testing.T) {
	exp := day(2027, 6, 30)
	items := []DueItem{{
		LicenseRecord: entity.LicenseRecord{Name: "内田 浩", LicenseNo: "ZX9991234", ExpiryDate: &exp},
	}}

	var a, b bytes.Buffer
	require.NoError(t, WriteICS(&a, items))
	require.NoError(t, WriteICS(&b, items))
	assert.Equal(t, a.Bytes(), b.Bytes())
}
