package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/masaki-ito/weldreg/internal/entity"
	"github.com/masaki-ito/weldreg/internal/extract"
)

func TestWriteAuditCSV(t *testing.T) {
	svc := NewService(nil)
	rows := []extract.Row{
		{Source: "a.pdf", Page: 1, LineNo: 1, Candidate: "SE2500123", Accepted: true, Confidence: 1, Reason: "label CERT_NO at distance 0, shape ALPHANUM_SUFFIXED", Line: "証明書番号 SE2500123"},
		{Source: "a.pdf", Page: 2, LineNo: 3, Candidate: "36709", Accepted: false, Confidence: 0.05, Reason: "no label in window, weak numeric-only shape", Line: "36709"},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteAuditCSV(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "source,page,line_no,candidate,accepted,confidence,reason,line", lines[0])
	assert.Equal(t, "a.pdf,1,1,SE2500123,true,1.0000,\"label CERT_NO at distance 0, shape ALPHANUM_SUFFIXED\",証明書番号 SE2500123", lines[1])
	assert.Contains(t, lines[2], "36709")
	assert.Contains(t, lines[2], "false")
}

func TestWriteAuditCSVDeterministic(t *testing.T) {
	svc := NewService(nil)
	rows := []extract.Row{
		{Source: "a.pdf", Page: 1, LineNo: 1, Candidate: "X1234", Accepted: true, Confidence: 0.75, Reason: "r", Line: "l"},
	}
	var a, b bytes.Buffer
	require.NoError(t, svc.WriteAuditCSV(&a, rows))
	require.NoError(t, svc.WriteAuditCSV(&b, rows))
	assert.Equal(t, a.Bytes(), b.Bytes(), "audit output must be byte-identical across runs")
}

func TestWriteMergedCSV(t *testing.T) {
	svc := NewService(nil)
	results := []extract.MergedResult{{
		Source: "cert.pdf",
		Entries: []extract.MergedEntry{{
			Text:       "SE2500123",
			Confidence: 0.9,
			Origins:    []string{"azure-ocr", "tesseract"},
			Reason:     "azure-ocr: label CERT_NO at distance 0, shape ALPHANUM_SUFFIXED",
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteMergedCSV(&buf, results))
	out := buf.String()
	assert.Contains(t, out, "source,license_no,confidence,origins,reason")
	assert.Contains(t, out, "cert.pdf,SE2500123,0.9000,azure-ocr;tesseract,")
}

func TestRegistryXLSX(t *testing.T) {
	svc := NewService(nil)
	expiry := time.Date(2028, 9, 1, 0, 0, 0, 0, time.UTC)
	records := []entity.LicenseRecord{{
		Source:     "certs/matsuoka.pdf",
		Name:       "松岡 正",
		LicenseNo:  "SE2500123",
		ExpiryDate: &expiry,
		Confidence: 0.9,
		Origins:    []string{"azure-ocr"},
	}}
	audit := []extract.Row{
		{Source: "certs/matsuoka.pdf", Page: 1, LineNo: 1, Candidate: "SE2500123", Accepted: true, Confidence: 0.9, Reason: "r", Line: "証明書番号 SE2500123"},
	}

	data, err := svc.RegistryXLSX(records, audit)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Licenses", "C2")
	require.NoError(t, err)
	assert.Equal(t, "SE2500123", got)

	got, err = f.GetCellValue("Licenses", "F2")
	require.NoError(t, err)
	assert.Equal(t, "2028-09-01", got)

	got, err = f.GetCellValue("Audit", "D2")
	require.NoError(t, err)
	assert.Equal(t, "SE2500123", got)

	header, err := f.GetCellValue("Audit", "A1")
	require.NoError(t, err)
	assert.Equal(t, "source", header)
}
