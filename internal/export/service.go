package export

import (
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/masaki-ito/weldreg/internal/entity"
	"github.com/masaki-ito/weldreg/internal/extract"
)

// Service produces XLSX workbooks and CSV streams for registry exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// RegistryXLSX returns a workbook with a "Licenses" sheet for the roster
// records and an "Audit" sheet carrying the extraction audit trail.
func (s *Service) RegistryXLSX(records []entity.LicenseRecord, audit []extract.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const licSheet = "Licenses"
	if err := f.SetSheetName("Sheet1", licSheet); err != nil {
		return nil, err
	}

	licHeaders := []string{"Source", "Name", "License No", "Qualification", "Issue Date", "Expiry Date", "Confidence", "Origins"}
	if err := writeRow(f, licSheet, 1, toAny(licHeaders)); err != nil {
		return nil, err
	}
	for i, r := range records {
		row := []any{
			r.Source, r.Name, r.LicenseNo, r.Qualification,
			fmtDate(r.IssueDate), fmtDate(r.ExpiryDate),
			r.Confidence, joinOrigins(r.Origins),
		}
		if err := writeRow(f, licSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	const auditSheet = "Audit"
	if _, err := f.NewSheet(auditSheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, auditSheet, 1, toAny(extract.AuditColumns)); err != nil {
		return nil, err
	}
	for i, row := range audit {
		if err := writeRow(f, auditSheet, i+2, []any{
			row.Source, row.Page, row.LineNo, row.Candidate,
			row.Accepted, row.Confidence, row.Reason, row.Line,
		}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	s.logger.Info("registry workbook built", "licenses", len(records), "audit_rows", len(audit))
	return buf.Bytes(), nil
}

// WriteAuditCSV streams audit rows in the fixed column contract:
// source, page, line_no, candidate, accepted, confidence, reason, line.
func (s *Service) WriteAuditCSV(w io.Writer, rows []extract.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(extract.AuditColumns); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.Source,
			strconv.Itoa(row.Page),
			strconv.Itoa(row.LineNo),
			row.Candidate,
			strconv.FormatBool(row.Accepted),
			strconv.FormatFloat(row.Confidence, 'f', 4, 64),
			row.Reason,
			row.Line,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMergedCSV streams merged results as source, license_no,
// confidence, origins, reason.
func (s *Service) WriteMergedCSV(w io.Writer, results []extract.MergedResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "license_no", "confidence", "origins", "reason"}); err != nil {
		return err
	}
	for _, res := range results {
		for _, e := range res.Entries {
			rec := []string{
				res.Source,
				e.Text,
				strconv.FormatFloat(e.Confidence, 'f', 4, 64),
				joinOrigins(e.Origins),
				e.Reason,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func joinOrigins(origins []string) string {
	return strings.Join(origins, ";")
}
