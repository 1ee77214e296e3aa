// Package roster reads license roster spreadsheets. Headers vary between
// contractors; a synonym map folds them onto the record fields, and the
// extraction engine cleans up license-number cells that mix labels or
// punctuation with the number.
package roster

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/masaki-ito/weldreg/internal/entity"
	"github.com/masaki-ito/weldreg/internal/extract"
	"github.com/masaki-ito/weldreg/internal/jdate"
)

// headerMap folds roster column headers (normalized) onto record fields.
var headerMap = map[string]string{
	"氏名":      "name",
	"名前":      "name",
	"登録番号":    "license_no",
	"登録NO":    "license_no",
	"免許番号":    "license_no",
	"免許証番号":   "license_no",
	"許可番号":    "license_no",
	"証番号":     "license_no",
	"資格番号":    "license_no",
	"資格":      "qualification",
	"資格種別":    "qualification",
	"交付日":     "issue_date",
	"発行日":     "issue_date",
	"交付年月日":   "issue_date",
	"発行年月日":   "issue_date",
	"有効期限":    "expiry_date",
	"有効期限日":   "expiry_date",
	"有効期間":    "expiry_date",
	"有効期間満了日": "expiry_date",
	"満了日":     "expiry_date",
}

// headerSynonyms orders headerMap's keys longest-first (ties broken
// lexically) for the substring fallback, so a header containing two
// synonyms always resolves to the more specific one.
var headerSynonyms = func() []string {
	syns := make([]string, 0, len(headerMap))
	for syn := range headerMap {
		syns = append(syns, syn)
	}
	sort.Slice(syns, func(i, j int) bool {
		if len(syns[i]) != len(syns[j]) {
			return len(syns[i]) > len(syns[j])
		}
		return syns[i] < syns[j]
	})
	return syns
}()

// ParseWorkbook reads the first sheet of an xlsx roster. The first
// non-empty row is the header; rows with no recognizable license number
// or name are skipped.
func ParseWorkbook(path string, logger *slog.Logger) ([]entity.LicenseRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open roster %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("roster %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	records := parseRows(rows, path)
	logger.Info("roster parsed", "path", path, "rows", len(rows), "records", len(records))
	return records, nil
}

func parseRows(rows [][]string, source string) []entity.LicenseRecord {
	headerIdx := -1
	var fields []string
	for i, row := range rows {
		if f := mapHeader(row); f != nil {
			headerIdx, fields = i, f
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var records []entity.LicenseRecord
	for _, row := range rows[headerIdx+1:] {
		rec := entity.LicenseRecord{Source: source}
		for col, field := range fields {
			if field == "" || col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			switch field {
			case "name":
				rec.Name = cell
			case "license_no":
				if id, ok := extract.FindIdentifier(cell); ok {
					rec.LicenseNo = id
				} else {
					rec.LicenseNo = extract.Normalize(cell)
				}
			case "qualification":
				rec.Qualification = cell
			case "issue_date":
				rec.IssueDate = parseDateCell(cell)
			case "expiry_date":
				rec.ExpiryDate = parseDateCell(cell)
			}
		}
		if rec.LicenseNo != "" || rec.Name != "" {
			records = append(records, rec)
		}
	}
	return records
}

// mapHeader returns per-column field names, or nil when the row does not
// look like a header. Exact synonym matches are tried before substring
// fallbacks, and the fallback scans synonyms longest-first, so
// 有効期間満了日 lands on the full phrase rather than 有効期間 and
// 資格番号欄 maps to the license number, not the qualification.
func mapHeader(row []string) []string {
	fields := make([]string, len(row))
	matched := 0
	for i, cell := range row {
		label := extract.Normalize(strings.TrimSpace(cell))
		if label == "" {
			continue
		}
		if f, ok := headerMap[label]; ok {
			fields[i] = f
			matched++
			continue
		}
		for _, syn := range headerSynonyms {
			if strings.Contains(label, syn) {
				fields[i] = headerMap[syn]
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return nil
	}
	return fields
}

func parseDateCell(cell string) *time.Time {
	if t, ok := jdate.Parse(cell); ok {
		return &t
	}
	return nil
}
