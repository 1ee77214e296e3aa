package extract

import "sort"

// AuditColumns is the column set and order of audit output. Downstream
// tools consume this exact layout; do not reorder.
var AuditColumns = []string{"source", "page", "line_no", "candidate", "accepted", "confidence", "reason", "line"}

// Row is one audit line for a candidate, accepted or rejected.
type Row struct {
	Source     string
	Page       int
	LineNo     int
	Candidate  string
	Accepted   bool
	Confidence float64
	Reason     string
	Line       string
}

// AuditRows flattens candidates into rows ordered by (source, page, line,
// candidate) ascending, so two runs over identical input diff cleanly.
// Rejected candidates are included only when includeRejected is set.
func AuditRows(candidates []Candidate, includeRejected bool) []Row {
	var rows []Row
	for _, c := range candidates {
		if !c.Accepted && !includeRejected {
			continue
		}
		rows = append(rows, Row{
			Source:     c.Source,
			Page:       c.Page,
			LineNo:     c.LineNo,
			Candidate:  c.Text,
			Accepted:   c.Accepted,
			Confidence: c.Confidence,
			Reason:     c.Reason,
			Line:       c.Line,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.LineNo != b.LineNo {
			return a.LineNo < b.LineNo
		}
		return a.Candidate < b.Candidate
	})
	return rows
}
