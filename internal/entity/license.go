package entity

import "time"

// LicenseRecord represents one welder's license for data transfer between
// layers: roster ingestion, OCR merge, persistence and export all speak
// this shape.
type LicenseRecord struct {
	Source        string     `json:"source"`
	Name          string     `json:"name,omitempty"`
	LicenseNo     string     `json:"license_no,omitempty"`
	Qualification string     `json:"qualification,omitempty"`
	IssueDate     *time.Time `json:"issue_date,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	Confidence    float64    `json:"confidence,omitempty"`
	Origins       []string   `json:"origins,omitempty"`
}
