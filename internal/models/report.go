package models

import "time"

// ReportType identifies which aggregation a generated report came from.
type ReportType string

const (
	ReportEvent  ReportType = "event"
	ReportAnnual ReportType = "annual"
)

// ReportRecord is one entry in the report generation history.
type ReportRecord struct {
	ID   string
	Type ReportType
	Name string

	// EventID is set for event reports.
	EventID string

	// Year is set for annual reports.
	Year int

	CreatedAt time.Time
}

// SecurityCodes guard the destructive archive and reset operations.
// Only bcrypt hashes are stored.
type SecurityCodes struct {
	ArchiveCodeHash string
	ResetCodeHash   string
	UpdatedAt       time.Time
}
