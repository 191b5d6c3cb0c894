package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/storage"
)

// AddReportRecord appends an entry to the report generation history.
func (s *SQLiteStore) AddReportRecord(ctx context.Context, record *models.ReportRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.stamp()
	}

	var year interface{}
	if record.Year != 0 {
		year = record.Year
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO report_history (id, type, name, event_id, year, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		record.ID, string(record.Type), record.Name, nullString(record.EventID), year, record.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert report record: %w", err)
	}
	return nil
}

// ListReportRecords returns the latest report records.
func (s *SQLiteStore) ListReportRecords(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, name, event_id, year, created_at FROM report_history
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list report records: %w", err)
	}
	defer rows.Close()

	records := []models.ReportRecord{}
	for rows.Next() {
		var r models.ReportRecord
		var reportType string
		var eventID sql.NullString
		var year sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&r.ID, &reportType, &r.Name, &eventID, &year, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan report record: %w", err)
		}
		r.Type = models.ReportType(reportType)
		r.EventID = eventID.String
		r.Year = int(year.Int64)
		r.CreatedAt = fromUnix(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report records: %w", err)
	}
	return records, nil
}

// GetSecurityCodes returns the stored code hashes, or storage.ErrNotFound before the first save.
func (s *SQLiteStore) GetSecurityCodes(ctx context.Context) (*models.SecurityCodes, error) {
	codes := &models.SecurityCodes{}
	var updatedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT archive_code_hash, reset_code_hash, updated_at FROM security_codes WHERE id = 1",
	).Scan(&codes.ArchiveCodeHash, &codes.ResetCodeHash, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("security codes: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get security codes: %w", err)
	}
	codes.UpdatedAt = fromUnix(updatedAt)
	return codes, nil
}

// SaveSecurityCodes upserts the single security codes row.
func (s *SQLiteStore) SaveSecurityCodes(ctx context.Context, codes *models.SecurityCodes) error {
	codes.UpdatedAt = s.stamp()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO security_codes (id, archive_code_hash, reset_code_hash, updated_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET archive_code_hash = excluded.archive_code_hash,
		 reset_code_hash = excluded.reset_code_hash, updated_at = excluded.updated_at`,
		codes.ArchiveCodeHash, codes.ResetCodeHash, codes.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save security codes: %w", err)
	}
	return nil
}
