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

const cotisationColumns = `id, member_id, event_id, amount, paid_amount, is_paid, paid_at, created_at, updated_at`

// CreateCotisation persists a new dues record.
// A second record for the same member and event fails with storage.ErrDuplicate.
func (s *SQLiteStore) CreateCotisation(ctx context.Context, cotisation *models.Cotisation) error {
	if cotisation.ID == "" {
		cotisation.ID = uuid.New().String()
	}
	now := s.stamp()
	if cotisation.CreatedAt.IsZero() {
		cotisation.CreatedAt = now
	}
	cotisation.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cotisations (`+cotisationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cotisation.ID, cotisation.MemberID, cotisation.EventID, cotisation.Amount, cotisation.PaidAmount,
		cotisation.IsPaid, nullTime(cotisation.PaidAt), cotisation.CreatedAt.Unix(), cotisation.UpdatedAt.Unix(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("cotisation for member %s and event %s: %w",
			cotisation.MemberID, cotisation.EventID, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert cotisation: %w", err)
	}
	return nil
}

// FindCotisation retrieves the dues record of a member for an event.
func (s *SQLiteStore) FindCotisation(ctx context.Context, memberID, eventID string) (*models.Cotisation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cotisationColumns+` FROM cotisations WHERE member_id = ? AND event_id = ?`,
		memberID, eventID,
	)
	cotisation, err := scanCotisation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cotisation for member %s and event %s: %w", memberID, eventID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cotisation: %w", err)
	}
	return cotisation, nil
}

// UpdateCotisation applies a payment update to an existing record.
// The snapshotted amount is never touched.
func (s *SQLiteStore) UpdateCotisation(ctx context.Context, id string, update storage.PaymentUpdate) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cotisations SET paid_amount = ?, is_paid = ?, paid_at = ?, updated_at = ? WHERE id = ?`,
		update.PaidAmount, update.IsPaid, nullTime(update.PaidAt), s.stamp().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update cotisation: %w", err)
	}
	return requireAffected(res, "cotisation", id)
}

// ListCotisations returns every dues record.
func (s *SQLiteStore) ListCotisations(ctx context.Context) ([]models.Cotisation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+cotisationColumns+` FROM cotisations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cotisations: %w", err)
	}
	defer rows.Close()

	cotisations := []models.Cotisation{}
	for rows.Next() {
		cotisation, err := scanCotisation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cotisation: %w", err)
		}
		cotisations = append(cotisations, *cotisation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cotisations: %w", err)
	}
	return cotisations, nil
}

func scanCotisation(row rowScanner) (*models.Cotisation, error) {
	var (
		c                    models.Cotisation
		paidAt               sql.NullInt64
		createdAt, updatedAt int64
	)
	if err := row.Scan(&c.ID, &c.MemberID, &c.EventID, &c.Amount, &c.PaidAmount, &c.IsPaid,
		&paidAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.PaidAt = timePtr(paidAt)
	c.CreatedAt = fromUnix(createdAt)
	c.UpdatedAt = fromUnix(updatedAt)
	return &c, nil
}
