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

const eventColumns = `id, name, date, cotisation_homme, cotisation_femme, status, description, created_at, updated_at`

// CreateEvent persists a new event.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := s.stamp()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, event.Date.Unix(), event.CotisationHomme, event.CotisationFemme,
		string(event.Status), event.Description, event.CreatedAt.Unix(), event.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// UpdateEvent overwrites an event. Existing dues records keep their snapshotted amounts.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = s.stamp()
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET name = ?, date = ?, cotisation_homme = ?, cotisation_femme = ?, status = ?,
		 description = ?, updated_at = ? WHERE id = ?`,
		event.Name, event.Date.Unix(), event.CotisationHomme, event.CotisationFemme,
		string(event.Status), event.Description, event.UpdatedAt.Unix(), event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireAffected(res, "event", event.ID)
}

// DeleteEvent removes an event; cotisations and transactions cascade.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireAffected(res, "event", id)
}

// ListEvents returns all events ordered by date.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		e                          models.Event
		status                     string
		date, createdAt, updatedAt int64
	)
	if err := row.Scan(&e.ID, &e.Name, &date, &e.CotisationHomme, &e.CotisationFemme,
		&status, &e.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.Date = fromUnix(date)
	e.Status = models.EventStatus(status)
	e.CreatedAt = fromUnix(createdAt)
	e.UpdatedAt = fromUnix(updatedAt)
	return &e, nil
}
