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

// CreateCommission persists a new commission and its member list.
func (s *SQLiteStore) CreateCommission(ctx context.Context, commission *models.Commission) error {
	if commission.ID == "" {
		commission.ID = uuid.New().String()
	}
	now := s.stamp()
	if commission.CreatedAt.IsZero() {
		commission.CreatedAt = now
	}
	commission.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO commissions (id, name, description, president_id, vice_president_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		commission.ID, commission.Name, commission.Description,
		nullString(commission.PresidentID), nullString(commission.VicePresidentID),
		commission.CreatedAt.Unix(), commission.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert commission: %w", err)
	}

	if err := insertCommissionMembers(ctx, tx, commission); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCommission retrieves a commission by ID, including its member IDs.
func (s *SQLiteStore) GetCommission(ctx context.Context, id string) (*models.Commission, error) {
	commission := &models.Commission{}
	var president, vice sql.NullString
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, president_id, vice_president_id, created_at, updated_at
		 FROM commissions WHERE id = ?`, id,
	).Scan(&commission.ID, &commission.Name, &commission.Description, &president, &vice, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("commission %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commission: %w", err)
	}
	commission.PresidentID = president.String
	commission.VicePresidentID = vice.String
	commission.CreatedAt = fromUnix(createdAt)
	commission.UpdatedAt = fromUnix(updatedAt)

	members, err := s.commissionMembers(ctx)
	if err != nil {
		return nil, err
	}
	commission.MemberIDs = members[commission.ID]
	if commission.MemberIDs == nil {
		commission.MemberIDs = []string{}
	}
	return commission, nil
}

// UpdateCommission replaces a commission's fields and member list.
func (s *SQLiteStore) UpdateCommission(ctx context.Context, commission *models.Commission) error {
	commission.UpdatedAt = s.stamp()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE commissions SET name = ?, description = ?, president_id = ?, vice_president_id = ?, updated_at = ?
		 WHERE id = ?`,
		commission.Name, commission.Description, nullString(commission.PresidentID),
		nullString(commission.VicePresidentID), commission.UpdatedAt.Unix(), commission.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update commission: %w", err)
	}
	if err := requireAffected(res, "commission", commission.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM commission_members WHERE commission_id = ?", commission.ID); err != nil {
		return fmt.Errorf("failed to delete old commission members: %w", err)
	}
	if err := insertCommissionMembers(ctx, tx, commission); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteCommission removes a commission and detaches its members.
func (s *SQLiteStore) DeleteCommission(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM commissions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete commission: %w", err)
	}
	if err := requireAffected(res, "commission", id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE members SET commission_id = NULL, commission_role = NULL WHERE commission_id = ?", id); err != nil {
		return fmt.Errorf("failed to detach members: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListCommissions returns all commissions ordered by name.
func (s *SQLiteStore) ListCommissions(ctx context.Context) ([]models.Commission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, president_id, vice_president_id, created_at, updated_at
		 FROM commissions ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	defer rows.Close()

	commissions := []models.Commission{}
	for rows.Next() {
		var c models.Commission
		var president, vice sql.NullString
		var createdAt, updatedAt int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &president, &vice, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan commission: %w", err)
		}
		c.PresidentID = president.String
		c.VicePresidentID = vice.String
		c.CreatedAt = fromUnix(createdAt)
		c.UpdatedAt = fromUnix(updatedAt)
		commissions = append(commissions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commissions: %w", err)
	}
	rows.Close()

	members, err := s.commissionMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range commissions {
		commissions[i].MemberIDs = members[commissions[i].ID]
		if commissions[i].MemberIDs == nil {
			commissions[i].MemberIDs = []string{}
		}
	}
	return commissions, nil
}

func (s *SQLiteStore) commissionMembers(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT commission_id, member_id FROM commission_members ORDER BY commission_id, position")
	if err != nil {
		return nil, fmt.Errorf("failed to get commission members: %w", err)
	}
	defer rows.Close()

	members := make(map[string][]string)
	for rows.Next() {
		var commissionID, memberID string
		if err := rows.Scan(&commissionID, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan commission member: %w", err)
		}
		members[commissionID] = append(members[commissionID], memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commission members: %w", err)
	}
	return members, nil
}

func insertCommissionMembers(ctx context.Context, tx *sql.Tx, commission *models.Commission) error {
	seen := make(map[string]bool, len(commission.MemberIDs))
	position := 0
	for _, memberID := range commission.MemberIDs {
		if seen[memberID] {
			continue
		}
		seen[memberID] = true
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO commission_members (commission_id, member_id, position) VALUES (?, ?, ?)",
			commission.ID, memberID, position,
		); err != nil {
			return fmt.Errorf("failed to insert commission member: %w", err)
		}
		position++
	}
	return nil
}
