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

const memberColumns = `id, first_name, last_name, gender, age, phone, address, function, position,
	commission_id, commission_role, created_at, updated_at`

// CreateMember persists a new member. ID and timestamps are generated when unset.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	now := s.stamp()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		member.ID, member.FirstName, member.LastName, string(member.Gender), member.Age,
		member.Phone, member.Address, member.Function, member.Position,
		nullString(member.CommissionID), nullString(string(member.CommissionRole)),
		member.CreatedAt.Unix(), member.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	member, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// UpdateMember overwrites every editable field of an existing member.
func (s *SQLiteStore) UpdateMember(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = s.stamp()
	res, err := s.db.ExecContext(ctx,
		`UPDATE members SET first_name = ?, last_name = ?, gender = ?, age = ?, phone = ?, address = ?,
		 function = ?, position = ?, commission_id = ?, commission_role = ?, updated_at = ?
		 WHERE id = ?`,
		member.FirstName, member.LastName, string(member.Gender), member.Age, member.Phone, member.Address,
		member.Function, member.Position, nullString(member.CommissionID), nullString(string(member.CommissionRole)),
		member.UpdatedAt.Unix(), member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return requireAffected(res, "member", member.ID)
}

// DeleteMember removes a member. Their dues records are left in place.
func (s *SQLiteStore) DeleteMember(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if err := requireAffected(res, "member", id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM commission_members WHERE member_id = ?", id); err != nil {
		return fmt.Errorf("failed to detach member from commissions: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE commissions SET president_id = NULL WHERE president_id = ?", id); err != nil {
		return fmt.Errorf("failed to clear commission president: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE commissions SET vice_president_id = NULL WHERE vice_president_id = ?", id); err != nil {
		return fmt.Errorf("failed to clear commission vice-president: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListMembers returns all members in creation order.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+memberColumns+` FROM members ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var (
		m                    models.Member
		gender               string
		commissionID, role   sql.NullString
		createdAt, updatedAt int64
	)
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &gender, &m.Age, &m.Phone, &m.Address,
		&m.Function, &m.Position, &commissionID, &role, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	m.Gender = models.Gender(gender)
	m.CommissionID = commissionID.String
	m.CommissionRole = models.CommissionRole(role.String)
	m.CreatedAt = fromUnix(createdAt)
	m.UpdatedAt = fromUnix(updatedAt)
	return &m, nil
}
