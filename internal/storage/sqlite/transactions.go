package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/dahira/internal/models"
)

// CreateTransaction persists a new income or expense entry.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	now := s.stamp()
	if transaction.Date.IsZero() {
		transaction.Date = now
	}
	transaction.CreatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, event_id, type, category, amount, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		transaction.ID, transaction.EventID, string(transaction.Type), transaction.Category,
		transaction.Amount, transaction.Description, transaction.Date.Unix(), transaction.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireAffected(res, "transaction", id)
}

// ListTransactions returns every transaction, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, type, category, amount, description, date, created_at
		 FROM transactions ORDER BY date DESC, created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var txType string
		var date, createdAt int64
		if err := rows.Scan(&t.ID, &t.EventID, &txType, &t.Category, &t.Amount, &t.Description,
			&date, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = models.TransactionType(txType)
		t.Date = fromUnix(date)
		t.CreatedAt = fromUnix(createdAt)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}
