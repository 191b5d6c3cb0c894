// Package ledger records dues payments and transactions and derives the
// financial views built on them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/dahira/internal/calculator"
	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/storage"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("invalid input")
	ErrNotAdult       = errors.New("member is under 18 and owes no dues")
	ErrEventCompleted = errors.New("event is completed")
	ErrInvalidCode    = errors.New("invalid security code")
	ErrCodesNotSet    = errors.New("security codes are not configured")
)

// Ledger orchestrates the dues and finance operations over a Store.
type Ledger struct {
	store Store
	now   func() time.Time
}

// New creates a Ledger backed by store.
func New(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// PaymentReceipt describes the outcome of RecordPayment.
type PaymentReceipt struct {
	Cotisation models.Cotisation

	// Accepted is the part of the proposed payment that was applied.
	Accepted int64

	// Truncated is the part that exceeded what was still owed and was dropped.
	Truncated int64

	// Created is true when this payment opened the dues record.
	Created bool
}

// RecordPayment applies a payment from a member toward an event's dues.
// Payments beyond what is still owed are truncated, never carried as credit.
func (l *Ledger) RecordPayment(ctx context.Context, memberID, eventID string, amount int64) (*PaymentReceipt, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}

	member, err := l.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, notFound(err, "failed to get member")
	}
	if !member.IsAdult() {
		return nil, ErrNotAdult
	}

	event, err := l.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, notFound(err, "failed to get event")
	}
	if event.Status == models.EventCompleted {
		return nil, ErrEventCompleted
	}

	receipt, err := l.applyPayment(ctx, member, event, amount)
	if errors.Is(err, storage.ErrDuplicate) {
		// A concurrent first payment created the record; apply against it.
		slog.Debug("Cotisation created concurrently, retrying", "member_id", memberID, "event_id", eventID)
		receipt, err = l.applyPayment(ctx, member, event, amount)
	}
	if err != nil {
		return nil, err
	}

	if receipt.Truncated > 0 {
		slog.Info("Payment truncated to remaining due",
			"member_id", memberID,
			"event_id", eventID,
			"proposed", amount,
			"accepted", receipt.Accepted,
		)
	}
	return receipt, nil
}

func (l *Ledger) applyPayment(ctx context.Context, member *models.Member, event *models.Event, amount int64) (*PaymentReceipt, error) {
	existing, err := l.store.FindCotisation(ctx, member.ID, event.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to find cotisation: %w", err)
	}
	if err != nil {
		existing = nil
	}

	// The due amount is snapshotted on first payment; later rate edits do not apply.
	due := calculator.ResolveDueAmount(member.Gender, *event)
	if existing != nil {
		due = existing.Amount
	}

	result := calculator.ApplyPayment(existing, due, amount, l.now())

	if existing == nil {
		cotisation := &models.Cotisation{
			MemberID:   member.ID,
			EventID:    event.ID,
			Amount:     due,
			PaidAmount: result.NewPaidAmount,
			IsPaid:     result.IsPaid,
			PaidAt:     result.PaidAt,
		}
		if err := l.store.CreateCotisation(ctx, cotisation); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to create cotisation: %w", err)
		}
		return &PaymentReceipt{
			Cotisation: *cotisation,
			Accepted:   result.Accepted,
			Truncated:  result.Truncated,
			Created:    true,
		}, nil
	}

	if result.Accepted == 0 {
		return &PaymentReceipt{Cotisation: *existing, Truncated: result.Truncated}, nil
	}

	update := storage.PaymentUpdate{
		PaidAmount: result.NewPaidAmount,
		IsPaid:     result.IsPaid,
		PaidAt:     result.PaidAt,
	}
	if err := l.store.UpdateCotisation(ctx, existing.ID, update); err != nil {
		return nil, fmt.Errorf("failed to update cotisation: %w", err)
	}

	updated := *existing
	updated.PaidAmount = update.PaidAmount
	updated.IsPaid = update.IsPaid
	updated.PaidAt = update.PaidAt
	return &PaymentReceipt{
		Cotisation: updated,
		Accepted:   result.Accepted,
		Truncated:  result.Truncated,
	}, nil
}

// CotisationFilter narrows ListCotisations. Empty fields match everything.
type CotisationFilter struct {
	MemberID string
	EventID  string
}

// ListCotisations returns the dues records matching filter.
func (l *Ledger) ListCotisations(ctx context.Context, filter CotisationFilter) ([]models.Cotisation, error) {
	all, err := l.store.ListCotisations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cotisations: %w", err)
	}
	out := make([]models.Cotisation, 0, len(all))
	for _, c := range all {
		if filter.MemberID != "" && c.MemberID != filter.MemberID {
			continue
		}
		if filter.EventID != "" && c.EventID != filter.EventID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// EligibleEvents lists the events a member can still pay toward.
// Minors owe nothing and get an empty list.
func (l *Ledger) EligibleEvents(ctx context.Context, memberID string) ([]models.Event, error) {
	member, err := l.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, notFound(err, "failed to get member")
	}
	if !member.IsAdult() {
		return []models.Event{}, nil
	}

	events, err := l.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	cotisations, err := l.store.ListCotisations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cotisations: %w", err)
	}
	return calculator.EligibleEvents(*member, events, cotisations), nil
}

// RecordTransaction validates and stores an income or expense entry.
func (l *Ledger) RecordTransaction(ctx context.Context, transaction *models.Transaction) error {
	if !transaction.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, transaction.Type)
	}
	if !models.ValidCategory(transaction.Type, transaction.Category) {
		return fmt.Errorf("%w: category %q is not allowed for %s", ErrValidation, transaction.Category, transaction.Type)
	}
	if transaction.Amount <= 0 {
		return fmt.Errorf("%w: transaction amount must be positive", ErrValidation)
	}
	if _, err := l.store.GetEvent(ctx, transaction.EventID); err != nil {
		return notFound(err, "failed to get event")
	}

	if err := l.store.CreateTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	if err := l.store.DeleteTransaction(ctx, id); err != nil {
		return notFound(err, "failed to delete transaction")
	}
	return nil
}

// ListTransactions returns transactions newest first, optionally for one event.
func (l *Ledger) ListTransactions(ctx context.Context, eventID string) ([]models.Transaction, error) {
	all, err := l.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if eventID == "" {
		return all, nil
	}
	out := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

// notFound maps storage.ErrNotFound to ErrNotFound and wraps anything else.
func notFound(err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
