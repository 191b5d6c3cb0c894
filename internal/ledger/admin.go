package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/storage"
)

// Export is the archive payload written before the ledger is cleared.
type Export struct {
	ExportDate   time.Time
	Members      []models.Member
	Commissions  []models.Commission
	Events       []models.Event
	Cotisations  []models.Cotisation
	Transactions []models.Transaction
}

// EnsureSecurityCodes stores initial codes when none exist yet.
// Existing codes are never overwritten.
func (l *Ledger) EnsureSecurityCodes(ctx context.Context, archiveCode, resetCode string) error {
	_, err := l.store.GetSecurityCodes(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to get security codes: %w", err)
	}
	if archiveCode == "" || resetCode == "" {
		slog.Warn("No security codes configured; archive and reset are disabled")
		return nil
	}
	return l.UpdateSecurityCodes(ctx, archiveCode, resetCode)
}

// UpdateSecurityCodes replaces both codes.
func (l *Ledger) UpdateSecurityCodes(ctx context.Context, archiveCode, resetCode string) error {
	if archiveCode == "" || resetCode == "" {
		return fmt.Errorf("%w: both codes are required", ErrValidation)
	}
	archiveHash, err := bcrypt.GenerateFromPassword([]byte(archiveCode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash archive code: %w", err)
	}
	resetHash, err := bcrypt.GenerateFromPassword([]byte(resetCode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash reset code: %w", err)
	}

	codes := &models.SecurityCodes{
		ArchiveCodeHash: string(archiveHash),
		ResetCodeHash:   string(resetHash),
	}
	if err := l.store.SaveSecurityCodes(ctx, codes); err != nil {
		return fmt.Errorf("failed to save security codes: %w", err)
	}
	return nil
}

func (l *Ledger) checkCode(ctx context.Context, code string, hash func(*models.SecurityCodes) string) error {
	codes, err := l.store.GetSecurityCodes(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrCodesNotSet
	}
	if err != nil {
		return fmt.Errorf("failed to get security codes: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash(codes)), []byte(code)); err != nil {
		return ErrInvalidCode
	}
	return nil
}

// Archive exports the whole dataset and then clears events, dues,
// transactions and report history. Members and commissions are kept.
func (l *Ledger) Archive(ctx context.Context, code string) (*Export, error) {
	if err := l.checkCode(ctx, code, func(c *models.SecurityCodes) string { return c.ArchiveCodeHash }); err != nil {
		return nil, err
	}

	snap, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	export := &Export{
		ExportDate:   l.now().UTC(),
		Members:      snap.Members,
		Commissions:  snap.Commissions,
		Events:       snap.Events,
		Cotisations:  snap.Cotisations,
		Transactions: snap.Transactions,
	}

	if err := l.store.ClearLedger(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear ledger: %w", err)
	}
	slog.Info("Ledger archived",
		"events", len(export.Events),
		"cotisations", len(export.Cotisations),
		"transactions", len(export.Transactions),
	)
	return export, nil
}

// Reset deletes every collection except users and security codes.
func (l *Ledger) Reset(ctx context.Context, code string) error {
	if err := l.checkCode(ctx, code, func(c *models.SecurityCodes) string { return c.ResetCodeHash }); err != nil {
		return err
	}
	if err := l.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	slog.Warn("All data reset")
	return nil
}
