package ledger

import (
	"context"

	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/storage"
)

// Store is the persistence the ledger depends on. storage.Store satisfies it.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store
type Store interface {
	GetMember(ctx context.Context, id string) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	ListCommissions(ctx context.Context) ([]models.Commission, error)

	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)

	CreateCotisation(ctx context.Context, cotisation *models.Cotisation) error
	FindCotisation(ctx context.Context, memberID, eventID string) (*models.Cotisation, error)
	UpdateCotisation(ctx context.Context, id string, update storage.PaymentUpdate) error
	ListCotisations(ctx context.Context) ([]models.Cotisation, error)

	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context) ([]models.Transaction, error)

	GetSecurityCodes(ctx context.Context) (*models.SecurityCodes, error)
	SaveSecurityCodes(ctx context.Context, codes *models.SecurityCodes) error

	ClearLedger(ctx context.Context) error
	ClearAll(ctx context.Context) error
}
