// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/dahira/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write would break a uniqueness rule,
	// such as a second dues record for the same member and event.
	ErrDuplicate = errors.New("duplicate record")
)

// Collection names a logical collection. Successful writes invalidate
// cached reads by collection name.
type Collection string

const (
	Members       Collection = "members"
	Commissions   Collection = "commissions"
	Events        Collection = "events"
	Cotisations   Collection = "cotisations"
	Transactions  Collection = "transactions"
	ReportHistory Collection = "reportHistory"
)

// PaymentUpdate carries the fields a payment may change on a dues record.
type PaymentUpdate struct {
	PaidAmount int64
	IsPaid     bool
	PaidAt     *time.Time
}

// Store defines every persistence operation the service needs.
// List methods return the full current collection; there is no paging.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	CreateMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, id string) (*models.Member, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id string) error
	ListMembers(ctx context.Context) ([]models.Member, error)

	CreateCommission(ctx context.Context, commission *models.Commission) error
	GetCommission(ctx context.Context, id string) (*models.Commission, error)
	UpdateCommission(ctx context.Context, commission *models.Commission) error
	DeleteCommission(ctx context.Context, id string) error
	ListCommissions(ctx context.Context) ([]models.Commission, error)

	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	// DeleteEvent removes the event together with its cotisations and transactions.
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]models.Event, error)

	// CreateCotisation returns ErrDuplicate if (MemberID, EventID) already has a record.
	CreateCotisation(ctx context.Context, cotisation *models.Cotisation) error
	// FindCotisation returns ErrNotFound when the member has no record for the event.
	FindCotisation(ctx context.Context, memberID, eventID string) (*models.Cotisation, error)
	UpdateCotisation(ctx context.Context, id string, update PaymentUpdate) error
	ListCotisations(ctx context.Context) ([]models.Cotisation, error)

	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	// ListTransactions returns transactions newest first.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)

	AddReportRecord(ctx context.Context, record *models.ReportRecord) error
	// ListReportRecords returns at most limit records, newest first.
	ListReportRecords(ctx context.Context, limit int) ([]models.ReportRecord, error)

	GetSecurityCodes(ctx context.Context) (*models.SecurityCodes, error)
	SaveSecurityCodes(ctx context.Context, codes *models.SecurityCodes) error

	// ClearLedger deletes events, cotisations, transactions and report history.
	// Members and commissions are kept.
	ClearLedger(ctx context.Context) error
	// ClearAll deletes every collection except users and security codes.
	ClearAll(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// UserStore is the subset of persistence used by authentication.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
