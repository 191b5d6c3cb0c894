package service

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/rpc"
	"github.com/mmynk/dahira/pkg/api"
)

// PaymentObserver is notified of every recorded payment.
type PaymentObserver interface {
	PaymentRecorded(accepted, truncated int64)
}

// FinanceService implements the Connect FinanceService: dues payments and
// income/expense transactions.
type FinanceService struct {
	ledger   *ledger.Ledger
	observer PaymentObserver
	now      func() time.Time
}

// NewFinanceService creates a FinanceService. observer may be nil.
func NewFinanceService(l *ledger.Ledger, observer PaymentObserver) *FinanceService {
	return &FinanceService{ledger: l, observer: observer, now: time.Now}
}

// Handler returns the mount path and handler of the service.
// Writes require the admin role.
func (s *FinanceService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	admin := adminOnly(opts)
	return rpc.NewServiceHandler(rpc.FinanceService,
		rpc.NewRoute(rpc.FinanceService, "RecordPayment", s.RecordPayment, admin...),
		rpc.NewRoute(rpc.FinanceService, "ListCotisations", s.ListCotisations, opts...),
		rpc.NewRoute(rpc.FinanceService, "EligibleEvents", s.EligibleEvents, opts...),
		rpc.NewRoute(rpc.FinanceService, "CreateTransaction", s.CreateTransaction, admin...),
		rpc.NewRoute(rpc.FinanceService, "DeleteTransaction", s.DeleteTransaction, admin...),
		rpc.NewRoute(rpc.FinanceService, "ListTransactions", s.ListTransactions, opts...),
		rpc.NewRoute(rpc.FinanceService, "ListCategories", s.ListCategories, opts...),
	)
}

// RecordPayment applies a member's payment toward an event's dues.
// The part above what is still owed is reported back as truncated.
func (s *FinanceService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	slog.Info("RecordPayment request received",
		"member_id", req.Msg.MemberID,
		"event_id", req.Msg.EventID,
		"amount", req.Msg.Amount,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	receipt, err := s.ledger.RecordPayment(ctx, req.Msg.MemberID, req.Msg.EventID, req.Msg.Amount)
	if err != nil {
		slog.Error("RecordPayment failed", "error", err)
		return nil, toConnectError(err)
	}
	if s.observer != nil {
		s.observer.PaymentRecorded(receipt.Accepted, receipt.Truncated)
	}

	slog.Info("RecordPayment successful",
		"cotisation_id", receipt.Cotisation.ID,
		"accepted", receipt.Accepted,
		"is_paid", receipt.Cotisation.IsPaid,
	)
	return connect.NewResponse(&api.RecordPaymentResponse{
		Cotisation: toAPICotisation(receipt.Cotisation),
		Accepted:   receipt.Accepted,
		Truncated:  receipt.Truncated,
		Created:    receipt.Created,
	}), nil
}

// ListCotisations returns dues records, optionally narrowed to a member or an event.
func (s *FinanceService) ListCotisations(ctx context.Context, req *connect.Request[api.ListCotisationsRequest]) (*connect.Response[api.ListCotisationsResponse], error) {
	cotisations, err := s.ledger.ListCotisations(ctx, ledger.CotisationFilter{
		MemberID: req.Msg.MemberID,
		EventID:  req.Msg.EventID,
	})
	if err != nil {
		slog.Error("ListCotisations failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListCotisationsResponse{Cotisations: mapSlice(cotisations, toAPICotisation)}), nil
}

// EligibleEvents lists the events a member still owes dues for.
func (s *FinanceService) EligibleEvents(ctx context.Context, req *connect.Request[api.EligibleEventsRequest]) (*connect.Response[api.EligibleEventsResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	events, err := s.ledger.EligibleEvents(ctx, req.Msg.MemberID)
	if err != nil {
		slog.Error("EligibleEvents failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.EligibleEventsResponse{Events: mapSlice(events, toAPIEvent)}), nil
}

// CreateTransaction records an income or expense for an event.
// A missing date defaults to today.
func (s *FinanceService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	slog.Info("CreateTransaction request received",
		"event_id", req.Msg.EventID,
		"type", req.Msg.Type,
		"category", req.Msg.Category,
		"amount", req.Msg.Amount,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	date := s.now().UTC().Truncate(24 * time.Hour)
	if req.Msg.Date != "" {
		var err error
		if date, err = parseDate(req.Msg.Date); err != nil {
			return nil, toConnectError(err)
		}
	}

	transaction := &models.Transaction{
		EventID:     req.Msg.EventID,
		Type:        models.TransactionType(req.Msg.Type),
		Category:    req.Msg.Category,
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
		Date:        date,
	}
	if err := s.ledger.RecordTransaction(ctx, transaction); err != nil {
		slog.Error("CreateTransaction failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Transaction created", "transaction_id", transaction.ID)
	return connect.NewResponse(&api.CreateTransactionResponse{Transaction: toAPITransaction(*transaction)}), nil
}

// DeleteTransaction removes a transaction.
func (s *FinanceService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	slog.Info("DeleteTransaction request received", "transaction_id", req.Msg.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.ledger.DeleteTransaction(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("DeleteTransaction successful", "transaction_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

// ListTransactions returns transactions newest first, optionally for one event.
func (s *FinanceService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	transactions, err := s.ledger.ListTransactions(ctx, req.Msg.EventID)
	if err != nil {
		slog.Error("ListTransactions failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: mapSlice(transactions, toAPITransaction)}), nil
}

// ListCategories returns the allowed transaction categories per type.
func (s *FinanceService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return connect.NewResponse(&api.ListCategoriesResponse{
		Income:  slices.Clone(models.IncomeCategories),
		Expense: slices.Clone(models.ExpenseCategories),
	}), nil
}
