package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/report"
	"github.com/mmynk/dahira/internal/rpc"
	"github.com/mmynk/dahira/pkg/api"
)

// ReportService implements the Connect ReportService: the dashboard, event
// and annual summaries, and the history of downloaded reports.
type ReportService struct {
	ledger    *ledger.Ledger
	assembler *report.Assembler
}

// NewReportService creates a new ReportService.
func NewReportService(l *ledger.Ledger, assembler *report.Assembler) *ReportService {
	return &ReportService{ledger: l, assembler: assembler}
}

// Handler returns the mount path and handler of the service.
func (s *ReportService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	return rpc.NewServiceHandler(rpc.ReportService,
		rpc.NewRoute(rpc.ReportService, "Dashboard", s.Dashboard, opts...),
		rpc.NewRoute(rpc.ReportService, "EventSummary", s.EventSummary, opts...),
		rpc.NewRoute(rpc.ReportService, "AnnualSummary", s.AnnualSummary, opts...),
		rpc.NewRoute(rpc.ReportService, "ListReportHistory", s.ListReportHistory, opts...),
	)
}

// Dashboard returns the headline counts and global totals.
func (s *ReportService) Dashboard(ctx context.Context, req *connect.Request[api.DashboardRequest]) (*connect.Response[api.DashboardResponse], error) {
	d, err := s.ledger.Dashboard(ctx)
	if err != nil {
		slog.Error("Dashboard failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DashboardResponse{
		MemberCount:     d.MemberCount,
		AdultCount:      d.AdultCount,
		CommissionCount: d.CommissionCount,
		EventCount:      d.EventCount,
		UpcomingCount:   d.UpcomingCount,
		Totals:          toAPITotals(d.Totals),
	}), nil
}

// EventSummary returns the financial summary of one event.
func (s *ReportService) EventSummary(ctx context.Context, req *connect.Request[api.EventSummaryRequest]) (*connect.Response[api.EventSummaryResponse], error) {
	slog.Info("EventSummary request received", "event_id", req.Msg.EventID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	event, summary, err := s.ledger.EventSummary(ctx, req.Msg.EventID)
	if err != nil {
		slog.Error("EventSummary failed", "event_id", req.Msg.EventID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.EventSummaryResponse{
		Event:   toAPIEvent(*event),
		Summary: toAPIEventSummary(summary),
	}), nil
}

// AnnualSummary returns per-event summaries and totals for a calendar year.
func (s *ReportService) AnnualSummary(ctx context.Context, req *connect.Request[api.AnnualSummaryRequest]) (*connect.Response[api.AnnualSummaryResponse], error) {
	slog.Info("AnnualSummary request received", "year", req.Msg.Year)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	annual, err := s.ledger.AnnualSummary(ctx, req.Msg.Year)
	if err != nil {
		slog.Error("AnnualSummary failed", "year", req.Msg.Year, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AnnualSummaryResponse{
		Year:   annual.Year,
		Events: mapSlice(annual.Events, toAPIEventSummary),
		Totals: toAPITotals(annual.Totals),
	}), nil
}

// ListReportHistory returns the most recent report downloads.
func (s *ReportService) ListReportHistory(ctx context.Context, req *connect.Request[api.ListReportHistoryRequest]) (*connect.Response[api.ListReportHistoryResponse], error) {
	records, err := s.assembler.History(ctx)
	if err != nil {
		slog.Error("ListReportHistory failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListReportHistoryResponse{Reports: mapSlice(records, toAPIReportRecord)}), nil
}
