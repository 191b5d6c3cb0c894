package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/middleware"
	"github.com/mmynk/dahira/internal/rpc"
	"github.com/mmynk/dahira/pkg/api"
)

// AdminService implements the Connect AdminService. Every procedure
// requires the admin role, and archive and reset also need their code.
type AdminService struct {
	ledger *ledger.Ledger
}

// NewAdminService creates a new AdminService.
func NewAdminService(l *ledger.Ledger) *AdminService {
	return &AdminService{ledger: l}
}

// Handler returns the mount path and handler of the service.
func (s *AdminService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	admin := adminOnly(opts)
	return rpc.NewServiceHandler(rpc.AdminService,
		rpc.NewRoute(rpc.AdminService, "Archive", s.Archive, admin...),
		rpc.NewRoute(rpc.AdminService, "Reset", s.Reset, admin...),
		rpc.NewRoute(rpc.AdminService, "UpdateSecurityCodes", s.UpdateSecurityCodes, admin...),
	)
}

// Archive exports everything and clears the ledger for a new season.
func (s *AdminService) Archive(ctx context.Context, req *connect.Request[api.ArchiveRequest]) (*connect.Response[api.ArchiveResponse], error) {
	slog.Info("Archive request received", "user_id", middleware.GetUserID(ctx))

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	export, err := s.ledger.Archive(ctx, req.Msg.Code)
	if err != nil {
		slog.Warn("Archive failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ArchiveResponse{Export: api.Export{
		ExportDate:   export.ExportDate,
		Members:      mapSlice(export.Members, toAPIMember),
		Commissions:  mapSlice(export.Commissions, toAPICommission),
		Events:       mapSlice(export.Events, toAPIEvent),
		Cotisations:  mapSlice(export.Cotisations, toAPICotisation),
		Transactions: mapSlice(export.Transactions, toAPITransaction),
	}}), nil
}

// Reset deletes all members, commissions, events, dues, transactions and report history.
func (s *AdminService) Reset(ctx context.Context, req *connect.Request[api.ResetRequest]) (*connect.Response[api.ResetResponse], error) {
	slog.Info("Reset request received", "user_id", middleware.GetUserID(ctx))

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.ledger.Reset(ctx, req.Msg.Code); err != nil {
		slog.Warn("Reset failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ResetResponse{}), nil
}

// UpdateSecurityCodes replaces the archive and reset codes.
func (s *AdminService) UpdateSecurityCodes(ctx context.Context, req *connect.Request[api.UpdateSecurityCodesRequest]) (*connect.Response[api.UpdateSecurityCodesResponse], error) {
	slog.Info("UpdateSecurityCodes request received", "user_id", middleware.GetUserID(ctx))

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.ledger.UpdateSecurityCodes(ctx, req.Msg.ArchiveCode, req.Msg.ResetCode); err != nil {
		slog.Error("UpdateSecurityCodes failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("UpdateSecurityCodes successful")
	return connect.NewResponse(&api.UpdateSecurityCodesResponse{}), nil
}
