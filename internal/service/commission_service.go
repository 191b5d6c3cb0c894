package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/rpc"
	"github.com/mmynk/dahira/internal/storage"
	"github.com/mmynk/dahira/pkg/api"
)

// CommissionService implements the Connect CommissionService.
type CommissionService struct {
	store storage.Store
}

// NewCommissionService creates a new CommissionService with the given storage backend.
func NewCommissionService(store storage.Store) *CommissionService {
	return &CommissionService{store: store}
}

// Handler returns the mount path and handler of the service.
// Writes require the admin role.
func (s *CommissionService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	admin := adminOnly(opts)
	return rpc.NewServiceHandler(rpc.CommissionService,
		rpc.NewRoute(rpc.CommissionService, "CreateCommission", s.CreateCommission, admin...),
		rpc.NewRoute(rpc.CommissionService, "UpdateCommission", s.UpdateCommission, admin...),
		rpc.NewRoute(rpc.CommissionService, "DeleteCommission", s.DeleteCommission, admin...),
		rpc.NewRoute(rpc.CommissionService, "ListCommissions", s.ListCommissions, opts...),
	)
}

// CreateCommission creates a new commission.
func (s *CommissionService) CreateCommission(ctx context.Context, req *connect.Request[api.CreateCommissionRequest]) (*connect.Response[api.CreateCommissionResponse], error) {
	slog.Info("CreateCommission request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberIDs),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.checkMembers(ctx, req.Msg.CommissionInput); err != nil {
		return nil, err
	}

	commission := &models.Commission{}
	applyCommissionInput(commission, req.Msg.CommissionInput)
	if err := s.store.CreateCommission(ctx, commission); err != nil {
		slog.Error("CreateCommission failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Commission created", "commission_id", commission.ID)
	return connect.NewResponse(&api.CreateCommissionResponse{Commission: toAPICommission(*commission)}), nil
}

// UpdateCommission replaces a commission's fields and member list.
func (s *CommissionService) UpdateCommission(ctx context.Context, req *connect.Request[api.UpdateCommissionRequest]) (*connect.Response[api.UpdateCommissionResponse], error) {
	slog.Info("UpdateCommission request received", "commission_id", req.Msg.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	commission, err := s.store.GetCommission(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("UpdateCommission failed", "commission_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	if err := s.checkMembers(ctx, req.Msg.CommissionInput); err != nil {
		return nil, err
	}

	applyCommissionInput(commission, req.Msg.CommissionInput)
	if err := s.store.UpdateCommission(ctx, commission); err != nil {
		slog.Error("UpdateCommission failed", "commission_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("UpdateCommission successful", "commission_id", commission.ID)
	return connect.NewResponse(&api.UpdateCommissionResponse{Commission: toAPICommission(*commission)}), nil
}

// DeleteCommission removes a commission and detaches its members.
func (s *CommissionService) DeleteCommission(ctx context.Context, req *connect.Request[api.DeleteCommissionRequest]) (*connect.Response[api.DeleteCommissionResponse], error) {
	slog.Info("DeleteCommission request received", "commission_id", req.Msg.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.DeleteCommission(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteCommission failed", "commission_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("DeleteCommission successful", "commission_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteCommissionResponse{}), nil
}

// ListCommissions returns every commission.
func (s *CommissionService) ListCommissions(ctx context.Context, req *connect.Request[api.ListCommissionsRequest]) (*connect.Response[api.ListCommissionsResponse], error) {
	commissions, err := s.store.ListCommissions(ctx)
	if err != nil {
		slog.Error("ListCommissions failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListCommissionsResponse{Commissions: mapSlice(commissions, toAPICommission)}), nil
}

// checkMembers rejects references to members that do not exist.
func (s *CommissionService) checkMembers(ctx context.Context, in api.CommissionInput) error {
	ids := append([]string{in.PresidentID, in.VicePresidentID}, in.MemberIDs...)
	for _, id := range ids {
		if id == "" {
			continue
		}
		_, err := s.store.GetMember(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown member %s", id))
		}
		if err != nil {
			return toConnectError(err)
		}
	}
	return nil
}

func applyCommissionInput(c *models.Commission, in api.CommissionInput) {
	c.Name = in.Name
	c.Description = in.Description
	c.PresidentID = in.PresidentID
	c.VicePresidentID = in.VicePresidentID
	c.MemberIDs = in.MemberIDs
	if c.MemberIDs == nil {
		c.MemberIDs = []string{}
	}
}
