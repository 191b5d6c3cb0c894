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

// MemberService implements the Connect MemberService.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a new MemberService with the given storage backend.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// Handler returns the mount path and handler of the service.
// Writes require the admin role.
func (s *MemberService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	admin := adminOnly(opts)
	return rpc.NewServiceHandler(rpc.MemberService,
		rpc.NewRoute(rpc.MemberService, "CreateMember", s.CreateMember, admin...),
		rpc.NewRoute(rpc.MemberService, "UpdateMember", s.UpdateMember, admin...),
		rpc.NewRoute(rpc.MemberService, "DeleteMember", s.DeleteMember, admin...),
		rpc.NewRoute(rpc.MemberService, "ListMembers", s.ListMembers, opts...),
	)
}

// CreateMember registers a new member.
func (s *MemberService) CreateMember(ctx context.Context, req *connect.Request[api.CreateMemberRequest]) (*connect.Response[api.CreateMemberResponse], error) {
	slog.Info("CreateMember request received",
		"first_name", req.Msg.FirstName,
		"gender", req.Msg.Gender,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.checkCommission(ctx, req.Msg.CommissionID); err != nil {
		return nil, err
	}

	member := &models.Member{}
	applyMemberInput(member, req.Msg.MemberInput)
	if err := s.store.CreateMember(ctx, member); err != nil {
		slog.Error("CreateMember failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member created", "member_id", member.ID)
	return connect.NewResponse(&api.CreateMemberResponse{Member: toAPIMember(*member)}), nil
}

// UpdateMember replaces the editable fields of a member.
func (s *MemberService) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	slog.Info("UpdateMember request received", "member_id", req.Msg.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	member, err := s.store.GetMember(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("UpdateMember failed", "member_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	if err := s.checkCommission(ctx, req.Msg.CommissionID); err != nil {
		return nil, err
	}

	applyMemberInput(member, req.Msg.MemberInput)
	if err := s.store.UpdateMember(ctx, member); err != nil {
		slog.Error("UpdateMember failed", "member_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("UpdateMember successful", "member_id", member.ID)
	return connect.NewResponse(&api.UpdateMemberResponse{Member: toAPIMember(*member)}), nil
}

// DeleteMember removes a member. Their dues records are kept so past
// totals do not change.
func (s *MemberService) DeleteMember(ctx context.Context, req *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error) {
	slog.Info("DeleteMember request received", "member_id", req.Msg.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.DeleteMember(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteMember failed", "member_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("DeleteMember successful", "member_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteMemberResponse{}), nil
}

// ListMembers returns every member.
func (s *MemberService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		slog.Error("ListMembers failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: mapSlice(members, toAPIMember)}), nil
}

func (s *MemberService) checkCommission(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	_, err := s.store.GetCommission(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown commission %s", id))
	}
	if err != nil {
		return toConnectError(err)
	}
	return nil
}
