package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/rpc"
	"github.com/mmynk/dahira/internal/storage"
	"github.com/mmynk/dahira/pkg/api"
)

// EventService implements the Connect EventService.
type EventService struct {
	store storage.Store
}

// NewEventService creates a new EventService with the given storage backend.
func NewEventService(store storage.Store) *EventService {
	return &EventService{store: store}
}

// Handler returns the mount path and handler of the service.
// Writes require the admin role.
func (s *EventService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	admin := adminOnly(opts)
	return rpc.NewServiceHandler(rpc.EventService,
		rpc.NewRoute(rpc.EventService, "CreateEvent", s.CreateEvent, admin...),
		rpc.NewRoute(rpc.EventService, "UpdateEvent", s.UpdateEvent, admin...),
		rpc.NewRoute(rpc.EventService, "DeleteEvent", s.DeleteEvent, admin...),
		rpc.NewRoute(rpc.EventService, "ListEvents", s.ListEvents, opts...),
	)
}

// CreateEvent creates a new event with its per-gender dues rates.
func (s *EventService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	slog.Info("CreateEvent request received",
		"name", req.Msg.Name,
		"date", req.Msg.Date,
		"cotisation_homme", req.Msg.CotisationHomme,
		"cotisation_femme", req.Msg.CotisationFemme,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	event := &models.Event{}
	if err := applyEventInput(event, req.Msg.EventInput); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		slog.Error("CreateEvent failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Event created", "event_id", event.ID)
	return connect.NewResponse(&api.CreateEventResponse{Event: toAPIEvent(*event)}), nil
}

// UpdateEvent replaces an event's fields. Dues records already opened
// keep the amount they were created with.
func (s *EventService) UpdateEvent(ctx context.Context, req *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error) {
	slog.Info("UpdateEvent request received", "event_id", req.Msg.ID, "status", req.Msg.Status)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	event, err := s.store.GetEvent(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("UpdateEvent failed", "event_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	if err := applyEventInput(event, req.Msg.EventInput); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		slog.Error("UpdateEvent failed", "event_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("UpdateEvent successful", "event_id", event.ID)
	return connect.NewResponse(&api.UpdateEventResponse{Event: toAPIEvent(*event)}), nil
}

// DeleteEvent removes an event together with its dues and transactions.
func (s *EventService) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	slog.Info("DeleteEvent request received", "event_id", req.Msg.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.DeleteEvent(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteEvent failed", "event_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("DeleteEvent successful", "event_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteEventResponse{}), nil
}

// ListEvents returns every event ordered by date.
func (s *EventService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		slog.Error("ListEvents failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListEventsResponse{Events: mapSlice(events, toAPIEvent)}), nil
}
