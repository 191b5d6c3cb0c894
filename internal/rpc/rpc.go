package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Package is the protobuf-style package all services live under.
const Package = "dahira.v1"

// Service names.
const (
	AuthService       = "AuthService"
	MemberService     = "MemberService"
	CommissionService = "CommissionService"
	EventService      = "EventService"
	FinanceService    = "FinanceService"
	ReportService     = "ReportService"
	AdminService      = "AdminService"
)

// ServicePath returns the URL prefix of a service, e.g. "/dahira.v1.MemberService/".
func ServicePath(service string) string {
	return "/" + Package + "." + service + "/"
}

// Procedure returns the full procedure name, e.g. "/dahira.v1.MemberService/ListMembers".
func Procedure(service, method string) string {
	return ServicePath(service) + method
}

// Route binds one procedure to its Connect handler.
type Route struct {
	Procedure string
	Handler   http.Handler
}

// NewRoute builds a unary route speaking the JSON codec.
func NewRoute[Req, Res any](
	service, method string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts ...connect.HandlerOption,
) Route {
	procedure := Procedure(service, method)
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	return Route{
		Procedure: procedure,
		Handler:   connect.NewUnaryHandler(procedure, fn, opts...),
	}
}

// NewServiceHandler mounts routes under the service path. Unknown methods get 404.
func NewServiceHandler(service string, routes ...Route) (string, http.Handler) {
	path := ServicePath(service)
	byProcedure := make(map[string]http.Handler, len(routes))
	for _, r := range routes {
		if !strings.HasPrefix(r.Procedure, path) {
			panic("rpc: procedure " + r.Procedure + " does not belong to " + service)
		}
		byProcedure[r.Procedure] = r.Handler
	}
	return path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := byProcedure[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// NewClient creates a unary client for one procedure using the JSON codec.
func NewClient[Req, Res any](httpClient connect.HTTPClient, baseURL, service, method string, opts ...connect.ClientOption) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+Procedure(service, method), opts...)
}
