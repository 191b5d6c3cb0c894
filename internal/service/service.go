// Package service implements the Connect handlers of the dahira API.
package service

import (
	"slices"

	"connectrpc.com/connect"

	"github.com/mmynk/dahira/internal/middleware"
)

// adminOnly appends the admin gate after the shared handler options, so it
// runs once RequireAuth has put the session role in the context.
func adminOnly(opts []connect.HandlerOption) []connect.HandlerOption {
	return append(slices.Clone(opts), connect.WithInterceptors(middleware.RequireAdmin()))
}
