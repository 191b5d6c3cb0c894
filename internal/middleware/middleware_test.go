package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dahira/internal/auth"
	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/rpc"
)

type whoamiRequest struct{}

type whoamiResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func whoami(ctx context.Context, _ *connect.Request[whoamiRequest]) (*connect.Response[whoamiResponse], error) {
	return connect.NewResponse(&whoamiResponse{Username: GetUsername(ctx), Role: string(GetRole(ctx))}), nil
}

type recordingObserver struct {
	codes []string
}

func (o *recordingObserver) ObserveRPC(_, code string, _ time.Duration) {
	o.codes = append(o.codes, code)
}

func TestInterceptors(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	observer := &recordingObserver{}

	interceptors := connect.WithInterceptors(
		MetricsInterceptor(observer),
		LoggingInterceptor(),
		RequireAuth(jwtManager, rpc.Procedure("TestService", "Public")),
	)
	path, handler := rpc.NewServiceHandler("TestService",
		rpc.NewRoute("TestService", "Public", whoami, interceptors),
		rpc.NewRoute("TestService", "WhoAmI", whoami, interceptors),
		rpc.NewRoute("TestService", "AdminOnly", whoami, interceptors, connect.WithInterceptors(RequireAdmin())),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	call := func(method, token string) (*whoamiResponse, error) {
		client := rpc.NewClient[whoamiRequest, whoamiResponse](http.DefaultClient, server.URL, "TestService", method)
		req := connect.NewRequest(&whoamiRequest{})
		if token != "" {
			req.Header().Set("Authorization", "Bearer "+token)
		}
		resp, err := client.CallUnary(context.Background(), req)
		if err != nil {
			return nil, err
		}
		return resp.Msg, nil
	}

	adminToken, err := jwtManager.Generate(models.NewUser("admin", "x", models.RoleAdmin))
	require.NoError(t, err)
	userToken, err := jwtManager.Generate(models.NewUser("user", "x", models.RoleUser))
	require.NoError(t, err)

	t.Run("public procedure needs no token", func(t *testing.T) {
		resp, err := call("Public", "")
		require.NoError(t, err)
		assert.Empty(t, resp.Username)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := call("WhoAmI", "")
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := call("WhoAmI", "not-a-jwt")
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("claims reach the handler", func(t *testing.T) {
		resp, err := call("WhoAmI", userToken)
		require.NoError(t, err)
		assert.Equal(t, "user", resp.Username)
		assert.Equal(t, "user", resp.Role)
	})

	t.Run("admin gate", func(t *testing.T) {
		_, err := call("AdminOnly", userToken)
		assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

		resp, err := call("AdminOnly", adminToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
	})

	assert.Contains(t, observer.codes, "unauthenticated")
	assert.Contains(t, observer.codes, "permission_denied")
	assert.Contains(t, observer.codes, "ok")
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, auth.ErrMissingToken)
	_, err = BearerToken("Basic abc")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
