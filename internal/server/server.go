// Package server assembles the HTTP surface: Connect services, report
// downloads, health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/dahira/internal/auth"
	"github.com/mmynk/dahira/internal/config"
	"github.com/mmynk/dahira/internal/metrics"
	"github.com/mmynk/dahira/internal/middleware"
	"github.com/mmynk/dahira/internal/report"
	"github.com/mmynk/dahira/internal/service"
)

// Mount builds a Connect service handler from the shared handler options.
type Mount func(opts ...connect.HandlerOption) (string, http.Handler)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
	Reports    *report.Renderer
	Services   []Mount

	// LoginRateLimit is the number of Login calls allowed per IP per minute.
	LoginRateLimit int
	CORSOrigins    []string
}

// NewRouter constructs the chi router serving every endpoint.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		params.Metrics.Middleware,
		requestLogger,
		cors(params.CORSOrigins),
		limitPath(service.LoginProcedure, loginLimiter(params.LoginRateLimit)),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	handlerOpts := connect.WithInterceptors(
		middleware.MetricsInterceptor(params.Metrics),
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(params.JWTManager, service.LoginProcedure),
	)
	for _, mount := range params.Services {
		path, handler := mount(handlerOpts)
		r.Handle(path+"*", handler)
	}

	reports := &reportHandler{renderer: params.Reports, metrics: params.Metrics}
	r.Group(func(r chi.Router) {
		r.Use(requireBearer(params.JWTManager))
		r.Get("/reports/events/{id}", reports.handleEvent)
		r.Get("/reports/annual/{year}", reports.handleAnnual)
	})

	return r
}

func loginLimiter(limit int) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = 10
	}
	return httprate.Limit(limit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			problem(w, http.StatusTooManyRequests, "Too many login attempts", "try again in a minute")
		}),
	)
}

// limitPath applies limiter to requests for one exact path only.
func limitPath(path string, limiter func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == path {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// New wraps handler in an http.Server speaking h2c, which Connect needs
// for HTTP/2 without TLS.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: cfg.AppReadTimeout,
		WriteTimeout:      cfg.AppWriteTimeout,
	}
}

// Run serves on srv.Addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, srv, ln, shutdownTimeout)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
