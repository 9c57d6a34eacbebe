// Package httpx exposes the account service over HTTP/JSON.
package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/libauth/internal/logging"
	"github.com/dmitrijs2005/libauth/internal/server/models"
	"github.com/dmitrijs2005/libauth/internal/server/users"
	"github.com/dmitrijs2005/libauth/internal/server/validation"
)

// AccountService is the part of users.Service the HTTP layer needs.
type AccountService interface {
	Register(ctx context.Context, in users.RegisterInput) (*models.PublicUser, error)
	Login(ctx context.Context, email, password string) (*users.LoginResult, error)
	GetProfile(ctx context.Context, userID string) (*models.PublicUser, error)
}

// CookieSettings configures the auth cookie. A nil *CookieSettings means the
// token travels in the Authorization header only.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

const (
	maxBodyBytes       = 1 << 20
	healthCheckTimeout = 2 * time.Second
)

// Router wires HTTP endpoints to the account service.
type Router struct {
	mux       *http.ServeMux
	logger    logging.Logger
	accounts  AccountService
	gate      *Gate
	validator *validation.Validator
	cookie    *CookieSettings
	storage   func(context.Context) error
}

// NewRouter assembles routes. storagePing backs the health report and may be nil.
func NewRouter(logger logging.Logger, accounts AccountService, gate *Gate, cookie *CookieSettings, storagePing func(context.Context) error) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		logger:    logger.With("module", "http"),
		accounts:  accounts,
		gate:      gate,
		validator: validation.New(),
		cookie:    cookie,
		storage:   storagePing,
	}
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.HandleFunc("GET /health", r.logged(r.handleHealth))
	r.mux.HandleFunc("POST /auth/register", r.logged(r.handleRegister))
	r.mux.HandleFunc("POST /auth/login", r.logged(r.handleLogin))
	r.mux.HandleFunc("POST /auth/logout", r.logged(r.handleLogout))
	r.mux.HandleFunc("GET /auth/account", r.logged(r.gate.Require(r.handleAccount)))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// logged records method, path, status and duration of every request.
func (r *Router) logged(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, req)
		r.logger.Info(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	}
}
