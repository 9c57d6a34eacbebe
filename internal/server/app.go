// Package server initializes and runs the account service. It opens the
// configured credential store, assembles the auth components, handles
// graceful shutdown and serves the HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/libauth/internal/logging"
	"github.com/dmitrijs2005/libauth/internal/server/auth"
	"github.com/dmitrijs2005/libauth/internal/server/config"
	"github.com/dmitrijs2005/libauth/internal/server/httpx"
	"github.com/dmitrijs2005/libauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libauth/internal/server/users"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	handler http.Handler
}

// NewApp builds the application from cfg, logging JSON to stdout.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, logging.NewJSON(os.Stdout, level))
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if cfg.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "using the default JWT secret; set JWT_SECRET or -s outside development")
	}

	hasher, err := auth.NewHasher(cfg.HashCost)
	if err != nil {
		return nil, err
	}

	issuer, err := auth.NewIssuer(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	repos, err := repomanager.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	us := users.NewService(repos.Users(), hasher, issuer, logger)

	var (
		extractor httpx.TokenExtractor = httpx.HeaderExtractor{}
		cookie    *httpx.CookieSettings
	)
	if cfg.TokenTransport == config.TransportCookie {
		cookie = &httpx.CookieSettings{Name: cfg.CookieName, Secure: cfg.CookieSecure, MaxAge: cfg.TokenTTL}
		extractor = httpx.CookieExtractor{Name: cfg.CookieName}
	}

	gate := httpx.NewGate(extractor, issuer, logger)
	router := httpx.NewRouter(logger, us, gate, cookie, repos.Ping)

	return &App{config: cfg, logger: logger, repos: repos, handler: router}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpx.NewServer(app.config.HTTPAddr, app.handler, app.logger, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is canceled or the process receives a termination
// signal, then releases the storage connection.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"storage", app.config.StorageDriver,
		"token_transport", app.config.TokenTransport,
	)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
