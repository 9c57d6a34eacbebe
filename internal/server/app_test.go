package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/libauth/internal/logging"
	"github.com/dmitrijs2005/libauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageDriver = config.StorageMemory
	cfg.SecretKey = "app-test-secret"
	cfg.HashCost = 4
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

var signup = map[string]string{
	"userType":  "EMPLOYEE",
	"firstName": "Grace",
	"lastName":  "Hopper",
	"email":     "grace@example.com",
	"password":  "cobol-rules",
}

func TestNewApp_HeaderFlow(t *testing.T) {
	app, err := newApp(context.Background(), memoryConfig(), logging.Discard())
	require.NoError(t, err)

	srv := httptest.NewServer(app.handler)
	defer srv.Close()

	resp := postJSON(t, srv.Client(), srv.URL+"/auth/register", signup)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.Client(), srv.URL+"/auth/login", map[string]string{
		"email": "grace@example.com", "password": "cobol-rules",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/account", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	acc, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer acc.Body.Close()
	require.Equal(t, http.StatusOK, acc.StatusCode)

	var profile map[string]string
	require.NoError(t, json.NewDecoder(acc.Body).Decode(&profile))
	assert.Equal(t, "Grace", profile["firstName"])
	assert.Equal(t, "grace@example.com", profile["email"])
}

func TestNewApp_CookieTransport(t *testing.T) {
	cfg := memoryConfig()
	cfg.TokenTransport = config.TransportCookie

	app, err := newApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	srv := httptest.NewServer(app.handler)
	defer srv.Close()

	require.Equal(t, http.StatusCreated, postJSON(t, srv.Client(), srv.URL+"/auth/register", signup).StatusCode)

	resp := postJSON(t, srv.Client(), srv.URL+"/auth/login", map[string]string{
		"email": "grace@example.com", "password": "cobol-rules",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cfg.CookieName, cookies[0].Name)
	assert.Equal(t, int(cfg.TokenTTL/time.Second), cookies[0].MaxAge)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/account", nil)
	require.NoError(t, err)
	req.AddCookie(cookies[0])
	acc, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer acc.Body.Close()
	assert.Equal(t, http.StatusOK, acc.StatusCode)
}

func TestNewApp_RejectsBadSettings(t *testing.T) {
	cfg := memoryConfig()
	cfg.HashCost = 99
	_, err := newApp(context.Background(), cfg, logging.Discard())
	require.Error(t, err)

	cfg = memoryConfig()
	cfg.SecretKey = ""
	_, err = newApp(context.Background(), cfg, logging.Discard())
	require.Error(t, err)

	cfg = memoryConfig()
	cfg.StorageDriver = "cassandra"
	_, err = newApp(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
}

func TestNewApp_BadLogLevel(t *testing.T) {
	cfg := memoryConfig()
	cfg.LogLevel = "loud"
	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := newApp(context.Background(), memoryConfig(), logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_RunListenError(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = "127.0.0.1:notaport"
	app, err := newApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	require.Error(t, app.Run(context.Background()))
}

func TestNewApp_WarnsOnDefaultSecret(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSON(&buf, slog.LevelDebug)

	_, err := newApp(context.Background(), memoryConfig(), logger)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "default JWT secret")

	cfg := memoryConfig()
	cfg.SecretKey = config.DefaultSecretKey
	_, err = newApp(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), "default JWT secret")
}
