package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/config"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/announcement"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/dbtest"
	"github.com/GoPGManager/GoPGManager/internal/web"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
	"github.com/GoPGManager/GoPGManager/internal/web/session"
)

func newService(t *testing.T) *web.Service {
	t.Helper()

	db := dbtest.Open(t)
	session.Init(nil)

	cfg := &config.Config{
		DevMode: true,
		Title:   "PG Manager",
		Webserver: config.Webserver{
			Port:            8080,
			URL:             "http://localhost:8080",
			TokenSigningKey: "test-signing-key",
			TokenExpiry:     time.Hour,
			Session:         config.Session{ExpiryTime: time.Hour},
		},
	}

	tokens, err := auth.NewTokenIssuer(cfg.Webserver.TokenSigningKey, "pgmanager-test", time.Hour)
	require.NoError(t, err)

	accounts := auth.NewLocalProvider(db)
	managers := manager.New(db, accounts)
	authService := auth.NewService(db, managers)

	s, err := web.New(&handler.Deps{
		Cfg:           cfg,
		DB:            db,
		Auth:          authService,
		Accounts:      accounts,
		Tokens:        tokens,
		Managers:      managers,
		Announcements: announcement.New(db, authService),
	})
	require.NoError(t, err)

	return s
}

func do(t *testing.T, app *fiber.App, method, target string, body interface{}, cookie string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, out
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := web.New(nil)
	require.Error(t, err)

	_, err = web.New(&handler.Deps{})
	require.Error(t, err)
}

func TestCheckAliveAndMetrics(t *testing.T) {
	s := newService(t)

	resp, body := do(t, s.App, http.MethodGet, web.CheckAlivePath, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, body = do(t, s.App, http.MethodGet, web.MetricsPath, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

// A browser registers, logs in and sets up its property using only the session cookie.
func TestSessionFlow(t *testing.T) {
	s := newService(t)

	resp, _ := do(t, s.App, http.MethodGet, "/api/property", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, out := do(t, s.App, http.MethodPost, "/api/register", map[string]string{
		"name": "Olivia", "email": "owner@example.com", "password": "s3cret-pass",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(out))

	resp, out = do(t, s.App, http.MethodPost, "/api/login", map[string]string{
		"email": "owner@example.com", "password": "s3cret-pass",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(out))

	var cookie string

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			cookie = c.Name + "=" + c.Value
		}
	}

	require.NotEmpty(t, cookie)

	resp, out = do(t, s.App, http.MethodPost, "/api/property", map[string]string{"name": "Sunrise PG"}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(out))

	resp, out = do(t, s.App, http.MethodGet, "/api/managers", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(out))
	assert.Contains(t, string(out), `"total":0`)

	resp, _ = do(t, s.App, http.MethodPost, "/api/logout", nil, cookie)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, s.App, http.MethodGet, "/api/property", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
