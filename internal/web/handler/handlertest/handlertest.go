// Package handlertest wires the API dependencies against an in-memory database for handler tests.
package handlertest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/config"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/announcement"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/dbtest"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
	authmw "github.com/GoPGManager/GoPGManager/internal/web/middleware/auth"
	"github.com/GoPGManager/GoPGManager/internal/web/session"
)

// Env is a test API.
type Env struct {
	App    *fiber.App
	DB     *gorm.DB
	Deps   *handler.Deps
	Public fiber.Router

	protected fiber.Router
}

// New creates a test API with a fresh database and in-memory sessions.
func New(t *testing.T) *Env {
	t.Helper()

	db := dbtest.Open(t)
	session.Init(nil)

	cfg := &config.Config{
		DevMode: true,
		Webserver: config.Webserver{
			Port:            8080,
			URL:             "http://localhost:8080",
			TokenSigningKey: "test-signing-key",
			TokenExpiry:     time.Hour,
			Session:         config.Session{ExpiryTime: time.Hour},
		},
	}

	tokens, err := auth.NewTokenIssuer(cfg.Webserver.TokenSigningKey, "pgmanager-test", cfg.Webserver.TokenExpiry)
	require.NoError(t, err)

	accounts := auth.NewLocalProvider(db)
	managers := manager.New(db, accounts)
	authService := auth.NewService(db, managers)

	app := fiber.New()

	return &Env{
		App: app,
		DB:  db,
		Deps: &handler.Deps{
			Cfg:           cfg,
			DB:            db,
			Auth:          authService,
			Accounts:      accounts,
			Tokens:        tokens,
			Managers:      managers,
			Announcements: announcement.New(db, authService),
		},
		Public: app.Group(handler.APIPath),
	}
}

// Protected returns the authenticated API group. Register public routes first.
func (e *Env) Protected() fiber.Router {
	if e.protected == nil {
		e.protected = e.App.Group(handler.APIPath, authmw.New(e.Deps.Tokens))
	}

	return e.protected
}

// User creates an account and returns it with a bearer token.
func (e *Env) User(t *testing.T, name, email string) (models.User, string) {
	t.Helper()

	user := dbtest.CreateUser(t, e.DB, name, email)

	token, err := e.Deps.Tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)

	return user, token
}

// Owner creates an account owning a property.
func (e *Env) Owner(t *testing.T, name, email, propertyName string) (models.User, models.Property, string) {
	t.Helper()

	user, token := e.User(t, name, email)

	return user, dbtest.CreateProperty(t, e.DB, user.ID, propertyName), token
}

// Do sends a JSON request and returns the response with its body.
func (e *Env) Do(t *testing.T, method, target, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, out
}

// Decode unmarshals a response body.
func Decode(t *testing.T, body []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, out), "body: %s", body)
}

// Kind returns the error kind of an error body.
func Kind(t *testing.T, body []byte) string {
	t.Helper()

	var e struct {
		Kind string `json:"kind"`
	}
	Decode(t, body, &e)

	return e.Kind
}
