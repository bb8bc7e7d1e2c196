package fiber_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPGManager/GoPGManager/internal/logger"
	adapter "github.com/GoPGManager/GoPGManager/internal/logger/adapter/fiber"
)

type accessLine struct {
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	UserID uint64 `json:"user_id"`
	Error  string `json:"error"`
}

func runRequest(t *testing.T, cfg adapter.Config, target string) (*bytes.Buffer, int) {
	t.Helper()

	var buf bytes.Buffer
	cfg.Output = &buf

	app := fiber.New(fiber.Config{CaseSensitive: true, Immutable: true})
	app.Use(adapter.New(cfg))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("hello test")
	})
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/boom", func(*fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)

	return &buf, resp.StatusCode
}

func decode(t *testing.T, buf *bytes.Buffer) accessLine {
	t.Helper()

	var line accessLine
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "output: %s", buf.String())

	return line
}

func TestAccessLog(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		uri    string
	}{
		{"root", "/", fiber.StatusOK, "/"},
		{"query", "/?test=123", fiber.StatusOK, "/?test=123"},
		{"multi slash", "/no_path//?test=123", fiber.StatusNotFound, "/no_path//?test=123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, status := runRequest(t, adapter.Config{}, tt.target)
			assert.Equal(t, tt.status, status)

			line := decode(t, buf)
			assert.Equal(t, tt.status, line.Status)
			assert.Equal(t, tt.uri, line.URI)
			assert.Equal(t, fiber.MethodGet, line.Method)
			assert.Equal(t, "example.com", line.Host)
		})
	}
}

func TestAccessLogChainError(t *testing.T) {
	buf, status := runRequest(t, adapter.Config{}, "/boom")
	assert.Equal(t, fiber.StatusTeapot, status)

	line := decode(t, buf)
	assert.Equal(t, fiber.StatusTeapot, line.Status)
	assert.Equal(t, "short and stout", line.Error)
}

func TestAccessLogSkipPaths(t *testing.T) {
	cfg := adapter.Config{
		Config:    logger.Log{DisableCheckAlive: true},
		SkipPaths: []string{"/checkalive"},
	}

	buf, status := runRequest(t, cfg, "/checkalive")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, buf.String())

	// skip paths only apply with DisableCheckAlive
	cfg.Config.DisableCheckAlive = false
	buf, _ = runRequest(t, cfg, "/checkalive")
	assert.NotEmpty(t, buf.String())
}

func TestAccessLogUserID(t *testing.T) {
	cfg := adapter.Config{
		UserID: func(*fiber.Ctx) uint64 { return 7 },
	}

	buf, _ := runRequest(t, cfg, "/")
	assert.Equal(t, uint64(7), decode(t, buf).UserID)
}

func TestAccessLogNext(t *testing.T) {
	cfg := adapter.Config{
		Next: func(*fiber.Ctx) bool { return true },
	}

	buf, status := runRequest(t, cfg, "/")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, buf.String())
}
