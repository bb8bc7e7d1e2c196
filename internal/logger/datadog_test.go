package logger_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPGManager/GoPGManager/internal/logger"
)

type intake struct {
	mu       sync.Mutex
	messages []string
	apiKeys  []string
}

func (i *intake) handler(t *testing.T) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var items []struct {
			Message string `json:"message"`
			Service string `json:"service"`
		}
		assert.NoError(t, json.Unmarshal(body, &items))

		i.mu.Lock()
		for _, it := range items {
			i.messages = append(i.messages, it.Message)
		}
		i.apiKeys = append(i.apiKeys, r.Header.Get("DD-API-KEY"))
		i.mu.Unlock()

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("{}"))
	}
}

func (i *intake) received() []string {
	i.mu.Lock()
	defer i.mu.Unlock()

	return append([]string(nil), i.messages...)
}

func TestDataDogWriter(t *testing.T) {
	in := &intake{}
	srv := httptest.NewServer(in.handler(t))
	t.Cleanup(srv.Close)

	w, err := logger.NewDataDogWriter(logger.DataDog{
		Enabled:   true,
		APIKey:    "test-key",
		IntakeURL: srv.URL,
		Timeout:   time.Second,
	}, "pgmanager")
	require.NoError(t, err)

	_, err = w.Write([]byte(`{"level":"info","message":"first"}`))
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"level":"warn","message":"second"}`))
	require.NoError(t, err)

	w.Close()

	assert.ElementsMatch(t, []string{
		`{"level":"info","message":"first"}`,
		`{"level":"warn","message":"second"}`,
	}, in.received())

	in.mu.Lock()
	defer in.mu.Unlock()
	require.NotEmpty(t, in.apiKeys)
	assert.Equal(t, "test-key", in.apiKeys[0])
}

func TestDataDogWriterRequiresAPIKey(t *testing.T) {
	_, err := logger.NewDataDogWriter(logger.DataDog{Enabled: true}, "pgmanager")
	require.ErrorIs(t, err, logger.ErrDataDogAPIKeyIsEmpty)
}
