package logger

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	submitLogOperation = "v2.LogsApi.SubmitLog"

	defaultDataDogTimeout    = 5 * time.Second
	defaultDataDogBufferSize = 1024
	defaultDataDogBatchSize  = 100
)

// DataDogWriter ships log lines to the datadog logs intake.
// Writes never block: lines are queued and sent in batches by a background goroutine,
// and dropped when the queue is full.
type DataDogWriter struct {
	api     *datadogV2.LogsApi
	ctx     context.Context //nolint:containedctx
	cfg     DataDog
	service string
	host    string

	mu     sync.RWMutex
	closed bool
	queue  chan string
	done   chan struct{}
}

// NewDataDogWriter creates and starts a datadog log shipper.
func NewDataDogWriter(cfg DataDog, service string) (*DataDogWriter, error) {
	if cfg.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultDataDogTimeout
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultDataDogBufferSize
	}

	if cfg.Source == "" {
		cfg.Source = "go"
	}

	configuration := datadog.NewConfiguration()
	if cfg.IntakeURL != "" {
		configuration.OperationServers[submitLogOperation] = datadog.ServerConfigurations{{URL: cfg.IntakeURL}}
	}

	ctx := context.WithValue(context.Background(), datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: cfg.APIKey},
	})

	if cfg.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.Site})
	}

	host, _ := os.Hostname()

	w := &DataDogWriter{
		api:     datadogV2.NewLogsApi(datadog.NewAPIClient(configuration)),
		ctx:     ctx,
		cfg:     cfg,
		service: service,
		host:    host,
		queue:   make(chan string, cfg.BufferSize),
		done:    make(chan struct{}),
	}

	go w.run()

	return w, nil
}

// Write queues one log line. Lines written after Close are dropped.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return len(p), nil
	}

	select {
	case w.queue <- string(p):
	default:
		// queue full, drop the line
	}

	return len(p), nil
}

// Close sends queued lines and stops the shipper.
func (w *DataDogWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}

	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	<-w.done
}

func (w *DataDogWriter) run() {
	defer close(w.done)

	batch := make([]datadogV2.HTTPLogItem, 0, defaultDataDogBatchSize)

	for line := range w.queue {
		batch = append(batch, w.item(line))

		// drain what is already queued into the same request
	drain:
		for len(batch) < defaultDataDogBatchSize {
			select {
			case next, ok := <-w.queue:
				if !ok {
					break drain
				}

				batch = append(batch, w.item(next))
			default:
				break drain
			}
		}

		w.send(batch)
		batch = batch[:0]
	}
}

func (w *DataDogWriter) item(line string) datadogV2.HTTPLogItem {
	it := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(w.cfg.Source),
		Hostname: datadog.PtrString(w.host),
		Message:  line,
		Service:  datadog.PtrString(w.service),
	}

	if w.cfg.Tags != "" {
		it.Ddtags = datadog.PtrString(w.cfg.Tags)
	}

	return it
}

func (w *DataDogWriter) send(batch []datadogV2.HTTPLogItem) {
	ctx, cancel := context.WithTimeout(w.ctx, w.cfg.Timeout)
	defer cancel()

	if _, _, err := w.api.SubmitLog(ctx, batch); err != nil {
		reportDropped("datadog submit", err)
	}
}
