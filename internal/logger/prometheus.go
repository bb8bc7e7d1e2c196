package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	logLines     *prometheus.CounterVec //nolint:gochecknoglobals
	logLinesOnce sync.Once              //nolint:gochecknoglobals
)

// PrometheusHook counts log lines per level in log_statements_total.
type PrometheusHook struct{}

// Run counts the event under its level. Events without a level are not counted.
func (PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel {
		return
	}

	logLines.WithLabelValues(level.String()).Inc()
}

// NewPrometheusHook registers log_statements_total on first use and returns the hook.
// Later calls reuse the first registration and its service label.
func NewPrometheusHook(service string) PrometheusHook {
	logLinesOnce.Do(func() {
		logLines = promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "log_statements_total",
			Help:        "Log lines written by the service, by level.",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"level"})
	})

	return PrometheusHook{}
}
