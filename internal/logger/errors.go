package logger

import (
	"errors"
	"fmt"
	"os"
)

// Init rejects a Log section missing one of these settings.
var (
	ErrServiceNameIsEmpty   = errors.New("log.serviceName is required, it labels metrics and shipped logs")
	ErrAppNameIsEmpty       = errors.New("log.appName is required, it is added to every log line")
	ErrDataDogAPIKeyIsEmpty = errors.New("log.dataDog.apiKey is required when dataDog shipping is enabled")
)

// reportDropped writes failures of the log pipeline to stderr, bypassing the global logger.
func reportDropped(stage string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "pgmanager logger: %s: %v\n", stage, err)
}
