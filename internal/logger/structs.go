package logger

import (
	"time"
)

// Console implements a console based logger.
type Console struct {
	Enabled          bool `mapstructure:"enabled"          toml:"enabled"`
	UseConsoleWriter bool `mapstructure:"useConsoleWriter" toml:"useConsoleWriter"`
}

// RollingFile configures one lumberjack file.
type RollingFile struct {
	Name       string `mapstructure:"name"       toml:"name"`
	MaxSize    int    `mapstructure:"maxSize"    toml:"maxSize"` // megabytes
	MaxBackups int    `mapstructure:"maxBackups" toml:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"     toml:"maxAge"` // days
}

// LogFile implements a file based logger with one rolling file per level class.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path"    toml:"path"`

	Access RollingFile `mapstructure:"access" toml:"access"`
	Error  RollingFile `mapstructure:"error"  toml:"error"`
	Info   RollingFile `mapstructure:"info"   toml:"info"`
	Trace  RollingFile `mapstructure:"trace"  toml:"trace"`
	Warn   RollingFile `mapstructure:"warn"   toml:"warn"`
}

// DataDog implements the datadog log intake config.
type DataDog struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	APIKey  string `mapstructure:"apiKey"  toml:"apiKey"` // API Key defined at datadog
	Site    string `mapstructure:"site"    toml:"site"`            // Regional Site aka DD_SITE ("datadoghq.eu")
	Source  string `mapstructure:"source"  toml:"source"`
	Tags    string `mapstructure:"tags"    toml:"tags"` // comma separated, e.g. "env:prod,team:pg"
	// IntakeURL overrides the regional logs intake, e.g. for a local agent or proxy.
	IntakeURL  string        `mapstructure:"intakeURL"  toml:"intakeURL"`
	Timeout    time.Duration `mapstructure:"timeout"    toml:"timeout"` // how long to wait to send a log entry to datadog.
	BufferSize int           `mapstructure:"bufferSize" toml:"bufferSize"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string `mapstructure:"logLevel" toml:"logLevel"` // trace, debug, info, warn, error.
	LogEnv   string `mapstructure:"logEnv"   toml:"logEnv"`

	// EnableAccessLogToConsole if true, the webservice access log is also written to the console.
	// Does not overrule flag Console.Enabled!
	EnableAccessLogToConsole bool `mapstructure:"enableAccessLogToConsole" toml:"enableAccessLogToConsole"`
	ReportCaller             bool `mapstructure:"reportCaller"             toml:"reportCaller"`
	DisableCheckAlive        bool `mapstructure:"disableCheckAlive"        toml:"disableCheckAlive"` // do not log /checkalive calls

	AppName     string `mapstructure:"appName"     toml:"appName"`
	ServiceName string `mapstructure:"serviceName" toml:"serviceName"`

	Console Console `mapstructure:"console" toml:"console"`
	File    LogFile `mapstructure:"file"    toml:"file"`
	DataDog DataDog `mapstructure:"dataDog" toml:"dataDog"`
}
