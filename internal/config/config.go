// Package config handles input from etc/main.toml, PGMANAGER_* environment variables and
// the PGMANAGER_CONFIG_JSON override.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment variables overriding single keys, e.g. PGMANAGER_WEBSERVER_PORT.
	EnvPrefix = "PGMANAGER"
	// EnvConfigJSON holds a JSON document merged over the file and environment configuration.
	EnvConfigJSON = EnvPrefix + "_CONFIG_JSON"

	defaultShutDownTime  = 5
	defaultSessionExpiry = 24 * time.Hour
	defaultTokenExpiry   = time.Hour

	redacted = "********"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	if configJSON := os.Getenv(EnvConfigJSON); configJSON != "" {
		var err error

		c, err = decodeAndMergeConfig(c, configJSON)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "GoPGManager")
	v.SetDefault("db.gormEngine", EngineSQLite)
	v.SetDefault("db.file", "pgmanager.db")
	v.SetDefault("webserver.shutDownTime", defaultShutDownTime)
	v.SetDefault("webserver.session.expiryTime", defaultSessionExpiry)
	v.SetDefault("webserver.tokenExpiry", defaultTokenExpiry)
	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.appName", "pgmanager")
	v.SetDefault("log.serviceName", "pgmanager")
	v.SetDefault("log.console.enabled", true)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// Redacted returns a copy of c with secrets masked, for display.
func (c Config) Redacted() Config {
	mask := func(s *string) {
		if *s != "" {
			*s = redacted
		}
	}

	mask(&c.DB.Password)
	mask(&c.Webserver.TokenSigningKey)
	mask(&c.Log.DataDog.APIKey)
	mask(&c.Seed.OwnerPassword)

	return c
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	enc := toml.NewEncoder(&buffer)
	enc.SetIndentTables(true)

	if err := enc.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without and fills defaults
// left empty by the JSON override.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.TokenSigningKey == "" {
		return errors.Wrap(ErrTokenSigningKeyEmpty, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case EngineMySQL, EnginePostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			return errors.Wrap(ErrDBHostOrNameEmpty, invalidErrMessage)
		}
	case EngineSQLite:
		if c.DB.File == "" {
			return errors.Wrap(ErrDBFileEmpty, invalidErrMessage)
		}
	default:
		return errors.Wrapf(ErrUnknownGormEngine, "%s: %q", invalidErrMessage, c.DB.GormEngine)
	}

	if c.Seed.Enabled && (c.Seed.OwnerEmail == "" || c.Seed.OwnerPassword == "" || c.Seed.PropertyName == "") {
		return errors.Wrap(ErrSeedIncomplete, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Webserver.TokenExpiry == 0 {
		c.Webserver.TokenExpiry = defaultTokenExpiry
	}

	return nil
}
