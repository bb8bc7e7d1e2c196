package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etcPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func validConfig() Config {
	return Config{
		DB: DB{GormEngine: EngineSQLite, File: "test.db"},
		Webserver: Webserver{
			Port:            8080,
			URL:             "http://localhost:8080",
			TokenSigningKey: "key",
		},
	}
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.Equal(t, 24*time.Hour, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, time.Hour, cfg.Webserver.TokenExpiry)
	assert.Equal(t, "access.log", cfg.Log.File.Access.Name)
	assert.Equal(t, 5*time.Second, cfg.Log.DataDog.Timeout)
	assert.True(t, cfg.Seed.Enabled)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
}

func TestReadConfigWithEnvOverride(t *testing.T) {
	t.Setenv("PGMANAGER_WEBSERVER_PORT", "9191")
	t.Setenv("PGMANAGER_DB_GORMENGINE", EnginePostgres)

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Webserver.Port)
	assert.Equal(t, EnginePostgres, cfg.DB.GormEngine)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	// untouched keys keep the file values
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(etcPath(t))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"valid config", func(*Config) {}, nil},
		{"missing port", func(c *Config) { c.Webserver.Port = 0 }, ErrWebServerPortCanNotBeZero},
		{"missing URL", func(c *Config) { c.Webserver.URL = "" }, ErrEmptyURL},
		{"missing signing key", func(c *Config) { c.Webserver.TokenSigningKey = "" }, ErrTokenSigningKeyEmpty},
		{"unknown engine", func(c *Config) { c.DB.GormEngine = "oracle" }, ErrUnknownGormEngine},
		{"sqlite without file", func(c *Config) { c.DB.File = "" }, ErrDBFileEmpty},
		{"mysql without host", func(c *Config) { c.DB.GormEngine = EngineMySQL }, ErrDBHostOrNameEmpty},
		{"incomplete seed", func(c *Config) { c.Seed.Enabled = true }, ErrSeedIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)

			err := validate(&c)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	c := validConfig()
	require.NoError(t, validate(&c))

	assert.Equal(t, defaultShutDownTime, c.Webserver.ShutDownTime)
	assert.Equal(t, defaultSessionExpiry, c.Webserver.Session.ExpiryTime)
	assert.Equal(t, defaultTokenExpiry, c.Webserver.TokenExpiry)
}

func TestDumpConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Title = "Test"

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlStr, "Test")
	assert.Contains(t, tomlStr, "[webserver]")
}

func TestDumpConfigJSONRedacted(t *testing.T) {
	cfg := validConfig()
	cfg.Title = "Test"
	cfg.DB.Password = "hunter2"

	redactedCfg := cfg.Redacted()

	jsonStr, err := DumpConfigJSON(&redactedCfg)
	require.NoError(t, err)

	assert.Contains(t, jsonStr, "Test")
	assert.False(t, strings.Contains(jsonStr, "hunter2"))
	assert.False(t, strings.Contains(jsonStr, `"TokenSigningKey": "key"`))
	// the original is untouched
	assert.Equal(t, "hunter2", cfg.DB.Password)
}
