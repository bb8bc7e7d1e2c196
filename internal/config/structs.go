package config

import (
	"time"

	"github.com/GoPGManager/GoPGManager/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration `mapstructure:"expiryTime" toml:"expiryTime"`
}

// Config overall data structure.
type Config struct {
	DevMode   bool       `mapstructure:"devMode"   toml:"devMode"` // enable dev mode for development
	Title     string     `mapstructure:"title"     toml:"title"`
	DB        DB         `mapstructure:"db"        toml:"db"`
	Log       logger.Log `mapstructure:"log"       toml:"log"`
	Webserver Webserver  `mapstructure:"webserver" toml:"webserver"`
	Seed      Seed       `mapstructure:"seed"      toml:"seed"`
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int     `mapstructure:"port"         toml:"port"`         // listening port for the webserver
	URL          string  `mapstructure:"url"          toml:"url"`          // base url for the webserver
	ShutDownTime int     `mapstructure:"shutDownTime" toml:"shutDownTime"` // seconds checkalive fails before shutdown
	Session      Session `mapstructure:"session"      toml:"session"`

	// TokenSigningKey signs bearer tokens issued at login.
	TokenSigningKey string        `mapstructure:"tokenSigningKey" toml:"tokenSigningKey"`
	TokenExpiry     time.Duration `mapstructure:"tokenExpiry"     toml:"tokenExpiry"`
}

// Seed creates a first owner account and its property on an empty database.
type Seed struct {
	Enabled         bool   `mapstructure:"enabled"         toml:"enabled"`
	OwnerName       string `mapstructure:"ownerName"       toml:"ownerName"`
	OwnerEmail      string `mapstructure:"ownerEmail"      toml:"ownerEmail"`
	OwnerPassword   string `mapstructure:"ownerPassword"   toml:"ownerPassword"`
	PropertyName    string `mapstructure:"propertyName"    toml:"propertyName"`
	PropertyAddress string `mapstructure:"propertyAddress" toml:"propertyAddress"`
}
