package config

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	GormEngine string `mapstructure:"gormEngine" toml:"gormEngine"` // mysql, postgres or sqlite
	Host       string `mapstructure:"host"       toml:"host"`
	Port       int    `mapstructure:"port"       toml:"port"`
	User       string `mapstructure:"user"       toml:"user"`
	Password   string `mapstructure:"password"   toml:"password"`
	Name       string `mapstructure:"name"       toml:"name"`
	Extras     string `mapstructure:"extras"     toml:"extras"` // driver specific DSN parameters
	File       string `mapstructure:"file"       toml:"file"`   // sqlite database file
}
