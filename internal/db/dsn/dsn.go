// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/GoPGManager/GoPGManager/internal/config"
)

// MySQL builds a go-sql-driver DSN. Extras are URL query parameters, e.g. "charset=utf8mb4".
func MySQL(db config.DB) (string, error) {
	c := mysql.NewConfig()
	c.User = db.User
	c.Passwd = db.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
	c.DBName = db.Name
	c.ParseTime = true

	if db.Extras != "" {
		params, err := url.ParseQuery(db.Extras)
		if err != nil {
			return "", err //nolint:wrapcheck
		}

		c.Params = make(map[string]string, len(params))
		for k := range params {
			c.Params[k] = params.Get(k)
		}
	}

	return c.FormatDSN(), nil
}

// Postgres builds a postgres:// connection URI accepted by both pgx and the session storage.
func Postgres(db config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}

// SQLite builds the database file DSN with foreign keys enabled.
func SQLite(db config.DB) string {
	return db.File + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
