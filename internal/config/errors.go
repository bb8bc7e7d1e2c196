package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrTokenSigningKeyEmpty error if config webserver.tokenSigningKey is empty.
	ErrTokenSigningKeyEmpty = errors.New("toml config webserver.tokenSigningKey can not be empty")

	// ErrUnknownGormEngine error if config db.gormEngine is not mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine is not supported")

	// ErrDBHostOrNameEmpty error if a network database has no host or name.
	ErrDBHostOrNameEmpty = errors.New("toml config db.host and db.name can not be empty")

	// ErrDBFileEmpty error if sqlite has no file.
	ErrDBFileEmpty = errors.New("toml config db.file can not be empty")

	// ErrSeedIncomplete error if seeding is enabled without owner credentials or property name.
	ErrSeedIncomplete = errors.New("toml config seed needs ownerEmail, ownerPassword and propertyName")
)
