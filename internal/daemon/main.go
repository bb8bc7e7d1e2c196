// Package daemon wires storage, sessions and the web service together.
package daemon

import (
	"fmt"
	"net"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/config"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/announcement"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/dsn"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
	"github.com/GoPGManager/GoPGManager/internal/web"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
	"github.com/GoPGManager/GoPGManager/internal/web/session"
)

const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves the API until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(net.JoinHostPort("", strconv.Itoa(d.cfg.Webserver.Port)))
}

// OpenDB opens the configured database. Driver errors are translated so unique violations can be detected.
func OpenDB(cfg config.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.GormEngine {
	case config.EngineMySQL:
		mysqlDSN, err := dsn.MySQL(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "invalid mysql extras")
		}

		dialector = gormmysql.Open(mysqlDSN)
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Postgres(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.SQLite(cfg))
	default:
		return nil, errors.Wrap(config.ErrUnknownGormEngine, cfg.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(models.All()...), "failed to migrate database")
}

// sessionStorage keeps sessions in the application database. SQLite uses fiber's in-memory storage.
func sessionStorage(cfg config.DB) (fiber.Storage, error) {
	switch cfg.GormEngine {
	case config.EngineMySQL:
		mysqlDSN, err := dsn.MySQL(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "invalid mysql extras")
		}

		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: mysqlDSN,
			Table:         sessionTable,
		}), nil
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         sessionTable,
		}), nil
	default:
		log.Warn().Msg("sessions are kept in memory and do not survive a restart")
		return nil, nil //nolint:nilnil
	}
}

// NewDeps builds the services shared by the API handlers.
func NewDeps(cfg *config.Config, db *gorm.DB) (*handler.Deps, error) {
	tokens, err := auth.NewTokenIssuer(cfg.Webserver.TokenSigningKey, cfg.Webserver.URL, cfg.Webserver.TokenExpiry)
	if err != nil {
		return nil, errors.Wrap(err, "token issuer")
	}

	accounts := auth.NewLocalProvider(db)
	managers := manager.New(db, accounts)
	authService := auth.NewService(db, managers)

	return &handler.Deps{
		Cfg:           cfg,
		DB:            db,
		Auth:          authService,
		Accounts:      accounts,
		Tokens:        tokens,
		Managers:      managers,
		Announcements: announcement.New(db, authService),
	}, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := OpenDB(cfg.DB)
	if err != nil {
		return nil, err
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	if err = seed(cfg, db); err != nil {
		return nil, err
	}

	storage, err := sessionStorage(cfg.DB)
	if err != nil {
		return nil, err
	}

	session.Init(storage)

	deps, err := NewDeps(cfg, db)
	if err != nil {
		return nil, err
	}

	webService, err := web.New(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create web service: %w", err)
	}

	return &Daemon{
		cfg:        cfg,
		webService: webService,
	}, nil
}
