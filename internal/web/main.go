// Package web serves the JSON API, the health check and prometheus metrics.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/GoPGManager/GoPGManager/internal/config"
	fiberlogger "github.com/GoPGManager/GoPGManager/internal/logger/adapter/fiber"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/announcement"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/capability"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/login"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/logout"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/manager"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/property"
	authmw "github.com/GoPGManager/GoPGManager/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic and 503 during graceful shutdown.
	CheckAlivePath = "/checkalive"
	// MetricsPath serves prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive is the load balancer health check.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates the web service and registers every API route.
func New(deps *handler.Deps) (*Service, error) {
	if deps == nil || deps.Cfg == nil || deps.DB == nil {
		return nil, errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	cfg := deps.Cfg

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:    cfg.Log,
		UserID:    authmw.UserID,
		SkipPaths: []string{CheckAlivePath, MetricsPath},
	}))

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// public routes are registered before the authenticated group
	public := app.Group(handler.APIPath)

	for _, h := range []handler.Service{&login.Handler, &logout.Handler} {
		if err := h.Init(public, deps); err != nil {
			return nil, err
		}
	}

	protected := app.Group(handler.APIPath, authmw.New(deps.Tokens))

	for _, h := range []handler.Service{
		&property.Handler,
		&capability.Handler,
		&manager.Handler,
		&announcement.Handler,
	} {
		if err := h.Init(protected, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}
