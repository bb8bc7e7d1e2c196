package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/config"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/announcement"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
)

// Deps are the services shared by the API handlers.
type Deps struct {
	Cfg           *config.Config
	DB            *gorm.DB
	Auth          *auth.Service
	Accounts      *auth.LocalProvider
	Tokens        *auth.TokenIssuer
	Managers      *manager.Directory
	Announcements *announcement.Store
}

// Service is the interface for a web handler service.
type Service interface {
	Init(router fiber.Router, deps *Deps) error
}
