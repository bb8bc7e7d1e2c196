package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/config"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
	"github.com/GoPGManager/GoPGManager/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = "/login"
	// RegisterPath is the path of the registration endpoint.
	RegisterPath = "/register"
)

// RegisterRequest is the body of a registration.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Phone    string `json:"phone"    validate:"omitempty,max=32"`
}

// Request is the body of a login.
type Request struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response is returned on successful login. Browsers may ignore the token and use the cookie.
type Response struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"` // seconds
	User      models.User `json:"user"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	accounts *auth.LocalProvider
	tokens   *auth.TokenIssuer
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the login handler. Its routes are public.
func (s *Service) Init(router fiber.Router, deps *handler.Deps) error {
	if router == nil || deps == nil || deps.Cfg == nil || deps.Accounts == nil || deps.Tokens == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.cfg = deps.Cfg
	s.accounts = deps.Accounts
	s.tokens = deps.Tokens

	router.Post(RegisterPath, s.Register)
	router.Post(Path, s.Post)

	return nil
}

// Register creates a local account.
func (s *Service) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := handler.Bind(c, &req); err != nil {
		return handler.Error(c, err)
	}

	user, err := s.accounts.Register(c.UserContext(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		return handler.Error(c, err)
	}

	log.Info().Uint64("user_id", user.ID).Msg("account registered")

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Post authenticates by email and password, opens a browser session and issues a bearer token.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Request
	if err := handler.Bind(c, &req); err != nil {
		return handler.Error(c, err)
	}

	user, err := s.accounts.Authenticate(c.UserContext(), req.Email, req.Password)

	switch {
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		log.Warn().Str("IP", c.IP()).Msg("failed login")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrInvalidCredentials.Error(),
			"kind":  handler.KindUnauthenticated,
		})
	case errors.Is(err, auth.ErrUserAccountDisabled):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
			"kind":  handler.KindNotAuthorized,
		})
	case err != nil:
		return handler.Error(c, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return handler.Error(c, errors.Join(ErrInternalServerError, err))
	}

	if err = s.openSession(c, user); err != nil {
		return handler.Error(c, errors.Join(ErrInternalServerError, err))
	}

	log.Info().Uint64("user_id", user.ID).Msg("user logged in")

	return c.JSON(Response{
		Token:     token,
		ExpiresIn: int64(s.cfg.Webserver.TokenExpiry.Seconds()),
		User:      *user,
	})
}

func (s *Service) openSession(c *fiber.Ctx, user *models.User) error {
	sessionID, err := session.GenerateSessionID()
	if err != nil {
		return err //nolint:wrapcheck
	}

	data := &session.Data{UserID: user.ID, Email: user.Email}
	if err = data.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		return err //nolint:wrapcheck
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return nil
}
