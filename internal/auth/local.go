package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/dberr"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
)

const whereEmail = "email = ?"

// LocalProvider handles local database accounts: registration, password authentication and
// identity lookup by email.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Register creates a new active account.
func (p *LocalProvider) Register(ctx context.Context, name, email, password, phone string) (*models.User, error) {
	hashedPassword, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Active:   true,
		Email:    models.NormalizeEmail(email),
		Password: hashedPassword,
		Name:     strings.TrimSpace(name),
		Phone:    strings.TrimSpace(phone),
	}

	if err = p.db.WithContext(ctx).Create(&user).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, ErrUserNameOrEmailExists
		}

		return nil, dberr.Unavailable(err)
	}

	return &user, nil
}

// Authenticate authenticates a user by email and password.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User

	err := p.db.WithContext(ctx).Where(whereEmail, models.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, dberr.Unavailable(err)
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

// ResolveEmail returns the id of the account registered with email.
// It implements manager.IdentityResolver.
func (p *LocalProvider) ResolveEmail(ctx context.Context, email string) (uint64, error) {
	var user models.User

	err := p.db.WithContext(ctx).Select("id").Where(whereEmail, models.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %s", manager.ErrIdentityNotFound, email)
	}

	if err != nil {
		return 0, dberr.Unavailable(err)
	}

	return user.ID, nil
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(ctx context.Context, userID uint64) (*models.User, error) {
	var user models.User

	err := p.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, dberr.Unavailable(err)
	}

	return &user, nil
}

var _ manager.IdentityResolver = (*LocalProvider)(nil)
