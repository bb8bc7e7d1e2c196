package daemon

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/config"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/property"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
)

// seed creates the configured owner and property if the user table is empty.
func seed(cfg *config.Config, db *gorm.DB) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "seed: count users")
	}

	if count > 0 {
		return nil
	}

	ctx := context.Background()

	owner, err := auth.NewLocalProvider(db).Register(
		ctx, cfg.Seed.OwnerName, cfg.Seed.OwnerEmail, cfg.Seed.OwnerPassword, "",
	)
	if err != nil {
		return errors.Wrap(err, "seed: create owner")
	}

	p, err := property.Create(ctx, db, owner.ID, cfg.Seed.PropertyName, cfg.Seed.PropertyAddress)
	if err != nil {
		return errors.Wrap(err, "seed: create property")
	}

	log.Warn().Str("email", owner.Email).Uint64("property_id", p.ID).Msg("seeded owner account, change its password")

	return nil
}
