// Package dbtest provides an in-memory database and fixtures for package tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GoPGManager/GoPGManager/internal/db/models"
)

// Open creates a migrated in-memory SQLite database.
// The pool is limited to one connection since every new connection to ":memory:" is a fresh database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	return db
}

// CreateUser inserts an active account with the given email.
func CreateUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{
		Active: true,
		Name:   name,
		Email:  models.NormalizeEmail(email),
	}
	require.NoError(t, db.Create(&user).Error, "failed to seed user")

	return user
}

// CreateProperty inserts a property owned by ownerID.
func CreateProperty(t *testing.T, db *gorm.DB, ownerID uint64, name string) models.Property {
	t.Helper()

	property := models.Property{
		OwnerID: ownerID,
		Name:    name,
	}
	require.NoError(t, db.Create(&property).Error, "failed to seed property")

	return property
}
