package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/dberr"
	"github.com/GoPGManager/GoPGManager/internal/db/dbtest"
)

func TestLocalProviderRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider(dbtest.Open(t))

	user, err := p.Register(ctx, " Max ", "Max@Example.com ", "s3cret-pass", "")
	require.NoError(t, err)
	assert.Equal(t, "max@example.com", user.Email)
	assert.Equal(t, "Max", user.Name)
	assert.True(t, user.Active)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	_, err = p.Register(ctx, "Max again", "max@example.com", "other", "")
	require.ErrorIs(t, err, ErrUserNameOrEmailExists)

	got, err := p.Authenticate(ctx, "MAX@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = p.Authenticate(ctx, "max@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLocalProviderDisabledAccount(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	p := NewLocalProvider(db)

	user, err := p.Register(ctx, "Max", "max@example.com", "s3cret-pass", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("active", false).Error)

	_, err = p.Authenticate(ctx, "max@example.com", "s3cret-pass")
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestLocalProviderResolveEmail(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	p := NewLocalProvider(db)
	user := dbtest.CreateUser(t, db, "Max", "x@y.com")

	id, err := p.ResolveEmail(ctx, " X@Y.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = p.ResolveEmail(ctx, "nobody@y.com")
	require.ErrorIs(t, err, manager.ErrIdentityNotFound)

	got, err := p.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", got.Email)

	_, err = p.GetUserByID(ctx, user.ID+100)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLocalProviderStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	p := NewLocalProvider(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = p.ResolveEmail(ctx, "x@y.com")
	require.ErrorIs(t, err, dberr.ErrStorageUnavailable)
}
