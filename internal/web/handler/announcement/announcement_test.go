package announcement_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPGManager/GoPGManager/internal/capability"
	managerctl "github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/announcement"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/handlertest"
)

// A manager holding only the view flag is rejected on writes even when calling the API directly.
func TestAnnouncementsAreGuarded(t *testing.T) {
	env := handlertest.New(t)

	var s announcement.Service
	require.NoError(t, s.Init(env.Protected(), env.Deps))

	owner, property, ownerToken := env.Owner(t, "Olivia", "owner@example.com", "Sunrise PG")
	_, viewerToken := env.User(t, "Max", "x@y.com")
	_, strangerToken := env.User(t, "Eve", "eve@y.com")

	_, err := env.Deps.Managers.Create(context.Background(), property.ID, owner.ID, managerctl.CreateInput{
		Name: "Max", Email: "x@y.com", Capabilities: &capability.Set{ViewAnnouncements: true},
	})
	require.NoError(t, err)

	base := handler.APIPath + "/properties/" + strconv.FormatUint(property.ID, 10) + "/announcements"

	resp, out := env.Do(t, http.MethodPost, base, ownerToken, map[string]string{"title": "Water cut", "body": "10-12"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(out))

	var created models.Announcement
	handlertest.Decode(t, out, &created)

	resp, out = env.Do(t, http.MethodGet, base, viewerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Announcement
	handlertest.Decode(t, out, &list)
	require.Len(t, list, 1)

	resp, out = env.Do(t, http.MethodPost, base, viewerToken, map[string]string{"title": "Party"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, handler.KindNotAuthorized, handlertest.Kind(t, out))

	target := base + "/" + strconv.FormatUint(created.ID, 10)

	resp, _ = env.Do(t, http.MethodDelete, target, viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.Do(t, http.MethodGet, base, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.Do(t, http.MethodDelete, target, ownerToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, out = env.Do(t, http.MethodDelete, target, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, handler.KindNotFound, handlertest.Kind(t, out))

	resp, _ = env.Do(t, http.MethodGet, handler.APIPath+"/properties/abc/announcements", ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
