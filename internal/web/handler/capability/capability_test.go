package capability_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/capability"
	managerctl "github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
	capabilityhandler "github.com/GoPGManager/GoPGManager/internal/web/handler/capability"
	"github.com/GoPGManager/GoPGManager/internal/web/handler/handlertest"
)

func TestGroups(t *testing.T) {
	env := handlertest.New(t)

	var s capabilityhandler.Service
	require.NoError(t, s.Init(env.Protected(), env.Deps))

	_, token := env.User(t, "Max", "x@y.com")

	resp, out := env.Do(t, http.MethodGet, handler.APIPath+capabilityhandler.GroupsPath, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got capabilityhandler.GroupsResponse
	handlertest.Decode(t, out, &got)
	require.Len(t, got.Groups, 8)
	assert.Equal(t, capability.Guests, got.Groups[0].Group)
	assert.False(t, got.Groups[7].HasManage())
	assert.Equal(t, capability.Default(), got.Defaults)
}

func TestMe(t *testing.T) {
	env := handlertest.New(t)

	var s capabilityhandler.Service
	require.NoError(t, s.Init(env.Protected(), env.Deps))

	owner, property, ownerToken := env.Owner(t, "Olivia", "owner@example.com", "Sunrise PG")
	_, managerToken := env.User(t, "Max", "x@y.com")
	_, strangerToken := env.User(t, "Eve", "eve@y.com")

	m, err := env.Deps.Managers.Create(context.Background(), property.ID, owner.ID, managerctl.CreateInput{
		Name: "Max", Email: "x@y.com", Capabilities: &capability.Set{ViewRents: true},
	})
	require.NoError(t, err)

	target := handler.APIPath + capabilityhandler.MePath + "?property=" + uintString(property.ID)

	resp, out := env.Do(t, http.MethodGet, target, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me capabilityhandler.MeResponse
	handlertest.Decode(t, out, &me)
	assert.Equal(t, auth.RoleOwner, me.Role)
	assert.Equal(t, capability.Full(), me.Capabilities)

	resp, out = env.Do(t, http.MethodGet, target, managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	handlertest.Decode(t, out, &me)
	assert.Equal(t, auth.RoleManager, me.Role)
	assert.Equal(t, m.ID.String(), me.ManagerID)
	assert.Equal(t, capability.Set{ViewRents: true}, me.Capabilities)

	resp, _ = env.Do(t, http.MethodGet, target, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.Do(t, http.MethodGet, handler.APIPath+capabilityhandler.MePath, ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var rows []models.Manager

	resp, out = env.Do(t, http.MethodGet, handler.APIPath+capabilityhandler.MembershipsPath, managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	handlertest.Decode(t, out, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, property.ID, rows[0].PropertyID)

	resp, out = env.Do(t, http.MethodGet, handler.APIPath+capabilityhandler.MembershipsPath, strangerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(out))
}

func TestMeHidesInvalidStoredSet(t *testing.T) {
	env := handlertest.New(t)

	var s capabilityhandler.Service
	require.NoError(t, s.Init(env.Protected(), env.Deps))

	owner, property, _ := env.Owner(t, "Olivia", "owner@example.com", "Sunrise PG")
	_, managerToken := env.User(t, "Max", "x@y.com")

	m, err := env.Deps.Managers.Create(context.Background(), property.ID, owner.ID, managerctl.CreateInput{
		Name: "Max", Email: "x@y.com", Capabilities: &capability.Set{ViewRents: true},
	})
	require.NoError(t, err)

	require.NoError(t, env.DB.Model(&models.Manager{}).Where("id = ?", m.ID).
		Updates(map[string]interface{}{"can_view_rents": false, "can_manage_rents": true}).Error)

	resp, out := env.Do(t, http.MethodGet,
		handler.APIPath+capabilityhandler.MePath+"?property="+uintString(property.ID), managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me capabilityhandler.MeResponse
	handlertest.Decode(t, out, &me)
	assert.Equal(t, auth.RoleManager, me.Role)
	assert.Equal(t, capability.Set{}, me.Capabilities)
}

func TestCheck(t *testing.T) {
	env := handlertest.New(t)

	var s capabilityhandler.Service
	require.NoError(t, s.Init(env.Protected(), env.Deps))

	owner, property, ownerToken := env.Owner(t, "Olivia", "owner@example.com", "Sunrise PG")
	_, managerToken := env.User(t, "Max", "x@y.com")

	_, err := env.Deps.Managers.Create(context.Background(), property.ID, owner.ID, managerctl.CreateInput{
		Name: "Max", Email: "x@y.com", Capabilities: &capability.Set{ViewRents: true},
	})
	require.NoError(t, err)

	base := handler.APIPath + capabilityhandler.CheckPath + "?property=" + uintString(property.ID)

	tests := []struct {
		name     string
		token    string
		query    string
		status   int
		decision string
		kind     string
	}{
		{"manager view rents", managerToken, "&group=rents&action=view", http.StatusOK, "allow", ""},
		{"manager manage rents", managerToken, "&group=Rents&action=manage", http.StatusOK, "deny", ""},
		{"owner manage rents", ownerToken, "&group=rents&action=manage", http.StatusOK, "allow", ""},
		{"manage analytics", ownerToken, "&group=analytics&action=manage", http.StatusBadRequest, "", handler.KindUnsupportedAction},
		{"unknown group", ownerToken, "&group=parking&action=view", http.StatusBadRequest, "", handler.KindInvalidInput},
		{"unknown action", ownerToken, "&group=rents&action=delete", http.StatusBadRequest, "", handler.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := env.Do(t, http.MethodGet, base+tt.query, tt.token, nil)
			require.Equal(t, tt.status, resp.StatusCode, string(out))

			if tt.kind != "" {
				assert.Equal(t, tt.kind, handlertest.Kind(t, out))
				return
			}

			var got capabilityhandler.CheckResponse
			handlertest.Decode(t, out, &got)
			assert.Equal(t, tt.decision, got.Decision)
		})
	}
}

func uintString(v uint64) string {
	return strconv.FormatUint(v, 10)
}
