package handlers_test

import (
	"net/http"
	"testing"

	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCreateUnit(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodPost, "/api/admin/units", token, map[string]string{
		"name": "Crew 22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body types.UnitResponse
	decodeJSON(t, w, &body)
	assert.Equal(t, "Crew 22", body.Name)

	// The paired unit channel is created in the same transaction.
	var channel models.Channel
	require.NoError(t, db.DB.First(&channel, "type = ? AND unit = ?", types.ChannelTypeUnit, "Crew 22").Error)

	assert.Equal(t, "Crew 22", channel.Name)
	assert.Equal(t, "admin,adult_leader,youth", channel.CanPostRoles)
	assert.True(t, channel.Active)
	assert.True(t, channel.PushNotifications)

	// Duplicate names are rejected.
	w = doRequest(t, r, http.MethodPost, "/api/admin/units", token, map[string]string{
		"name": "Crew 22",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unit already exists", errorMessage(t, w))
}

func TestAdminRenameUnitCascades(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	member := createUser(t, types.RoleYouth, "Crew 22")
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodPost, "/api/admin/units", token, map[string]string{
		"name": "Crew 22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.UnitResponse
	decodeJSON(t, w, &created)

	w = doRequest(t, r, http.MethodPut, "/api/admin/units/"+created.ID, token, map[string]string{
		"name": "Crew 99",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var channel models.Channel
	require.NoError(t, db.DB.First(&channel, "type = ?", types.ChannelTypeUnit).Error)

	assert.Equal(t, "Crew 99", channel.Name)
	assert.Equal(t, "Crew 99", channel.Unit)
	assert.Equal(t, "Crew 99 unit communication", channel.Description)

	var updatedMember models.User
	require.NoError(t, db.DB.First(&updatedMember, "id = ?", member.ID).Error)
	assert.Equal(t, "Crew 99", updatedMember.Unit)
}

func TestAdminDeleteUnitCascades(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	member := createUser(t, types.RoleYouth, "Crew 22")
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodPost, "/api/admin/units", token, map[string]string{
		"name": "Crew 22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.UnitResponse
	decodeJSON(t, w, &created)

	var channel models.Channel
	require.NoError(t, db.DB.First(&channel, "type = ? AND unit = ?", types.ChannelTypeUnit, "Crew 22").Error)

	message := models.Message{ChannelID: channel.ID, UserID: member.ID, Content: "hello crew"}
	require.NoError(t, db.DB.Create(&message).Error)

	w = doRequest(t, r, http.MethodDelete, "/api/admin/units/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var channels, messages, units int64
	require.NoError(t, db.DB.Model(&models.Channel{}).Count(&channels).Error)
	require.NoError(t, db.DB.Model(&models.Message{}).Count(&messages).Error)
	require.NoError(t, db.DB.Model(&models.Unit{}).Count(&units).Error)

	assert.Equal(t, int64(0), channels)
	assert.Equal(t, int64(0), messages)
	assert.Equal(t, int64(0), units)

	// Former members keep their accounts, minus the unit assignment.
	var survivor models.User
	require.NoError(t, db.DB.First(&survivor, "id = ?", member.ID).Error)
	assert.Empty(t, survivor.Unit)
}

func TestAdminUnitNotFound(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodPut, "/api/admin/units/nope", token, map[string]string{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/admin/units/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
