package handlers_test

import (
	"net/http"
	"testing"

	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	r := setupRouter(t)
	youth := createUser(t, types.RoleYouth, "")

	w := doRequest(t, r, http.MethodGet, "/api/admin/users", tokenFor(t, youth), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Insufficient permissions", errorMessage(t, w))
}

func TestAdminCreateUser(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodPost, "/api/admin/users", token, map[string]interface{}{
		"first_name": "Liam",
		"last_name":  "H",
		"email":      "Liam.H@VAHC.org",
		"role":       types.RoleYouth,
		"unit":       "Crew 22",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var body types.UserResponse
	decodeJSON(t, w, &body)

	assert.Equal(t, "liam.h@vahc.org", body.Email)
	assert.True(t, body.Active)

	// Accounts start on the shared default password.
	var created models.User
	require.NoError(t, db.DB.First(&created, "id = ?", body.ID).Error)

	assert.False(t, created.PasswordChanged)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(types.DefaultPassword)))
}

func TestAdminCreateUserValidation(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodPost, "/api/admin/users", token, map[string]interface{}{
		"first_name": "Liam",
		"role":       types.RoleYouth,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "First name, email, and role are required", errorMessage(t, w))

	w = doRequest(t, r, http.MethodPost, "/api/admin/users", token, map[string]interface{}{
		"first_name": "Liam",
		"email":      "liam@vahc.org",
		"role":       "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role", errorMessage(t, w))
}

func TestUsernameCollision(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodPost, "/api/admin/users", token, map[string]interface{}{
		"first_name": "First",
		"email":      "first@vahc.org",
		"role":       types.RoleYouth,
		"username":   "scout1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/admin/users", token, map[string]interface{}{
		"first_name": "Second",
		"email":      "second@vahc.org",
		"role":       types.RoleYouth,
		"username":   "scout1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already taken", errorMessage(t, w))

	// Any number of accounts may have no username at all.
	for _, email := range []string{"third@vahc.org", "fourth@vahc.org"} {
		w = doRequest(t, r, http.MethodPost, "/api/admin/users", token, map[string]interface{}{
			"first_name": "NoName",
			"email":      email,
			"role":       types.RoleParent,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestAdminUpdateUserClearsUsername(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	user := createUser(t, types.RoleYouth, "")
	token := tokenFor(t, admin)

	require.NoError(t, db.DB.Model(&user).Update("username", "scout1").Error)

	w := doRequest(t, r, http.MethodPut, "/api/admin/users/"+user.ID, token, map[string]interface{}{
		"username": "",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, db.DB.First(&updated, "id = ?", user.ID).Error)
	assert.Nil(t, updated.Username)
}

func TestAdminUpdateUserPartial(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	user := createUser(t, types.RoleYouth, "Crew 22")
	token := tokenFor(t, admin)

	w := doRequest(t, r, http.MethodPut, "/api/admin/users/"+user.ID, token, map[string]interface{}{
		"active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, db.DB.First(&updated, "id = ?", user.ID).Error)

	assert.False(t, updated.Active)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Crew 22", updated.Unit)
	assert.Equal(t, types.RoleYouth, updated.Role)

	w = doRequest(t, r, http.MethodPut, "/api/admin/users/"+user.ID, token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid fields to update", errorMessage(t, w))
}

func TestAdminDeleteOwnAccountRefused(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")

	w := doRequest(t, r, http.MethodDelete, "/api/admin/users/"+admin.ID, tokenFor(t, admin), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete your own account", errorMessage(t, w))

	var count int64
	require.NoError(t, db.DB.Model(&models.User{}).Where("id = ?", admin.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdminDeleteUserRemovesSubscriptions(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	user := createUser(t, types.RoleYouth, "")

	sub := models.PushSubscription{UserID: user.ID, Endpoint: "https://push.example/x", P256dh: "k", Auth: "a"}
	require.NoError(t, db.DB.Create(&sub).Error)

	w := doRequest(t, r, http.MethodDelete, "/api/admin/users/"+user.ID, tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users, subs int64
	require.NoError(t, db.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&users).Error)
	require.NoError(t, db.DB.Model(&models.PushSubscription{}).Count(&subs).Error)

	assert.Equal(t, int64(0), users)
	assert.Equal(t, int64(0), subs)
}

func TestAdminResetPassword(t *testing.T) {
	r := setupRouter(t)
	admin := createUser(t, types.RoleAdmin, "")
	youth := createUser(t, types.RoleYouth, "")
	otherAdmin := createUser(t, types.RoleAdmin, "")
	token := tokenFor(t, admin)

	require.NoError(t, db.DB.Model(&youth).Update("password_changed", true).Error)

	w := doRequest(t, r, http.MethodPost, "/api/admin/users/"+youth.ID+"/reset-password", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reset models.User
	require.NoError(t, db.DB.First(&reset, "id = ?", youth.ID).Error)

	assert.False(t, reset.PasswordChanged)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reset.PasswordHash), []byte(types.DefaultPassword)))

	// Admin accounts reset to the admin default instead.
	w = doRequest(t, r, http.MethodPost, "/api/admin/users/"+otherAdmin.ID+"/reset-password", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Use a fresh struct: re-querying into the populated one would fold its
	// primary key into the WHERE clause.
	var adminReset models.User
	require.NoError(t, db.DB.First(&adminReset, "id = ?", otherAdmin.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(adminReset.PasswordHash), []byte(types.AdminDefaultPassword)))
}
