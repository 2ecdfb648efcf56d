package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/auth"
	"github.com/jambohub/jambohub/internal/handlers"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/router"
	"github.com/jambohub/jambohub/internal/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "correct-horse-battery"

// setupRouter points the global handle at a fresh in-memory database and
// returns a router wired exactly like production, minus the dispatcher.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())

	auth.InitJWTSecret()
	handlers.Notifier = nil

	return router.NewRouter()
}

func createUser(t *testing.T, role, unit string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.NewString()

	user := models.User{
		ID:           id,
		FirstName:    "Test",
		LastName:     role,
		Email:        id[:8] + "@vahc.org",
		PasswordHash: string(hash),
		Role:         role,
		Unit:         unit,
		Active:       true,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	return user
}

func createChannel(t *testing.T, channel models.Channel) models.Channel {
	t.Helper()

	if channel.ID == "" {
		channel.ID = uuid.NewString()
	}
	// Create skips zero values on fields tagged default:true and writes the
	// default back into the struct, so capture the intent beforehand and
	// persist the inactive flag explicitly.
	active := channel.Active
	require.NoError(t, db.DB.Create(&channel).Error)
	if !active {
		require.NoError(t, db.DB.Model(&channel).Update("active", false).Error)
		channel.Active = false
	}

	return channel
}

func publicChannel(canPostRoles string) models.Channel {
	return models.Channel{
		Name:         "Announcements",
		Type:         types.ChannelTypePublic,
		AllowedRoles: "admin,adult_leader,youth,parent",
		CanPostRoles: canPostRoles,
		Active:       true,
	}
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.GenerateJWT(user.ID, user.Role)
	require.NoError(t, err)

	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	decodeJSON(t, w, &body)

	return body["error"]
}
