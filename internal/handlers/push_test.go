package handlers_test

import (
	"net/http"
	"testing"

	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/handlers"
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/notify"
	"github.com/jambohub/jambohub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribeBody(endpoint string) map[string]interface{} {
	return map[string]interface{}{
		"endpoint": endpoint,
		"keys": map[string]string{
			"p256dh": "key-material",
			"auth":   "auth-secret",
		},
	}
}

func TestSubscribeUpsertsByEndpoint(t *testing.T) {
	r := setupRouter(t)
	first := createUser(t, types.RoleYouth, "")
	second := createUser(t, types.RoleParent, "")

	w := doRequest(t, r, http.MethodPost, "/api/push/subscribe", tokenFor(t, first), subscribeBody("https://push.example/x"))
	assert.Equal(t, http.StatusCreated, w.Code)

	// The same browser endpoint re-registered by another account moves the
	// subscription rather than duplicating it.
	w = doRequest(t, r, http.MethodPost, "/api/push/subscribe", tokenFor(t, second), subscribeBody("https://push.example/x"))
	assert.Equal(t, http.StatusOK, w.Code)

	var subs []models.PushSubscription
	require.NoError(t, db.DB.Find(&subs).Error)

	require.Len(t, subs, 1)
	assert.Equal(t, second.ID, subs[0].UserID)
}

func TestSubscribeSurvivesConcurrentRegistration(t *testing.T) {
	r := setupRouter(t)
	user := createUser(t, types.RoleYouth, "")

	// A row written by a racing request between the handler's existence
	// check and its insert must be updated, not turned into a 500 by the
	// unique index.
	racer := models.PushSubscription{UserID: "someone-else", Endpoint: "https://push.example/x", P256dh: "stale", Auth: "stale"}
	require.NoError(t, db.DB.Create(&racer).Error)

	w := doRequest(t, r, http.MethodPost, "/api/push/subscribe", tokenFor(t, user), subscribeBody("https://push.example/x"))
	require.True(t, w.Code == http.StatusOK || w.Code == http.StatusCreated, "got %d", w.Code)

	var subs []models.PushSubscription
	require.NoError(t, db.DB.Find(&subs).Error)

	require.Len(t, subs, 1)
	assert.Equal(t, user.ID, subs[0].UserID)
	assert.Equal(t, "key-material", subs[0].P256dh)
	assert.Equal(t, "auth-secret", subs[0].Auth)
}

func TestSubscribeRequiresKeys(t *testing.T) {
	r := setupRouter(t)
	user := createUser(t, types.RoleYouth, "")

	w := doRequest(t, r, http.MethodPost, "/api/push/subscribe", tokenFor(t, user), map[string]interface{}{
		"endpoint": "https://push.example/x",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnsubscribe(t *testing.T) {
	r := setupRouter(t)
	user := createUser(t, types.RoleYouth, "")
	token := tokenFor(t, user)

	w := doRequest(t, r, http.MethodPost, "/api/push/subscribe", token, subscribeBody("https://push.example/x"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/push/unsubscribe", token, map[string]string{
		"endpoint": "https://push.example/x",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.DB.Model(&models.PushSubscription{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Unsubscribing an unknown endpoint is a no-op, not an error.
	w = doRequest(t, r, http.MethodPost, "/api/push/unsubscribe", token, map[string]string{
		"endpoint": "https://push.example/gone",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVapidPublicKey(t *testing.T) {
	r := setupRouter(t)
	user := createUser(t, types.RoleYouth, "")
	token := tokenFor(t, user)

	handlers.VAPID = notify.VAPIDConfig{}

	w := doRequest(t, r, http.MethodGet, "/api/push/vapid-public-key", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	handlers.VAPID = notify.VAPIDConfig{PublicKey: "public-key", PrivateKey: "private-key", Subscriber: "mailto:test@vahc.org"}
	defer func() { handlers.VAPID = notify.VAPIDConfig{} }()

	w = doRequest(t, r, http.MethodGet, "/api/push/vapid-public-key", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decodeJSON(t, w, &body)
	assert.Equal(t, "public-key", body["publicKey"])
}
