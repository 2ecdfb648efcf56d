package notify

import (
	"encoding/json"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/jambohub/jambohub/internal/models"
)

const (
	pushPreviewLimit = 100

	// Bounded per-endpoint send so one dead push service cannot stall a
	// fan-out batch.
	pushSendTimeout = 10 * time.Second
)

// PushSender delivers one payload to one subscription and reports the push
// service's HTTP status.
type PushSender interface {
	Send(sub models.PushSubscription, payload []byte) (int, error)
}

// WebPushSender signs and sends notifications with the server's VAPID pair.
type WebPushSender struct {
	vapid  VAPIDConfig
	client *http.Client
}

func NewWebPushSender(vapid VAPIDConfig) *WebPushSender {
	return &WebPushSender{
		vapid:  vapid,
		client: &http.Client{Timeout: pushSendTimeout},
	}
}

func (s *WebPushSender) Send(sub models.PushSubscription, payload []byte) (int, error) {
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.vapid.Subscriber,
		VAPIDPublicKey:  s.vapid.PublicKey,
		VAPIDPrivateKey: s.vapid.PrivateKey,
		TTL:             60,
	})

	if err != nil {
		return 0, err
	}

	defer resp.Body.Close()

	return resp.StatusCode, nil
}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Badge string `json:"badge"`
}

func buildPushPayload(channel models.Channel, author models.User, content string) ([]byte, error) {
	preview := content

	if preview == "" {
		preview = photoPlaceholder
	} else {
		preview = truncate(preview, pushPreviewLimit)
	}

	displayName := author.FirstName

	if displayName == "" {
		displayName = author.DisplayName()
	}

	return json.Marshal(pushPayload{
		Title: "#" + channel.Name,
		Body:  displayName + ": " + preview,
		URL:   "/?channel=" + channel.ID,
		Icon:  "/jambo-icon-192.png",
		Badge: "/jambo-icon-192.png",
	})
}
