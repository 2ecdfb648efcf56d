package notify

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/types"
	"gorm.io/gorm"
)

const emailSendTimeout = 10 * time.Second

// Fanout computes recipients for a freshly persisted message and delivers
// best-effort over whichever transports the channel has enabled. Nothing in
// here ever surfaces an error to the posting request; failures are logged
// and, for permanently gone push endpoints, pruned from the store.
type Fanout struct {
	db    *gorm.DB
	email EmailSender // nil when email is not configured
	push  PushSender  // nil when push is not configured
}

func NewFanout(db *gorm.DB, email EmailSender, push PushSender) *Fanout {
	return &Fanout{db: db, email: email, push: push}
}

// NotifyNewMessage runs the full fan-out pass for one message.
func (f *Fanout) NotifyNewMessage(message models.Message, channel models.Channel, author models.User) {
	if channel.EmailNotifications && f.email != nil {
		f.notifyByEmail(message, channel, author)
	}

	if channel.PushNotifications && f.push != nil {
		f.notifyByPush(message, channel, author)
	}
}

// emailRecipients selects the users to email about a post in channel:
// active, opted in, not the author, role-permitted, and for unit channels in
// the channel's unit.
func (f *Fanout) emailRecipients(channel models.Channel, author models.User) ([]models.User, error) {
	query := f.db.
		Where("active = ?", true).
		Where("email_notifications = ?", true).
		Where("id <> ?", author.ID)

	roleQuery := f.db.Where("1 = 0")

	for _, role := range types.AllRoles {
		if channel.AllowsRole(role) {
			roleQuery = roleQuery.Or("role = ?", role)
		}
	}

	query = query.Where(roleQuery)

	if channel.Type == types.ChannelTypeUnit && channel.Unit != "" {
		query = query.Where("unit = ?", channel.Unit)
	}

	var users []models.User

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (f *Fanout) notifyByEmail(message models.Message, channel models.Channel, author models.User) {
	recipients, err := f.emailRecipients(channel, author)

	if err != nil {
		log.Printf("Failed to select email recipients for channel %s: %v", channel.ID, err)
		return
	}

	if len(recipients) == 0 {
		return
	}

	preview := emailPreview(message.Content)
	subject := emailSubject(channel.Name)
	sent := 0

	for _, recipient := range recipients {
		body, err := renderMessageEmail(recipient.DisplayName(), channel.Name, author.DisplayName(), preview)

		if err != nil {
			log.Printf("Failed to render email for %s: %v", recipient.Email, err)
			continue
		}

		err = withTimeout(emailSendTimeout, func() error {
			return f.email.Send(recipient.Email, recipient.DisplayName(), subject, body)
		})

		if err != nil {
			log.Printf("Failed to send email to %s: %v", recipient.Email, err)
			continue
		}

		sent++
	}

	log.Printf("Sent %d/%d email notifications for message %d in %s", sent, len(recipients), message.ID, channel.ID)
}

// notifyByPush broadcasts to every stored subscription except the author's
// own devices. Endpoints the push service reports as gone (404/410) are
// deleted in one batch after the pass; other failures keep the subscription.
func (f *Fanout) notifyByPush(message models.Message, channel models.Channel, author models.User) {
	var subscriptions []models.PushSubscription

	if err := f.db.Where("user_id <> ?", author.ID).Find(&subscriptions).Error; err != nil {
		log.Printf("Failed to load push subscriptions: %v", err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	payload, err := buildPushPayload(channel, author, message.Content)

	if err != nil {
		log.Printf("Failed to build push payload: %v", err)
		return
	}

	var gone []string
	sent := 0

	for _, sub := range subscriptions {
		status, err := f.push.Send(sub, payload)

		if err != nil {
			log.Printf("Failed to send push to subscription %d: %v", sub.ID, err)
			continue
		}

		if status == http.StatusNotFound || status == http.StatusGone {
			gone = append(gone, sub.Endpoint)
			continue
		}

		if status >= 400 {
			log.Printf("Push service returned status %d for subscription %d", status, sub.ID)
			continue
		}

		sent++
	}

	if len(gone) > 0 {
		if err := f.db.Where("endpoint IN ?", gone).Delete(&models.PushSubscription{}).Error; err != nil {
			log.Printf("Failed to prune %d expired push subscriptions: %v", len(gone), err)
		} else {
			log.Printf("Pruned %d expired push subscriptions", len(gone))
		}
	}

	log.Printf("Sent %d/%d push notifications for message %d in %s", sent, len(subscriptions), message.ID, channel.ID)
}

// withTimeout bounds a blocking send. The send goroutine is left to finish
// on its own if the deadline fires first.
func withTimeout(d time.Duration, fn func() error) error {
	done := make(chan error, 1)

	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-time.After(d):
		return fmt.Errorf("send timed out after %s", d)
	}
}
