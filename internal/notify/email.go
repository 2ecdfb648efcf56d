package notify

import (
	"bytes"
	"html/template"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

const (
	senderName = "JamboHub"

	// Shown in place of the message text for image-only posts.
	photoPlaceholder = "📷 Photo"

	emailPreviewLimit = 200
)

// EmailSender delivers one rendered notification to one recipient.
type EmailSender interface {
	Send(toEmail, toName, subject, htmlBody string) error
}

// SMTPSender sends mail over SMTP-SSL (Gmail app-password setup).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSenderFromEnv builds a sender from GMAIL_USER / GMAIL_APP_PASSWORD.
// Returns nil when no password is configured; callers treat a nil sender as
// "email disabled".
func NewSMTPSenderFromEnv() *SMTPSender {
	password := os.Getenv("GMAIL_APP_PASSWORD")

	if password == "" {
		return nil
	}

	from := os.Getenv("GMAIL_USER")

	if from == "" {
		from = "jambohub@gmail.com"
	}

	host := os.Getenv("SMTP_SERVER")

	if host == "" {
		host = "smtp.gmail.com"
	}

	port := 465

	if p := os.Getenv("SMTP_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			port = parsed
		}
	}

	dialer := gomail.NewDialer(host, port, from, password)
	dialer.SSL = port == 465

	return &SMTPSender{dialer: dialer, from: from}
}

func (s *SMTPSender) Send(toEmail, toName, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, senderName))
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}

var messageEmailTemplate = template.Must(template.New("message").Parse(`<html>
<head>
<style>
body { font-family: 'Nunito Sans', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 500px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #7C3AED 0%, #A855F7 100%); color: white; padding: 24px; text-align: center; border-radius: 12px 12px 0 0; }
.header h2 { margin: 0; font-size: 20px; }
.content { background-color: #f8f7fc; padding: 24px; border: 1px solid #e5e7eb; border-radius: 0 0 12px 12px; }
.message-box { background-color: white; padding: 16px; margin: 16px 0; border-left: 4px solid #7C3AED; border-radius: 8px; }
.sender { font-weight: 700; color: #7C3AED; margin-bottom: 8px; }
.channel-badge { display: inline-block; background: #EDE9FE; color: #7C3AED; padding: 4px 12px; border-radius: 16px; font-size: 14px; font-weight: 600; }
.cta { display: inline-block; background: linear-gradient(135deg, #7C3AED 0%, #A855F7 100%); color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 700; margin-top: 16px; }
.footer { margin-top: 24px; padding-top: 16px; border-top: 1px solid #e5e7eb; font-size: 12px; color: #6b7280; text-align: center; }
</style>
</head>
<body>
<div class="header"><h2>🏕️ New Message in JamboHub</h2></div>
<div class="content">
<p>Hi {{.RecipientName}},</p>
<p>There's a new message in <span class="channel-badge">{{.ChannelName}}</span></p>
<div class="message-box">
<div class="sender">{{.SenderName}}</div>
<div>{{.Preview}}</div>
</div>
<p><a href="{{.AppURL}}" class="cta">Open JamboHub</a></p>
</div>
<div class="footer">
<p>VAHC Contingent • National Jamboree 2026</p>
<p>To stop receiving these emails, update your notification settings in JamboHub.</p>
</div>
</body>
</html>
`))

type messageEmailData struct {
	RecipientName string
	ChannelName   string
	SenderName    string
	Preview       string
	AppURL        string
}

func renderMessageEmail(recipientName, channelName, sender, preview string) (string, error) {
	appURL := os.Getenv("CLIENT_URL")

	if appURL == "" {
		appURL = "https://jambohub.fly.dev"
	}

	var buf bytes.Buffer

	err := messageEmailTemplate.Execute(&buf, messageEmailData{
		RecipientName: recipientName,
		ChannelName:   channelName,
		SenderName:    sender,
		Preview:       preview,
		AppURL:        appURL,
	})

	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

func emailSubject(channelName string) string {
	return "New message in " + channelName + " - JamboHub"
}

func emailPreview(content string) string {
	if content == "" {
		return photoPlaceholder
	}
	return truncate(content, emailPreviewLimit)
}

func truncate(s string, limit int) string {
	runes := []rune(s)

	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + "..."
}
