package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jambohub/jambohub/db"
	"github.com/jambohub/jambohub/internal/auth"
	"github.com/jambohub/jambohub/internal/handlers"
	"github.com/jambohub/jambohub/internal/notify"
	"github.com/jambohub/jambohub/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	databasePath := os.Getenv("DATABASE_PATH")

	if databasePath == "" {
		databasePath = "./jambohub.db"
	}

	if err := db.ConnectDatabase(databasePath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedDatabase(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	auth.InitJWTSecret()

	subscriber := os.Getenv("VAPID_SUBSCRIBER")

	if subscriber == "" {
		subscriber = "mailto:jambohub@gmail.com"
	}

	vapid, err := notify.LoadOrGenerateVAPID(db.DB, subscriber)

	if err != nil {
		log.Fatalf("Failed to initialize VAPID keys: %v", err)
	}

	handlers.VAPID = vapid

	emailSender := notify.NewSMTPSenderFromEnv()

	if emailSender == nil {
		log.Println("GMAIL_APP_PASSWORD not set, email notifications disabled")
	}

	fanout := notify.NewFanout(db.DB, emailOrNil(emailSender), notify.NewWebPushSender(vapid))

	dispatcher := notify.NewDispatcher(fanout, 4, 256)
	dispatcher.Start()
	defer dispatcher.Stop()

	handlers.Notifier = dispatcher

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "8080"
		log.Println("PORT not set, defaulting to 8080")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// emailOrNil avoids handing the fan-out a typed-nil interface value.
func emailOrNil(s *notify.SMTPSender) notify.EmailSender {
	if s == nil {
		return nil
	}
	return s
}
