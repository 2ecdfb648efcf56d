package models

import "time"

// PushSubscription is one browser/device push registration. The endpoint is
// the natural key: resubscribing with a known endpoint updates the owner and
// keys in place instead of creating a duplicate row.
type PushSubscription struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   string `gorm:"not null;index"`
	Endpoint string `gorm:"uniqueIndex;not null"`
	P256dh   string `gorm:"not null"`
	Auth     string `gorm:"not null"`

	CreatedAt time.Time
}
