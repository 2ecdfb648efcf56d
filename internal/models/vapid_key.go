package models

import "time"

// VapidKey holds the server's Web Push key pair. A single row is generated
// on first boot and reused for the life of the deployment; rotating it would
// invalidate every stored subscription.
type VapidKey struct {
	ID         uint   `gorm:"primaryKey"`
	PublicKey  string `gorm:"not null"`
	PrivateKey string `gorm:"not null"`
	CreatedAt  time.Time
}
