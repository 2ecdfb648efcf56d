package models

import (
	"strings"
	"time"
)

type User struct {
	ID string `gorm:"primaryKey"`

	// Username is optional; when set it must be unique. Stored as NULL when
	// absent so any number of username-less accounts can coexist under the
	// unique index.
	Username *string `gorm:"uniqueIndex"`

	// Email is intentionally not unique: family members may share an inbox.
	Email        string `gorm:"not null;index"`
	PasswordHash string `gorm:"not null" json:"-"`

	FirstName        string `gorm:"not null"`
	LastName         string
	Phone            string
	Age              int
	Gender           string
	Position         string
	Patrol           string
	EmergencyContact string

	// Role: admin, adult_leader, youth, parent
	Role string `gorm:"not null;default:youth"`

	// Unit name, e.g. "Troop 3125". Empty for contingent-level accounts.
	Unit string

	Active          bool `gorm:"default:true"`
	PasswordChanged bool `gorm:"default:false"`

	// Notification preferences
	EmailNotifications bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Messages []Message `gorm:"foreignKey:UserID"`
}

// DisplayName returns the user's full name.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UsernameString returns the username or "" when unset.
func (u User) UsernameString() string {
	if u.Username == nil {
		return ""
	}
	return *u.Username
}
