package models

import (
	"strings"
	"time"
)

type Channel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Icon        string `gorm:"default:'📢'"`

	// Channel type: public, unit, leadership, parent
	Type string `gorm:"not null;default:public"`

	// For unit channels, which unit this belongs to
	Unit string

	// Comma-separated roles that can view / post
	AllowedRoles string `gorm:"not null;default:'admin,adult_leader,youth,parent'"`
	CanPostRoles string `gorm:"not null;default:'admin,adult_leader'"`

	Active bool `gorm:"default:true"`

	// Per-channel notification transports
	EmailNotifications bool `gorm:"default:false"`
	PushNotifications  bool `gorm:"default:true"`

	CreatedAt time.Time

	// Relationships
	Messages []Message `gorm:"foreignKey:ChannelID"`
}

// AllowsRole reports whether role appears in the channel's view list.
func (c Channel) AllowsRole(role string) bool {
	return containsRole(c.AllowedRoles, role)
}

// AllowsPosting reports whether role appears in the channel's post list.
func (c Channel) AllowsPosting(role string) bool {
	return containsRole(c.CanPostRoles, role)
}

func containsRole(roles, role string) bool {
	for _, r := range strings.Split(roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}
