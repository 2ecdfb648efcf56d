package models

import "time"

type Message struct {
	ID        uint   `gorm:"primaryKey"`
	ChannelID string `gorm:"not null;index"`
	UserID    string `gorm:"not null;index"`

	// Content may be empty only when an image is attached.
	Content  string `gorm:"type:text"`
	ImageURL string

	Pinned bool `gorm:"default:false"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Channel Channel `gorm:"foreignKey:ChannelID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Author  User    `gorm:"foreignKey:UserID"`
}
