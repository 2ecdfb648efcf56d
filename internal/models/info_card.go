package models

import "time"

// InfoCard is admin-managed display content for the Info view.
type InfoCard struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text"`
	Icon      string
	Color     string
	Link      string
	SortOrder int  `gorm:"default:0"`
	Active    bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
