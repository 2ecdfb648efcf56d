package models

import "time"

// Unit is a troop or crew in the contingent. Each unit is paired by name
// with a unit-type channel; renames and deletes cascade to that channel
// and to the unit's members.
type Unit struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
