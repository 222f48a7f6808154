package model

import "time"

// Group is a topical collection of posts. Groups are created by editors
// out of band; readers and authors only ever reference them.
type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
