package model

import "time"

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	Post      *Post  `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint64 `gorm:"not null;index"`
	Author    *User  `gorm:"constraint:OnDelete:CASCADE"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}
