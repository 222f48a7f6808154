package model

import "time"

type Post struct {
	ID       uint64  `gorm:"primaryKey"`
	Text     string  `gorm:"type:text;not null"`
	AuthorID uint64  `gorm:"not null;index:idx_author_created"`
	Author   *User   `gorm:"constraint:OnDelete:CASCADE"`
	GroupID  *uint64 `gorm:"index"`
	Group    *Group  `gorm:"constraint:OnDelete:SET NULL"`
	// Image holds the media-relative path of the optional illustration.
	Image     string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index:idx_author_created"`
	UpdatedAt time.Time
}
