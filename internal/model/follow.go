package model

import "time"

// Follow is a directed edge: UserID reads AuthorID. The composite unique
// index makes duplicate edges impossible at the storage layer, so the
// check-then-create race cannot produce them.
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_author"`
	AuthorID  uint64 `gorm:"not null;index;uniqueIndex:uk_user_author"`
	User      *User  `gorm:"constraint:OnDelete:CASCADE"`
	Author    *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Follow) TableName() string { return "follows" }

// SocialOutbox records follow/unfollow events for asynchronous delivery.
type SocialOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // follow / unfollow
	UserID    uint64 `gorm:"not null"`
	AuthorID  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:text;not null"`
	Status    int8   `gorm:"not null;default:0"` // 0=pending 1=sent 2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SocialOutbox) TableName() string { return "social_outbox" }
