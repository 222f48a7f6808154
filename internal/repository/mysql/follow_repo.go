package mysql

import (
	"context"
	"encoding/json"
	"time"

	"inkwell/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

// Create inserts the edge unless it already exists. The unique
// (user_id, author_id) index plus ON CONFLICT DO NOTHING make the insert
// race-free; changed reports whether a row was actually written.
func (r *FollowRepository) Create(ctx context.Context, userID, authorID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).Create(&model.Follow{UserID: userID, AuthorID: authorID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "follow", userID, authorID)
	})
	return changed, err
}

// Delete removes the edge; a missing edge is not an error.
func (r *FollowRepository) Delete(ctx context.Context, userID, authorID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND author_id = ?", userID, authorID).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "unfollow", userID, authorID)
	})
	return changed, err
}

func (r *FollowRepository) Exists(ctx context.Context, userID, authorID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error
	return n > 0, err
}

func (r *FollowRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).Count(&n).Error
	return n, err
}

// insertOutbox records the event in the same transaction as the edge
// mutation, so the relayer never sees an event without its edge.
func insertOutbox(tx *gorm.DB, event string, userID, authorID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"user":       userID,
		"author":     authorID,
	})
	return tx.Create(&model.SocialOutbox{
		EventType: event,
		UserID:    userID,
		AuthorID:  authorID,
		Payload:   string(payload),
	}).Error
}

func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.SocialOutbox, error) {
	var list []model.SocialOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.SocialOutbox{}).
		Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.SocialOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}
