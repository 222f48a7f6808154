package mysql

import (
	"inkwell/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) ListByPost(postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}
