package mysql

import (
	"inkwell/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Preload("Group").First(&post, id).Error
	return &post, err
}

// Update mutates only the caller-supplied columns. CreatedAt is never
// among them; publication time is immutable.
func (r *PostRepository) Update(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", id).Updates(fields).Error
}

func (r *PostRepository) CountAll() (int64, error) {
	return r.count(r.DB.Model(&model.Post{}))
}

func (r *PostRepository) ListAll(offset, limit int) ([]model.Post, error) {
	return r.list(r.DB.Model(&model.Post{}), offset, limit)
}

func (r *PostRepository) CountByGroup(groupID uint64) (int64, error) {
	return r.count(r.DB.Model(&model.Post{}).Where("group_id = ?", groupID))
}

func (r *PostRepository) ListByGroup(groupID uint64, offset, limit int) ([]model.Post, error) {
	return r.list(r.DB.Model(&model.Post{}).Where("group_id = ?", groupID), offset, limit)
}

func (r *PostRepository) CountByAuthor(authorID uint64) (int64, error) {
	return r.count(r.DB.Model(&model.Post{}).Where("author_id = ?", authorID))
}

func (r *PostRepository) ListByAuthor(authorID uint64, offset, limit int) ([]model.Post, error) {
	return r.list(r.DB.Model(&model.Post{}).Where("author_id = ?", authorID), offset, limit)
}

// feedScope selects posts whose author is followed by userID. The user's
// own posts never match: self-edges cannot exist.
func (r *PostRepository) feedScope(userID uint64) *gorm.DB {
	followed := r.DB.Model(&model.Follow{}).Select("author_id").Where("user_id = ?", userID)
	return r.DB.Model(&model.Post{}).Where("author_id IN (?)", followed)
}

func (r *PostRepository) CountFeed(userID uint64) (int64, error) {
	return r.count(r.feedScope(userID))
}

func (r *PostRepository) ListFeed(userID uint64, offset, limit int) ([]model.Post, error) {
	return r.list(r.feedScope(userID), offset, limit)
}

func (r *PostRepository) count(q *gorm.DB) (int64, error) {
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// list applies the canonical listing order: newest first, id as the
// stable tiebreak so pages never shuffle under equal timestamps.
func (r *PostRepository) list(q *gorm.DB, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := q.
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
