package service

import (
	"errors"

	"inkwell/internal/form"
	"inkwell/internal/model"
	"inkwell/internal/repository/mysql"

	"gorm.io/gorm"
)

type CommentService struct {
	comments *mysql.CommentRepository
	posts    *mysql.PostRepository
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		comments: &mysql.CommentRepository{DB: db},
		posts:    &mysql.PostRepository{DB: db},
	}
}

// Add stamps the author and post references onto a validated comment.
func (s *CommentService) Add(postID, authorID uint64, f *form.CommentForm) (*model.Comment, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     f.Text,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByPost(postID uint64) ([]model.Comment, error) {
	return s.comments.ListByPost(postID)
}
