package service

import (
	"context"

	"inkwell/internal/repository/mysql"

	"gorm.io/gorm"
)

type FollowService struct {
	follows *mysql.FollowRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		follows: &mysql.FollowRepository{DB: db},
	}
}

// Follow creates the edge from user to author. Self-follow and an
// already existing edge are silent no-ops; changed reports whether an
// edge was actually created.
func (s *FollowService) Follow(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == authorID {
		return false, nil
	}
	return s.follows.Create(ctx, userID, authorID)
}

// Unfollow removes the edge if present; an absent edge is not an error.
func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == authorID {
		return false, nil
	}
	return s.follows.Delete(ctx, userID, authorID)
}

func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error) {
	return s.follows.Exists(ctx, userID, authorID)
}
