package handler

import (
	"context"
	"errors"
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/pkg"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	posts   *service.PostService
	users   *service.UserService
	follows *service.FollowService
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{
		posts:   service.NewPostService(db),
		users:   service.NewUserService(db, pkg.SMTPConfig{}),
		follows: service.NewFollowService(db),
	}
}

// Profile shows an author's posts, post count and the viewer's follow
// state toward them.
func (h *ProfileHandler) Profile(c *gin.Context) {
	author, page, err := h.posts.ListByAuthor(c.Param("username"), pageParam(c))
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c)
		return
	}

	var following bool
	userID, authed := middleware.CurrentUserID(c)
	if authed && userID != author.ID {
		following, err = h.follows.IsFollowing(c.Request.Context(), userID, author.ID)
		if err != nil {
			serverError(c)
			return
		}
	}

	c.HTML(http.StatusOK, "profile.tmpl", baseContext(c, gin.H{
		"Title":     author.Username,
		"Author":    author,
		"Page":      page,
		"PostCount": page.TotalItems,
		"Following": following,
		"IsSelf":    authed && userID == author.ID,
	}))
}

// Follow creates the edge and returns to the profile. Duplicate and
// self-follow requests succeed without creating anything.
func (h *ProfileHandler) Follow(c *gin.Context) {
	h.toggle(c, h.follows.Follow)
}

// Unfollow removes the edge; an absent edge is fine.
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	h.toggle(c, h.follows.Unfollow)
}

func (h *ProfileHandler) toggle(c *gin.Context, op func(ctx context.Context, userID, authorID uint64) (bool, error)) {
	username := c.Param("username")
	author, err := h.users.GetByUsername(username)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c)
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	if _, err := op(c.Request.Context(), userID, author.ID); err != nil {
		serverError(c)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
