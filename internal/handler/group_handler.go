package handler

import (
	"errors"
	"net/http"

	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GroupHandler struct {
	posts *service.PostService
}

func NewGroupHandler(db *gorm.DB) *GroupHandler {
	return &GroupHandler{posts: service.NewPostService(db)}
}

// Posts lists a group's posts; an unknown slug is a 404.
func (h *GroupHandler) Posts(c *gin.Context) {
	group, page, err := h.posts.ListByGroup(c.Param("slug"), pageParam(c))
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c)
		return
	}
	c.HTML(http.StatusOK, "group.tmpl", baseContext(c, gin.H{
		"Title": group.Title,
		"Group": group,
		"Page":  page,
	}))
}
