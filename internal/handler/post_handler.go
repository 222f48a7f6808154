package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"inkwell/internal/form"
	"inkwell/internal/middleware"
	"inkwell/internal/model"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	mediaDir string
}

func NewPostHandler(db *gorm.DB, mediaDir string) *PostHandler {
	return &PostHandler{
		posts:    service.NewPostService(db),
		comments: service.NewCommentService(db),
		mediaDir: mediaDir,
	}
}

// Index lists all posts, newest first, ten per page.
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.posts.ListAll(pageParam(c))
	if err != nil {
		serverError(c)
		return
	}
	c.HTML(http.StatusOK, "index.tmpl", baseContext(c, gin.H{
		"Title": "Latest posts",
		"Page":  page,
	}))
}

// Detail shows one post with its comments.
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		NotFound(c)
		return
	}
	post, err := h.posts.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c)
		return
	}
	h.renderDetail(c, http.StatusOK, post, "", nil)
}

func (h *PostHandler) renderDetail(c *gin.Context, status int, post *model.Post, commentText string, commentErrors form.Errors) {
	comments, err := h.comments.ListByPost(post.ID)
	if err != nil {
		serverError(c)
		return
	}
	c.HTML(status, "post_detail.tmpl", baseContext(c, gin.H{
		"Title":         "Post by " + post.Author.Username,
		"Post":          post,
		"Comments":      comments,
		"CommentText":   commentText,
		"CommentErrors": commentErrors,
	}))
}

// CreateForm shows the empty post form.
func (h *PostHandler) CreateForm(c *gin.Context) {
	h.renderPostForm(c, http.StatusOK, "/create/", &form.PostForm{}, false)
}

// Create validates the submission; on success the post is persisted and
// the browser is redirected to the author's profile (PRG), on failure
// the form is redisplayed with the errors and the original input.
func (h *PostHandler) Create(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	username, _ := middleware.CurrentUsername(c)

	f, err := h.bindPostForm(c)
	if err != nil {
		serverError(c)
		return
	}
	if !f.Valid() {
		h.renderPostForm(c, http.StatusOK, "/create/", f, false)
		return
	}

	imagePath, err := h.saveImage(c, f.Image)
	if err != nil {
		serverError(c)
		return
	}
	if _, err := h.posts.Create(userID, f, imagePath); err != nil {
		serverError(c)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

// EditForm shows the form prefilled with the post. Only the author gets
// it; anyone else is sent back to the detail page.
func (h *PostHandler) EditForm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		NotFound(c)
		return
	}
	post, err := h.posts.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c)
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	if post.AuthorID != userID {
		c.Redirect(http.StatusFound, detailPath(id))
		return
	}
	f := &form.PostForm{Text: post.Text, GroupID: post.GroupID, Errors: form.Errors{}}
	h.renderPostForm(c, http.StatusOK, editPath(id), f, true)
}

func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		NotFound(c)
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	// Ownership is settled before the submission is even looked at; a
	// non-owner is sent to the detail page no matter what they posted.
	post, err := h.posts.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c)
		return
	}
	if post.AuthorID != userID {
		c.Redirect(http.StatusFound, detailPath(id))
		return
	}

	f, err := h.bindPostForm(c)
	if err != nil {
		serverError(c)
		return
	}
	if !f.Valid() {
		h.renderPostForm(c, http.StatusOK, editPath(id), f, true)
		return
	}

	imagePath, err := h.saveImage(c, f.Image)
	if err != nil {
		serverError(c)
		return
	}
	err = h.posts.Edit(id, userID, f, imagePath)
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c)
	case errors.Is(err, service.ErrNotOwner):
		// No explanation on purpose; the detail page is the answer.
		c.Redirect(http.StatusFound, detailPath(id))
	case err != nil:
		serverError(c)
	default:
		c.Redirect(http.StatusFound, detailPath(id))
	}
}

// AddComment creates a comment and returns to the detail page; invalid
// input redisplays the detail page with the comment form errors.
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		NotFound(c)
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	f := form.NewCommentForm(c.PostForm("text"))
	if !f.Valid() {
		post, err := h.posts.Get(id)
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c)
			return
		}
		if err != nil {
			serverError(c)
			return
		}
		h.renderDetail(c, http.StatusOK, post, f.Text, f.Errors)
		return
	}
	if _, err := h.comments.Add(id, userID, f); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c)
			return
		}
		serverError(c)
		return
	}
	c.Redirect(http.StatusFound, detailPath(id))
}

// Feed lists posts by the authors the viewer follows.
func (h *PostHandler) Feed(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	page, err := h.posts.Feed(userID, pageParam(c))
	if err != nil {
		serverError(c)
		return
	}
	c.HTML(http.StatusOK, "feed.tmpl", baseContext(c, gin.H{
		"Title": "Your feed",
		"Page":  page,
	}))
}

func (h *PostHandler) bindPostForm(c *gin.Context) (*form.PostForm, error) {
	file, err := c.FormFile("image")
	if err != nil {
		file = nil
	}
	return form.NewPostForm(c.PostForm("text"), c.PostForm("group"), file, h.posts.GroupLookup())
}

func (h *PostHandler) renderPostForm(c *gin.Context, status int, action string, f *form.PostForm, isEdit bool) {
	groups, err := h.posts.Groups()
	if err != nil {
		serverError(c)
		return
	}
	var selected uint64
	if f.GroupID != nil {
		selected = *f.GroupID
	}
	title := "New post"
	if isEdit {
		title = "Edit post"
	}
	c.HTML(status, "post_form.tmpl", baseContext(c, gin.H{
		"Title":         title,
		"Action":        action,
		"Form":          f,
		"Groups":        groups,
		"SelectedGroup": selected,
		"IsEdit":        isEdit,
	}))
}

// saveImage stores the upload under the media dir and returns the
// media-relative path recorded on the post.
func (h *PostHandler) saveImage(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
	rel := filepath.Join("posts", name)
	dst := filepath.Join(h.mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return rel, nil
}

func detailPath(id uint64) string { return fmt.Sprintf("/posts/%d/", id) }
func editPath(id uint64) string   { return fmt.Sprintf("/posts/%d/edit/", id) }
