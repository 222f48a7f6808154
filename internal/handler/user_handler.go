package handler

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/form"
	"inkwell/internal/middleware"
	"inkwell/internal/pkg"
	rdb "inkwell/internal/repository/redis"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(db *gorm.DB, smtp pkg.SMTPConfig) *UserHandler {
	return &UserHandler{users: service.NewUserService(db, smtp)}
}

func (h *UserHandler) SignupForm(c *gin.Context) {
	h.renderSignup(c, &form.SignupForm{Errors: form.Errors{}})
}

func (h *UserHandler) Signup(c *gin.Context) {
	f := form.NewSignupForm(c.PostForm("username"), c.PostForm("email"), c.PostForm("password"))
	if !f.Valid() {
		h.renderSignup(c, f)
		return
	}
	_, err := h.users.Signup(f)
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		f.Errors["username"] = err.Error()
		h.renderSignup(c, f)
	case errors.Is(err, service.ErrEmailTaken):
		f.Errors["email"] = err.Error()
		h.renderSignup(c, f)
	case err != nil:
		serverError(c)
	default:
		c.Redirect(http.StatusFound, middleware.LoginPath)
	}
}

func (h *UserHandler) LoginForm(c *gin.Context) {
	h.renderLogin(c, &form.LoginForm{Errors: form.Errors{}}, c.Query("next"))
}

// Login verifies credentials, sets the session cookie and sends the
// browser back to where it was headed.
func (h *UserHandler) Login(c *gin.Context) {
	next := c.PostForm("next")
	f := form.NewLoginForm(c.PostForm("username"), c.PostForm("password"))
	if !f.Valid() {
		h.renderLogin(c, f, next)
		return
	}
	token, _, err := h.users.Login(f.Username, f.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		f.Errors["username"] = err.Error()
		h.renderLogin(c, f, next)
		return
	}
	if err != nil {
		serverError(c)
		return
	}
	c.SetCookie(middleware.SessionCookieName, token, int(rdb.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, safeNext(next))
}

func (h *UserHandler) Logout(c *gin.Context) {
	if userID, ok := middleware.CurrentUserID(c); ok {
		_ = h.users.Logout(userID)
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *UserHandler) renderSignup(c *gin.Context, f *form.SignupForm) {
	c.HTML(http.StatusOK, "signup.tmpl", baseContext(c, gin.H{
		"Title": "Sign up",
		"Form":  f,
	}))
}

func (h *UserHandler) renderLogin(c *gin.Context, f *form.LoginForm, next string) {
	c.HTML(http.StatusOK, "login.tmpl", baseContext(c, gin.H{
		"Title": "Log in",
		"Form":  f,
		"Next":  next,
	}))
}

// safeNext keeps redirects on this site: relative paths only.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
