package router

import (
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/middleware"
	"inkwell/internal/pkg"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(handler.LoadTemplates())
	r.MaxMultipartMemory = 8 << 20
	r.Use(middleware.Authenticate())
	r.Static("/media", cfg.MediaDir)

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	posts := handler.NewPostHandler(db, cfg.MediaDir)
	groups := handler.NewGroupHandler(db)
	profiles := handler.NewProfileHandler(db)
	users := handler.NewUserHandler(db, smtp)

	// Open listings; the front page may be served stale for up to the
	// cache TTL.
	r.GET("/", middleware.PageCache(cfg.PageCacheTTL), posts.Index)
	r.GET("/group/:slug/", groups.Posts)
	r.GET("/profile/:username/", profiles.Profile)
	r.GET("/posts/:id/", posts.Detail)

	// Account pages.
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/signup/", users.SignupForm)
		authGroup.POST("/signup/", users.Signup)
		authGroup.GET("/login/", users.LoginForm)
		authGroup.POST("/login/", users.Login)
		authGroup.POST("/logout/", users.Logout)
	}

	// Writes and the personal feed need a session.
	loggedIn := r.Group("/", middleware.LoginRequired())
	{
		loggedIn.GET("/create/", posts.CreateForm)
		loggedIn.POST("/create/", posts.Create)
		loggedIn.GET("/posts/:id/edit/", posts.EditForm)
		loggedIn.POST("/posts/:id/edit/", posts.Edit)
		loggedIn.POST("/posts/:id/comment/", posts.AddComment)
		loggedIn.GET("/profile/:username/follow/", profiles.Follow)
		loggedIn.GET("/profile/:username/unfollow/", profiles.Unfollow)
		loggedIn.GET("/follow/", posts.Feed)
	}

	r.NoRoute(handler.NotFound)

	return r
}
