package handler

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// LoadTemplates parses the embedded page templates once at startup.
func LoadTemplates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))
}

// NotFound renders the custom not-found page; wired as the NoRoute
// handler and used for every unknown post/group/user identifier.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.tmpl", baseContext(c, gin.H{"Title": "Not found"}))
	c.Abort()
}

func serverError(c *gin.Context) {
	c.String(http.StatusInternalServerError, "server error")
	c.Abort()
}

// baseContext adds the viewer identity every template's header needs.
func baseContext(c *gin.Context, h gin.H) gin.H {
	if name, ok := middleware.CurrentUsername(c); ok {
		h["Authenticated"] = true
		h["Viewer"] = name
	}
	return h
}

// pageParam reads the requested page number; anything unparseable is
// page one. Out-of-range values are clamped by the listing layer.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
