package service

import (
	"fmt"
	"testing"
	"time"

	"inkwell/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, or the pool would hand out empty in-memory DBs.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.SocialOutbox{},
	))
	return db
}

func makeUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username: username,
		Password: "x",
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func makeGroup(t *testing.T, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

func makePost(t *testing.T, db *gorm.DB, author *model.User, text string, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{Text: text, AuthorID: author.ID, CreatedAt: createdAt}
	require.NoError(t, db.Create(p).Error)
	return p
}

func makePosts(t *testing.T, db *gorm.DB, author *model.User, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		makePost(t, db, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}
}
