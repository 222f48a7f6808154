package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edgeCount(t *testing.T, svc *FollowService) int64 {
	t.Helper()
	n, err := svc.follows.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	a := makeUser(t, db, "alice")
	b := makeUser(t, db, "bob")

	changed, err := svc.Follow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.Follow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Equal(t, int64(1), edgeCount(t, svc))
}

func TestFollowSelfNeverCreatesEdge(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	a := makeUser(t, db, "alice")

	changed, err := svc.Follow(context.Background(), a.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, int64(0), edgeCount(t, svc))
}

func TestUnfollowAbsentEdgeIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	a := makeUser(t, db, "alice")
	b := makeUser(t, db, "bob")

	changed, err := svc.Unfollow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, int64(0), edgeCount(t, svc))
}

func TestUnfollowRemovesEdge(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	a := makeUser(t, db, "alice")
	b := makeUser(t, db, "bob")

	_, err := svc.Follow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)

	changed, err := svc.Unfollow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, int64(0), edgeCount(t, svc))

	following, err := svc.IsFollowing(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowWritesOutboxOnlyWhenChanged(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	a := makeUser(t, db, "alice")
	b := makeUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		_, err := svc.Follow(context.Background(), a.ID, b.ID)
		require.NoError(t, err)
	}
	_, err := svc.Unfollow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	_, err = svc.Unfollow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)

	var events []model.SocialOutbox
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "follow", events[0].EventType)
	assert.Equal(t, "unfollow", events[1].EventType)
}

func TestFeedListsFollowedAuthorsOnly(t *testing.T) {
	db := newTestDB(t)
	follows := NewFollowService(db)
	posts := NewPostService(db)
	a := makeUser(t, db, "alice")
	b := makeUser(t, db, "bob")
	c := makeUser(t, db, "carol")

	now := time.Now()
	makePost(t, db, a, "by alice", now.Add(-3*time.Minute))
	makePost(t, db, b, "by bob", now.Add(-2*time.Minute))
	makePost(t, db, c, "by carol", now.Add(-1*time.Minute))

	_, err := follows.Follow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)

	page, err := posts.Feed(a.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "by bob", page.Posts[0].Text)
}

func TestFeedNeverContainsOwnPosts(t *testing.T) {
	db := newTestDB(t)
	follows := NewFollowService(db)
	posts := NewPostService(db)
	a := makeUser(t, db, "alice")
	b := makeUser(t, db, "bob")

	makePost(t, db, a, "mine", time.Now())
	makePost(t, db, b, "theirs", time.Now())

	_, err := follows.Follow(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	// The self-edge is refused, so own posts stay out.
	_, err = follows.Follow(context.Background(), a.ID, a.ID)
	require.NoError(t, err)

	page, err := posts.Feed(a.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "theirs", page.Posts[0].Text)
}
