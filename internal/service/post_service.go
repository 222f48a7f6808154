package service

import (
	"errors"

	"inkwell/internal/form"
	"inkwell/internal/model"
	"inkwell/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	posts  *mysql.PostRepository
	groups *mysql.GroupRepository
	users  *mysql.UserRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		posts:  &mysql.PostRepository{DB: db},
		groups: &mysql.GroupRepository{DB: db},
		users:  &mysql.UserRepository{DB: db},
	}
}

// GroupLookup hands the form layer its group-existence check.
func (s *PostService) GroupLookup() form.GroupLookup {
	return func(id uint64) (bool, error) {
		_, err := s.groups.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
}

func (s *PostService) Groups() ([]model.Group, error) {
	return s.groups.List()
}

// Create persists a validated submission. The author and publication
// time are stamped here, never taken from the form.
func (s *PostService) Create(authorID uint64, f *form.PostForm, imagePath string) (*model.Post, error) {
	post := &model.Post{
		Text:     f.Text,
		AuthorID: authorID,
		GroupID:  f.GroupID,
		Image:    imagePath,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(id uint64) (*model.Post, error) {
	post, err := s.posts.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Edit updates text, group and image. Only the author may edit;
// anyone else gets ErrNotOwner and the post is left untouched.
func (s *PostService) Edit(postID, editorID uint64, f *form.PostForm, imagePath string) error {
	post, err := s.Get(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != editorID {
		return ErrNotOwner
	}
	fields := map[string]any{
		"text":     f.Text,
		"group_id": f.GroupID,
	}
	if imagePath != "" {
		fields["image"] = imagePath
	}
	return s.posts.Update(postID, fields)
}

func (s *PostService) ListAll(page int) (*Page, error) {
	return s.page(s.posts.CountAll, s.posts.ListAll, page)
}

func (s *PostService) ListByGroup(slug string, page int) (*model.Group, *Page, error) {
	group, err := s.groups.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	p, err := s.page(
		func() (int64, error) { return s.posts.CountByGroup(group.ID) },
		func(offset, limit int) ([]model.Post, error) { return s.posts.ListByGroup(group.ID, offset, limit) },
		page,
	)
	return group, p, err
}

// ListByAuthor returns the author and their page; Page.TotalItems is the
// author's total post count shown on the profile.
func (s *PostService) ListByAuthor(username string, page int) (*model.User, *Page, error) {
	author, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	p, err := s.page(
		func() (int64, error) { return s.posts.CountByAuthor(author.ID) },
		func(offset, limit int) ([]model.Post, error) { return s.posts.ListByAuthor(author.ID, offset, limit) },
		page,
	)
	return author, p, err
}

// Feed lists posts by authors the user follows, newest first. The
// user's own posts never appear: self-edges are rejected on write.
func (s *PostService) Feed(userID uint64, page int) (*Page, error) {
	return s.page(
		func() (int64, error) { return s.posts.CountFeed(userID) },
		func(offset, limit int) ([]model.Post, error) { return s.posts.ListFeed(userID, offset, limit) },
		page,
	)
}

func (s *PostService) page(count func() (int64, error), list func(offset, limit int) ([]model.Post, error), page int) (*Page, error) {
	total, err := count()
	if err != nil {
		return nil, err
	}
	totalPages := pageCount(total)
	page = clampPage(page, totalPages)
	posts, err := list((page-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}
	return &Page{
		Posts:      posts,
		Number:     page,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
