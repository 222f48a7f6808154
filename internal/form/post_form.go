package form

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// GroupLookup answers whether a group id exists. The form layer stays
// free of storage imports; the service hands the check in.
type GroupLookup func(id uint64) (bool, error)

// PostForm carries a validated post submission. GroupID is nil when no
// group was selected; Image is nil when no file was attached.
type PostForm struct {
	Text    string
	GroupID *uint64
	Image   *multipart.FileHeader
	Errors  Errors
}

var postSchema = []Field{
	{Name: "text", Validate: required("enter the post text")},
	{Name: "group", Validate: optionalUint("select a valid group")},
}

// NewPostForm binds and validates raw submitted values. On any failure
// the original input is kept so the form can be redisplayed.
func NewPostForm(text, group string, image *multipart.FileHeader, groups GroupLookup) (*PostForm, error) {
	f := &PostForm{Text: text, Image: image}
	f.Errors = runSchema(postSchema, map[string]string{
		"text":  text,
		"group": group,
	})

	if f.Errors.Get("group") == "" && group != "" {
		id, _ := strconv.ParseUint(group, 10, 64)
		ok, err := groups(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			f.Errors["group"] = "select a valid group"
		} else {
			f.GroupID = &id
		}
	}

	if image != nil {
		if err := validateImage(image); err != nil {
			f.Errors["image"] = err.Error()
		}
	}
	return f, nil
}

func (f *PostForm) Valid() bool { return !f.Errors.Any() }

// validateImage sniffs the payload; the filename and declared
// content type are not trusted.
func validateImage(fh *multipart.FileHeader) error {
	file, err := fh.Open()
	if err != nil {
		return errNotAnImage
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil || !strings.HasPrefix(mt.String(), "image/") {
		return errNotAnImage
	}
	return nil
}
