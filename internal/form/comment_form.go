package form

import "errors"

var errNotAnImage = errors.New("upload a valid image file")

type CommentForm struct {
	Text   string
	Errors Errors
}

var commentSchema = []Field{
	{Name: "text", Validate: required("enter the comment text")},
}

func NewCommentForm(text string) *CommentForm {
	return &CommentForm{
		Text:   text,
		Errors: runSchema(commentSchema, map[string]string{"text": text}),
	}
}

func (f *CommentForm) Valid() bool { return !f.Errors.Any() }
